// Package export renders reporting rows as delimited text for offline audit.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/akarev/activity-signup/internal/model"
)

// csvHeader is the column order of the flattened reservation report.
var csvHeader = []string{"user_id", "handle", "display_name", "phone", "activity_name", "created_at"}

// WriteReservationsCSV writes the flattened reservation report to w, one
// row per reservation in the order given (callers pass rows already
// ordered by creation time). Timestamps are serialized as RFC3339 UTC.
func WriteReservationsCSV(w io.Writer, rows []model.ReservationDetail) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, d := range rows {
		rec := []string{
			strconv.FormatUint(d.UserID, 10),
			d.Handle,
			d.DisplayName,
			d.Phone,
			d.ActivityName,
			d.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
