package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarev/activity-signup/internal/model"
)

func TestWriteReservationsCSV(t *testing.T) {
	rows := []model.ReservationDetail{
		{
			UserID:       100,
			Handle:       "ann",
			DisplayName:  "Ann, P.", // comma forces quoting
			Phone:        "+79990001122",
			ActivityName: "Quiz",
			CreatedAt:    time.Date(2025, time.June, 6, 12, 0, 1, 0, time.UTC),
		},
		{
			UserID:       200,
			DisplayName:  "Ben",
			ActivityName: "Mafia",
			CreatedAt:    time.Date(2025, time.June, 6, 12, 0, 2, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReservationsCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"user_id", "handle", "display_name", "phone", "activity_name", "created_at"}, records[0])
	assert.Equal(t, []string{"100", "ann", "Ann, P.", "+79990001122", "Quiz", "2025-06-06T12:00:01Z"}, records[1])
	assert.Equal(t, []string{"200", "", "Ben", "", "Mafia", "2025-06-06T12:00:02Z"}, records[2])
}

func TestWriteReservationsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReservationsCSV(&buf, nil))
	assert.Equal(t, "user_id,handle,display_name,phone,activity_name,created_at\n", buf.String())
}
