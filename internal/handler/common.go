package handler // handler defines http handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/akarev/activity-signup/internal/config"
	"github.com/akarev/activity-signup/internal/model"
)

// The handlers depend on small store interfaces rather than concrete
// repositories so tests can substitute in-memory fakes. The repository
// types in internal/repository satisfy these.

// UserStore owns participant identity records.
type UserStore interface {
	Upsert(ctx context.Context, id uint64, handle, displayName, phone string) error
	Exists(ctx context.Context, id uint64) (bool, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	CountAll(ctx context.Context) (int64, error)
	ListAll(ctx context.Context) ([]model.User, error)
}

// CatalogStore owns the set of bookable activities and their counters.
type CatalogStore interface {
	Sync(ctx context.Context, defs []config.ActivityDefinition) error
	List(ctx context.Context) ([]model.Activity, error)
	GetByID(ctx context.Context, id uint64) (model.Activity, error)
}

// ReservationStore performs the atomic claim transition.
type ReservationStore interface {
	Reserve(ctx context.Context, activityID, userID uint64) error
	HasReservation(ctx context.Context, userID uint64) (bool, error)
}

// ReportStore exposes the read-only reporting queries.
type ReportStore interface {
	GetUserReservation(ctx context.Context, userID uint64) (*model.UserReservation, error)
	GetStatistics(ctx context.Context) ([]model.ActivityStats, error)
	GetParticipants(ctx context.Context, activityID uint64) ([]model.Participant, error)
	GetAllReservationsDetail(ctx context.Context) ([]model.ReservationDetail, error)
}

// getUserID extracts the participant id placed in the context by the JWT
// middleware and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a positive numeric :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
