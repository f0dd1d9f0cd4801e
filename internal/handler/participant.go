package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/akarev/activity-signup/internal/observability"
	"github.com/akarev/activity-signup/internal/queue"
	"github.com/akarev/activity-signup/internal/repository"
)

// ParticipantHandler serves the participant-facing operations: contact
// registration, the activity list, the slot claim and the participant's
// own status. All methods assume JWT authentication has run; the
// participant id comes from the token subject.
//
// Publish and PurgeCache are injected side effects. Publish fans out a
// confirmation event after a successful claim and is best effort: a broker
// outage never fails a committed reservation. PurgeCache drops cached read
// responses so the next list/statistics fetch reflects the new counter.
// Either may be nil.
type ParticipantHandler struct {
	Users        UserStore
	Catalog      CatalogStore
	Reservations ReservationStore
	Reports      ReportStore
	Publish      func(ctx context.Context, ev queue.ReservationConfirmedEvent) error
	PurgeCache   func(ctx context.Context)
}

// NewParticipantHandler constructs a ParticipantHandler with the provided
// stores. All stores must be non-nil.
func NewParticipantHandler(users UserStore, catalog CatalogStore, reservations ReservationStore, reports ReportStore) *ParticipantHandler {
	if users == nil || catalog == nil || reservations == nil || reports == nil {
		panic("nil store passed to NewParticipantHandler")
	}
	return &ParticipantHandler{
		Users:        users,
		Catalog:      catalog,
		Reservations: reservations,
		Reports:      reports,
	}
}

// registerRequest is the POST /v1/register payload. The phone pattern
// accepts the international formats the chat platform hands over.
type registerRequest struct {
	Handle      string `json:"handle" validate:"omitempty,max=255"`
	DisplayName string `json:"display_name" validate:"required,max=255"`
	Phone       string `json:"phone" validate:"omitempty,e164"`
}

// Register handles POST /v1/register. It upserts the participant's contact
// record: the first call creates it, later calls overwrite handle, display
// name and phone while keeping the original registration time.
func (h *ParticipantHandler) Register(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body registerRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.Users.Upsert(ctx, userID, body.Handle, body.DisplayName, body.Phone); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	}
	observability.Registrations.Inc()
	return c.JSON(http.StatusOK, echo.Map{
		"user_id":      userID,
		"display_name": body.DisplayName,
	})
}

// activityItem is one row of the activity list response, carrying the
// presentation fields the gateway renders as buttons.
type activityItem struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	UsedSlots   uint32 `json:"used_slots"`
	MaxCapacity uint32 `json:"max_capacity"`
	Remaining   uint32 `json:"remaining"`
	IsFull      bool   `json:"is_full"`
}

// ListActivities handles GET /v1/activities. Activities are ordered by id;
// each row carries the live counter and a derived remaining/full view.
func (h *ParticipantHandler) ListActivities(c echo.Context) error {
	acts, err := h.Catalog.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	}
	items := make([]activityItem, 0, len(acts))
	for _, a := range acts {
		items = append(items, activityItem{
			ID:          a.ID,
			Name:        a.Name,
			UsedSlots:   a.UsedSlots,
			MaxCapacity: a.MaxCapacity,
			Remaining:   a.Remaining(),
			IsFull:      a.IsFull(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Reserve handles POST /v1/activities/:id/reserve — the claim itself. The
// store performs the whole transition atomically; this handler only maps
// the outcome to a response the gateway can render ("already booked" must
// be distinguishable from "full"). A declined claim changes nothing.
func (h *ParticipantHandler) Reserve(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	activityID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity id"})
	}
	ctx := c.Request().Context()

	registered, err := h.Users.Exists(ctx, userID)
	if err != nil {
		observability.ObserveReservation(observability.OutcomeError)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	}
	if !registered {
		observability.ObserveReservation(observability.OutcomeNotRegistered)
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not_registered"})
	}

	switch err := h.Reservations.Reserve(ctx, activityID, userID); {
	case err == nil:
		// fall through to the success path below
	case errors.Is(err, repository.ErrAlreadyReserved):
		observability.ObserveReservation(observability.OutcomeDuplicate)
		return c.JSON(http.StatusConflict, echo.Map{"error": "already_reserved"})
	case errors.Is(err, repository.ErrActivityFull):
		observability.ObserveReservation(observability.OutcomeFull)
		return c.JSON(http.StatusConflict, echo.Map{"error": "activity_full"})
	case errors.Is(err, repository.ErrActivityNotFound):
		observability.ObserveReservation(observability.OutcomeUnknownActivity)
		return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
	case errors.Is(err, repository.ErrUserNotRegistered):
		observability.ObserveReservation(observability.OutcomeNotRegistered)
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not_registered"})
	default:
		observability.ObserveReservation(observability.OutcomeError)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	}

	observability.ObserveReservation(observability.OutcomeConfirmed)
	if h.PurgeCache != nil {
		h.PurgeCache(ctx)
	}

	// Load the post-commit state for the response and the event. Failures
	// past this point cannot undo the claim, so they degrade to a minimal
	// response instead of an error status.
	act, actErr := h.Catalog.GetByID(ctx, activityID)
	if h.Publish != nil {
		ev := queue.ReservationConfirmedEvent{
			EventID:     uuid.NewString(),
			UserID:      userID,
			ActivityID:  activityID,
			ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if u, err := h.Users.GetByID(ctx, userID); err == nil {
			ev.DisplayName = u.DisplayName
		}
		if actErr == nil {
			ev.ActivityName = act.Name
			ev.UsedSlots = act.UsedSlots
			ev.MaxCapacity = act.MaxCapacity
		}
		if err := h.Publish(ctx, ev); err != nil {
			log.Printf("reserve: publish confirmation failed: %v", err)
		}
	}
	resp := echo.Map{"activity_id": activityID}
	if actErr == nil {
		resp["activity_name"] = act.Name
		resp["used_slots"] = act.UsedSlots
		resp["max_capacity"] = act.MaxCapacity
	}
	return c.JSON(http.StatusCreated, resp)
}

// MyReservation handles GET /v1/my-reservation. A participant with no
// reservation gets a 200 response with a null item; absence is a normal
// outcome, not an error.
func (h *ParticipantHandler) MyReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	res, err := h.Reports.GetUserReservation(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	}
	// res is nil when the participant has not claimed a slot; the item
	// serializes as null, which is a normal outcome for the gateway.
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// Statistics handles GET /v1/statistics: per-activity usage ordered by id.
func (h *ParticipantHandler) Statistics(c echo.Context) error {
	stats, err := h.Reports.GetStatistics(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": stats})
}
