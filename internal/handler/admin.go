package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/akarev/activity-signup/internal/config"
	"github.com/akarev/activity-signup/internal/export"
	"github.com/akarev/activity-signup/internal/observability"
	"github.com/akarev/activity-signup/internal/repository"
)

// AdminHandler serves the allow-list gated operations: catalog
// resynchronization, the full reservation report and its CSV export, the
// per-activity participant list and the registered-user overview. The
// admin gate middleware runs before any of these.
//
// LoadDefs re-reads the catalog definitions on each sync so capacity edits
// in the definitions file apply without a restart. PurgeCache is the same
// injected invalidation hook the participant handler uses; either may be
// nil in tests.
type AdminHandler struct {
	Catalog    CatalogStore
	Reports    ReportStore
	Users      UserStore
	LoadDefs   func() ([]config.ActivityDefinition, error)
	PurgeCache func(ctx context.Context)
}

// NewAdminHandler constructs an AdminHandler with the provided stores.
func NewAdminHandler(catalog CatalogStore, reports ReportStore, users UserStore, loadDefs func() ([]config.ActivityDefinition, error)) *AdminHandler {
	if catalog == nil || reports == nil || users == nil || loadDefs == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{
		Catalog:  catalog,
		Reports:  reports,
		Users:    users,
		LoadDefs: loadDefs,
	}
}

// SyncCatalog handles POST /v1/admin/catalog/sync. It reconciles the
// configured definitions into the store: names and capacities are updated
// in place, new activities start empty, usage counters are never reset.
// Re-running with unchanged definitions is a no-op.
func (h *AdminHandler) SyncCatalog(c echo.Context) error {
	defs, err := h.LoadDefs()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid catalog definitions"})
	}
	if err := h.Catalog.Sync(c.Request().Context(), defs); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	}
	observability.CatalogSyncs.Inc()
	if h.PurgeCache != nil {
		h.PurgeCache(c.Request().Context())
	}
	return c.JSON(http.StatusOK, echo.Map{"synced": len(defs)})
}

// AllReservations handles GET /v1/admin/reservations: the flattened
// report, one row per reservation ordered by creation time.
func (h *AdminHandler) AllReservations(c echo.Context) error {
	details, err := h.Reports.GetAllReservationsDetail(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// ExportReservations handles GET /v1/admin/reservations/export. It streams
// the same report as AllReservations as a CSV attachment for offline audit.
func (h *AdminHandler) ExportReservations(c echo.Context) error {
	details, err := h.Reports.GetAllReservationsDetail(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	}
	filename := "reservations-" + time.Now().UTC().Format("20060102-150405") + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteReservationsCSV(c.Response(), details)
}

// Participants handles GET /v1/admin/activities/:id/participants. The
// activity must exist; attendees come back in claim order.
func (h *AdminHandler) Participants(c echo.Context) error {
	activityID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Catalog.GetByID(ctx, activityID); err != nil {
		if err == repository.ErrActivityNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	}
	parts, err := h.Reports.GetParticipants(ctx, activityID)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": parts})
}

// ListUsers handles GET /v1/admin/users: every registered participant in
// registration order, plus the total count.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	}
	total, err := h.Users.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total": total,
		"items": users,
	})
}
