package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarev/activity-signup/internal/config"
)

func newAdminFixture(t *testing.T, defs []config.ActivityDefinition) (*fakeStore, *AdminHandler) {
	t.Helper()
	store := newFakeStore()
	current := defs
	h := NewAdminHandler(fakeCatalog{store}, store, store, func() ([]config.ActivityDefinition, error) {
		return current, nil
	})
	require.NoError(t, store.Sync(context.Background(), defs))
	return store, h
}

func doSync(e *echo.Echo, h *AdminHandler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/catalog/sync", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	call(e, c, h.SyncCatalog)
	return rec
}

func TestSyncCatalogIdempotent(t *testing.T) {
	store, h := newAdminFixture(t, []config.ActivityDefinition{
		{ID: 1, Name: "X", MaxCapacity: 5},
	})
	e := newTestEcho()

	before, err := store.List(context.Background())
	require.NoError(t, err)

	rec := doSync(e, h)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doSync(e, h)
	require.Equal(t, http.StatusOK, rec.Code)

	after, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// TestSyncCatalogPreservesCounters re-runs sync with a renamed activity
// after reservations were recorded: the name updates, the counter stays.
func TestSyncCatalogPreservesCounters(t *testing.T) {
	store, h := newAdminFixture(t, []config.ActivityDefinition{
		{ID: 1, Name: "X", MaxCapacity: 5},
	})
	e := newTestEcho()

	for i := uint64(0); i < 3; i++ {
		require.NoError(t, store.Upsert(context.Background(), 100+i, "", "U", ""))
		require.NoError(t, store.Reserve(context.Background(), 1, 100+i))
	}

	h.LoadDefs = func() ([]config.ActivityDefinition, error) {
		return []config.ActivityDefinition{{ID: 1, Name: "Y", MaxCapacity: 5}}, nil
	}
	rec := doSync(e, h)
	require.Equal(t, http.StatusOK, rec.Code)

	acts, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "Y", acts[0].Name)
	assert.Equal(t, uint32(5), acts[0].MaxCapacity)
	assert.Equal(t, uint32(3), acts[0].UsedSlots)
}

func TestSyncCatalogBadDefinitions(t *testing.T) {
	_, h := newAdminFixture(t, nil)
	h.LoadDefs = func() ([]config.ActivityDefinition, error) {
		return nil, errors.New("parse catalog file: boom")
	}
	e := newTestEcho()
	rec := doSync(e, h)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestParticipantsOrder checks attendees come back in claim order.
func TestParticipantsOrder(t *testing.T) {
	store, h := newAdminFixture(t, []config.ActivityDefinition{
		{ID: 1, Name: "X", MaxCapacity: 5},
	})
	e := newTestEcho()

	for _, id := range []uint64{31, 12, 23} {
		require.NoError(t, store.Upsert(context.Background(), id, "", "U"+strconv.FormatUint(id, 10), ""))
		require.NoError(t, store.Reserve(context.Background(), 1, id))
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/activities/1/participants", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/admin/activities/:id/participants")
	c.SetParamNames("id")
	c.SetParamValues("1")
	call(e, c, h.Participants)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []struct {
			UserID uint64 `json:"user_id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 3)
	assert.Equal(t, uint64(31), body.Items[0].UserID)
	assert.Equal(t, uint64(12), body.Items[1].UserID)
	assert.Equal(t, uint64(23), body.Items[2].UserID)
}

func TestParticipantsUnknownActivity(t *testing.T) {
	_, h := newAdminFixture(t, nil)
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/activities/9/participants", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/admin/activities/:id/participants")
	c.SetParamNames("id")
	c.SetParamValues("9")
	call(e, c, h.Participants)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportReservationsCSV(t *testing.T) {
	store, h := newAdminFixture(t, []config.ActivityDefinition{
		{ID: 1, Name: "X", MaxCapacity: 5},
	})
	e := newTestEcho()

	require.NoError(t, store.Upsert(context.Background(), 100, "ann", "Ann", "+79990001122"))
	require.NoError(t, store.Reserve(context.Background(), 1, 100))

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/reservations/export", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	call(e, c, h.ExportReservations)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")
	body := rec.Body.String()
	assert.Contains(t, body, "user_id,handle,display_name,phone,activity_name,created_at")
	assert.Contains(t, body, "100,ann,Ann,+79990001122,X,")
}

func TestListUsers(t *testing.T) {
	store, h := newAdminFixture(t, nil)
	e := newTestEcho()

	require.NoError(t, store.Upsert(context.Background(), 2, "", "B", ""))
	require.NoError(t, store.Upsert(context.Background(), 1, "", "A", ""))

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	call(e, c, h.ListUsers)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total int64 `json:"total"`
		Items []struct {
			ID uint64 `json:"id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Total)
	require.Len(t, body.Items, 2)
	// Registration order, not id order.
	assert.Equal(t, uint64(2), body.Items[0].ID)
	assert.Equal(t, uint64(1), body.Items[1].ID)
}
