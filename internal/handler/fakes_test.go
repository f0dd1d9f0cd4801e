package handler

// fakes_test.go provides an in-memory store used by the handler tests. It
// mirrors the contracts of the SQL repositories: the capacity check and
// counter increment are one critical section, the per-user uniqueness is
// checked under the same lock, and a declined claim changes nothing.

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/akarev/activity-signup/internal/config"
	"github.com/akarev/activity-signup/internal/model"
	"github.com/akarev/activity-signup/internal/repository"
)

type fakeStore struct {
	mu           sync.Mutex
	users        map[uint64]model.User
	activities   map[uint64]model.Activity
	reservations []model.Reservation
	byUser       map[uint64]int // index into reservations
	nextResID    uint64
	now          time.Time

	failAll bool // simulate storage outage
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[uint64]model.User),
		activities: make(map[uint64]model.Activity),
		byUser:     make(map[uint64]int),
		nextResID:  1,
		now:        time.Date(2025, time.June, 6, 12, 0, 0, 0, time.UTC),
	}
}

var errStorage = errors.New("storage failure") // stand-in for a driver error

// tick advances the fake clock so created_at ordering is deterministic.
func (f *fakeStore) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakeStore) Upsert(_ context.Context, id uint64, handle, displayName, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStorage
	}
	u, ok := f.users[id]
	if !ok {
		u = model.User{ID: id, RegisteredAt: f.tick()}
	}
	u.Handle = handle
	u.DisplayName = displayName
	u.Phone = phone
	f.users[id] = u
	return nil
}

func (f *fakeStore) Exists(_ context.Context, id uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return false, errStorage
	}
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return model.User{}, errStorage
	}
	return u, nil
}

func (f *fakeStore) CountAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return 0, errStorage
	}
	return int64(len(f.users)), nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStorage
	}
	users := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].RegisteredAt.Equal(users[j].RegisteredAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].RegisteredAt.Before(users[j].RegisteredAt)
	})
	return users, nil
}

func (f *fakeStore) Sync(_ context.Context, defs []config.ActivityDefinition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStorage
	}
	for _, d := range defs {
		a, ok := f.activities[d.ID]
		if !ok {
			a = model.Activity{ID: d.ID}
		}
		a.Name = d.Name
		a.MaxCapacity = d.MaxCapacity
		f.activities[d.ID] = a
	}
	return nil
}

func (f *fakeStore) List(_ context.Context) ([]model.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStorage
	}
	acts := make([]model.Activity, 0, len(f.activities))
	for _, a := range f.activities {
		acts = append(acts, a)
	}
	sort.Slice(acts, func(i, j int) bool { return acts[i].ID < acts[j].ID })
	return acts, nil
}

func (f *fakeStore) GetActivityByID(_ context.Context, id uint64) (model.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.activities[id]
	if !ok {
		return model.Activity{}, repository.ErrActivityNotFound
	}
	return a, nil
}

// GetByID is shadowed by the user variant above, so the catalog view wraps
// the fake in a separate type.
type fakeCatalog struct{ *fakeStore }

func (f fakeCatalog) GetByID(ctx context.Context, id uint64) (model.Activity, error) {
	return f.GetActivityByID(ctx, id)
}

func (f *fakeStore) Reserve(_ context.Context, activityID, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStorage
	}
	if _, dup := f.byUser[userID]; dup {
		return repository.ErrAlreadyReserved
	}
	a, ok := f.activities[activityID]
	if !ok {
		return repository.ErrActivityNotFound
	}
	if a.UsedSlots >= a.MaxCapacity {
		return repository.ErrActivityFull
	}
	if _, ok := f.users[userID]; !ok {
		return repository.ErrUserNotRegistered
	}
	a.UsedSlots++
	f.activities[activityID] = a
	f.reservations = append(f.reservations, model.Reservation{
		ID:         f.nextResID,
		UserID:     userID,
		ActivityID: activityID,
		CreatedAt:  f.tick(),
	})
	f.byUser[userID] = len(f.reservations) - 1
	f.nextResID++
	return nil
}

func (f *fakeStore) HasReservation(_ context.Context, userID uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byUser[userID]
	return ok, nil
}

func (f *fakeStore) GetUserReservation(_ context.Context, userID uint64) (*model.UserReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStorage
	}
	idx, ok := f.byUser[userID]
	if !ok {
		return nil, nil
	}
	v := f.reservations[idx]
	return &model.UserReservation{
		ActivityID:   v.ActivityID,
		ActivityName: f.activities[v.ActivityID].Name,
		CreatedAt:    v.CreatedAt,
	}, nil
}

func (f *fakeStore) GetStatistics(_ context.Context) ([]model.ActivityStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStorage
	}
	acts := make([]model.Activity, 0, len(f.activities))
	for _, a := range f.activities {
		acts = append(acts, a)
	}
	sort.Slice(acts, func(i, j int) bool { return acts[i].ID < acts[j].ID })
	stats := make([]model.ActivityStats, 0, len(acts))
	for _, a := range acts {
		stats = append(stats, model.ActivityStats{
			ID:          a.ID,
			Name:        a.Name,
			UsedSlots:   a.UsedSlots,
			MaxCapacity: a.MaxCapacity,
			IsFull:      a.UsedSlots >= a.MaxCapacity,
		})
	}
	return stats, nil
}

func (f *fakeStore) GetParticipants(_ context.Context, activityID uint64) ([]model.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	parts := make([]model.Participant, 0)
	for _, v := range f.reservations {
		if v.ActivityID != activityID {
			continue
		}
		u := f.users[v.UserID]
		parts = append(parts, model.Participant{
			UserID:      u.ID,
			Handle:      u.Handle,
			DisplayName: u.DisplayName,
			Phone:       u.Phone,
			CreatedAt:   v.CreatedAt,
		})
	}
	return parts, nil
}

func (f *fakeStore) GetAllReservationsDetail(_ context.Context) ([]model.ReservationDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStorage
	}
	details := make([]model.ReservationDetail, 0, len(f.reservations))
	for _, v := range f.reservations {
		u := f.users[v.UserID]
		details = append(details, model.ReservationDetail{
			UserID:       u.ID,
			Handle:       u.Handle,
			DisplayName:  u.DisplayName,
			Phone:        u.Phone,
			ActivityName: f.activities[v.ActivityID].Name,
			CreatedAt:    v.CreatedAt,
		})
	}
	return details, nil
}
