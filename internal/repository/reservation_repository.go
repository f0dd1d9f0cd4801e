package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/akarev/activity-signup/internal/model"
)

// ReservationRepo performs the atomic "claim a slot" transition. A
// successful claim increments the activity's used_slots and inserts the
// reservation row as one transaction; a declined claim leaves the store
// untouched. The store itself is the only synchronization authority:
// there is no in-process cache of counters, and concurrent claims are
// serialized by the conditional UPDATE (per activity) and the unique key
// on user_id (per user).
type ReservationRepo struct{ DB *sql.DB }

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

// Reserve attempts to claim one slot of the given activity for the given
// user. It is a single bounded transactional attempt with no retry loop.
//
// The capacity check and the counter increment are one conditional
// statement: `UPDATE ... SET used_slots = used_slots + 1 WHERE id = ? AND
// used_slots < max_capacity`. When N callers race for the last slot the
// row lock serializes them and exactly one sees a row affected; the rest
// observe zero rows and fail with no side effects. Reading the counter
// first and writing second would allow two callers to both pass the check,
// which is exactly the overbooking bug this method exists to prevent.
//
// Returned errors: ErrAlreadyReserved when the user already holds a
// reservation, ErrActivityNotFound / ErrActivityFull for a declined
// activity, ErrUserNotRegistered when no user row exists, or the
// underlying storage error. Any error means nothing was persisted.
func (r *ReservationRepo) Reserve(ctx context.Context, activityID, userID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Cheap duplicate pre-check. The unique key on user_id remains the
	// authoritative guard; this read only avoids touching the counter for
	// the common "already voted" case.
	var one int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM reservations WHERE user_id=? LIMIT 1", userID).Scan(&one)
	if err == nil {
		return ErrAlreadyReserved
	}
	if err != sql.ErrNoRows {
		return err
	}

	// The atomic conditional write: capacity check and increment in one
	// indivisible statement.
	res, err := tx.ExecContext(ctx,
		"UPDATE activities SET used_slots = used_slots + 1 WHERE id = ? AND used_slots < max_capacity",
		activityID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Zero rows means unknown id or no free slots. One extra read
		// picks the right error code; it cannot affect correctness since
		// the claim is already declined.
		var exists int
		probe := tx.QueryRowContext(ctx,
			"SELECT 1 FROM activities WHERE id=? LIMIT 1", activityID).Scan(&exists)
		if probe == sql.ErrNoRows {
			return ErrActivityNotFound
		}
		if probe != nil {
			return probe
		}
		return ErrActivityFull
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO reservations (user_id, activity_id) VALUES (?,?)",
		userID, activityID); err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			// Lost the per-user race against a concurrent claim by the
			// same user; the rollback undoes the counter increment.
			return ErrAlreadyReserved
		}
		if strings.Contains(msg, "1452") {
			// Foreign key on user_id failed: no registration record.
			return ErrUserNotRegistered
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// HasReservation reports whether the user already holds a reservation.
func (r *ReservationRepo) HasReservation(ctx context.Context, userID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM reservations WHERE user_id=? LIMIT 1", userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByUser returns the user's reservation row. Returns sql.ErrNoRows when
// the user has none.
func (r *ReservationRepo) GetByUser(ctx context.Context, userID uint64) (model.Reservation, error) {
	var v model.Reservation
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, activity_id, created_at FROM reservations WHERE user_id=? LIMIT 1",
		userID).Scan(&v.ID, &v.UserID, &v.ActivityID, &v.CreatedAt)
	return v, err
}
