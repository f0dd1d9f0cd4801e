package repository

import (
	"context"
	"database/sql"

	"github.com/akarev/activity-signup/internal/model"
)

// ReportRepo exposes the read-only reporting queries that join users,
// activities and reservations. Reads may run concurrently with mutations
// and only need a recent consistent snapshot; none of these queries take
// locks beyond what a plain SELECT requires. A lookup that matches nothing
// yields an empty slice or nil, never an error.
type ReportRepo struct{ DB *sql.DB }

// NewReportRepo returns a ReportRepo bound to the given database.
func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

// GetUserReservation returns the activity name and creation time of the
// user's reservation, or nil when the user has none.
func (r *ReportRepo) GetUserReservation(ctx context.Context, userID uint64) (*model.UserReservation, error) {
	const q = `SELECT a.id, a.name, v.created_at
		FROM reservations v
		JOIN activities a ON a.id = v.activity_id
		WHERE v.user_id = ?`
	var res model.UserReservation
	err := r.DB.QueryRowContext(ctx, q, userID).Scan(&res.ActivityID, &res.ActivityName, &res.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetStatistics returns one row per activity ordered by id, with the full
// flag derived in SQL so the snapshot is internally consistent.
func (r *ReportRepo) GetStatistics(ctx context.Context) ([]model.ActivityStats, error) {
	const q = `SELECT id, name, used_slots, max_capacity,
			CASE WHEN used_slots >= max_capacity THEN 1 ELSE 0 END AS is_full
		FROM activities ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]model.ActivityStats, 0)
	for rows.Next() {
		var s model.ActivityStats
		if err := rows.Scan(&s.ID, &s.Name, &s.UsedSlots, &s.MaxCapacity, &s.IsFull); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// GetParticipants returns the confirmed attendees of one activity ordered
// by when they claimed their slot.
func (r *ReportRepo) GetParticipants(ctx context.Context, activityID uint64) ([]model.Participant, error) {
	const q = `SELECT u.id, u.handle, u.display_name, u.phone, v.created_at
		FROM reservations v
		JOIN users u ON u.id = v.user_id
		WHERE v.activity_id = ?
		ORDER BY v.created_at, v.id`
	rows, err := r.DB.QueryContext(ctx, q, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parts := make([]model.Participant, 0)
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.UserID, &p.Handle, &p.DisplayName, &p.Phone, &p.CreatedAt); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

// GetAllReservationsDetail returns the flattened audit report, one row per
// reservation ordered by creation time. It feeds the CSV export.
func (r *ReportRepo) GetAllReservationsDetail(ctx context.Context) ([]model.ReservationDetail, error) {
	const q = `SELECT u.id, u.handle, u.display_name, u.phone, a.name, v.created_at
		FROM reservations v
		JOIN users u ON u.id = v.user_id
		JOIN activities a ON a.id = v.activity_id
		ORDER BY v.created_at, v.id`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]model.ReservationDetail, 0)
	for rows.Next() {
		var d model.ReservationDetail
		if err := rows.Scan(&d.UserID, &d.Handle, &d.DisplayName, &d.Phone, &d.ActivityName, &d.CreatedAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
