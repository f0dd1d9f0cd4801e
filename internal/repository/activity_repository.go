package repository

import (
	"context"
	"database/sql"

	"github.com/akarev/activity-signup/internal/config"
	"github.com/akarev/activity-signup/internal/model"
)

// ActivityRepo provides persistence for the activity catalog. Rows are
// created or refreshed only by Sync; the used_slots counter is mutated
// only by the reservation engine and Sync never touches it.
type ActivityRepo struct{ DB *sql.DB }

// NewActivityRepo returns an ActivityRepo bound to the given database.
func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{DB: db} }

// Sync upserts the configured definitions into the activities table. For an
// existing id only name and max_capacity change; used_slots is preserved so
// a resync mid-event never loses confirmed reservations. New ids start with
// used_slots = 0 (the column default). Each upsert is its own atomic
// statement: a failure mid-run leaves earlier definitions applied and later
// ones untouched, and re-running Sync with the same definitions is a no-op.
func (r *ActivityRepo) Sync(ctx context.Context, defs []config.ActivityDefinition) error {
	const q = `INSERT INTO activities (id, name, max_capacity) VALUES (?,?,?)
		ON DUPLICATE KEY UPDATE name=VALUES(name), max_capacity=VALUES(max_capacity)`
	for _, d := range defs {
		if _, err := r.DB.ExecContext(ctx, q, d.ID, d.Name, d.MaxCapacity); err != nil {
			return err
		}
	}
	return nil
}

// List returns all activities ordered by id ascending.
func (r *ActivityRepo) List(ctx context.Context) ([]model.Activity, error) {
	const q = `SELECT id, name, max_capacity, used_slots FROM activities ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	acts := make([]model.Activity, 0)
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.MaxCapacity, &a.UsedSlots); err != nil {
			return nil, err
		}
		acts = append(acts, a)
	}
	return acts, rows.Err()
}

// GetByID fetches a single activity. Returns ErrActivityNotFound when the
// id is unknown.
func (r *ActivityRepo) GetByID(ctx context.Context, id uint64) (model.Activity, error) {
	var a model.Activity
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, max_capacity, used_slots FROM activities WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Name, &a.MaxCapacity, &a.UsedSlots)
	if err == sql.ErrNoRows {
		return model.Activity{}, ErrActivityNotFound
	}
	return a, err
}
