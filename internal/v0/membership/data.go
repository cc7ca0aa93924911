package membership

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Repository provides access to the memberships collection
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new membership repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectMembership = `
	SELECT id, user_id, total_meals, consumed_meals, remaining_meals, status,
	       weeks, history, version, created_at, updated_at
	FROM memberships`

// Create inserts a new membership document
func (r *Repository) Create(ctx context.Context, m *Membership) error {
	m.Recompute()
	weeks, history, err := encodeDocument(m)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO memberships (id, user_id, total_meals, consumed_meals, remaining_meals, status,
		                         weeks, history, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.TotalMeals, m.ConsumedMeals, m.RemainingMeals, m.Status,
		weeks, history, m.Version, m.CreatedAt, m.UpdatedAt,
	)
	return err
}

// GetByID returns a membership by ID, or nil when it does not exist
func (r *Repository) GetByID(ctx context.Context, id string) (*Membership, error) {
	row := r.db.QueryRowContext(ctx, selectMembership+` WHERE id = ?`, id)
	m, err := scanMembership(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListByUser returns every membership of a user, newest first
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Membership, error) {
	rows, err := r.db.QueryContext(ctx, selectMembership+` WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memberships := []Membership{}
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, *m)
	}
	return memberships, rows.Err()
}

// Update writes m only if the stored version still equals expectedVersion.
// It reports false when another writer got there first; on success
// m.Version is advanced to the stored value.
func (r *Repository) Update(ctx context.Context, m *Membership, expectedVersion int64) (bool, error) {
	m.Recompute()
	weeks, history, err := encodeDocument(m)
	if err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE memberships
		SET consumed_meals = ?, remaining_meals = ?, status = ?, weeks = ?, history = ?,
		    version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		m.ConsumedMeals, m.RemainingMeals, m.Status, weeks, history, m.UpdatedAt,
		m.ID, expectedVersion,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}
	m.Version = expectedVersion + 1
	return true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMembership(s scanner) (*Membership, error) {
	var m Membership
	var weeks, history string
	if err := s.Scan(
		&m.ID, &m.UserID, &m.TotalMeals, &m.ConsumedMeals, &m.RemainingMeals, &m.Status,
		&weeks, &history, &m.Version, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(weeks), &m.Weeks); err != nil {
		return nil, fmt.Errorf("decode weeks of membership %s: %w", m.ID, err)
	}
	if err := json.Unmarshal([]byte(history), &m.History); err != nil {
		return nil, fmt.Errorf("decode history of membership %s: %w", m.ID, err)
	}
	if m.Weeks == nil {
		m.Weeks = []WeekPlan{}
	}
	if m.History == nil {
		m.History = []HistoryEntry{}
	}
	return &m, nil
}

func encodeDocument(m *Membership) (weeks, history string, err error) {
	w, err := json.Marshal(m.Weeks)
	if err != nil {
		return "", "", fmt.Errorf("encode weeks: %w", err)
	}
	h, err := json.Marshal(m.History)
	if err != nil {
		return "", "", fmt.Errorf("encode history: %w", err)
	}
	return string(w), string(h), nil
}


/*
This project is the backend API for the Total Health meal-plan platform. Memberships, meal punching and table bookings for the ordering site and the admin dashboard.
API Copyright (C) 2025 Total Health
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
