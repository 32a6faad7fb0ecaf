package store

import (
	"context"
	"time"

	"appointment-api/internal/apperror"
	"appointment-api/internal/model"
)

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO appointments (id, title, description, start_time, end_time, location, status, user_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING created_at, updated_at`,
		a.ID, a.Title, a.Description, a.StartTime, a.EndTime, a.Location, a.Status, a.UserID,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return apperror.NewInternal("could not create appointment", err)
	}
	return nil
}

// ListAppointments returns the user's appointments overlapping [from, to],
// ordered by start time. Zero bounds are left open.
func (s *Store) ListAppointments(ctx context.Context, userID string, from, to time.Time) ([]model.Appointment, error) {
	q := `SELECT id, title, description, start_time, end_time, location, status, user_id, created_at, updated_at
	      FROM appointments
	      WHERE user_id = $1`
	args := []any{userID}

	if !from.IsZero() {
		args = append(args, from)
		q += ` AND end_time >= $2`
	}
	if !to.IsZero() {
		args = append(args, to)
		if from.IsZero() {
			q += ` AND start_time <= $2`
		} else {
			q += ` AND start_time <= $3`
		}
	}
	q += ` ORDER BY start_time`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, apperror.NewInternal("could not list appointments", err)
	}
	defer rows.Close()

	out := []model.Appointment{}
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Description, &a.StartTime, &a.EndTime,
			&a.Location, &a.Status, &a.UserID, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, apperror.NewInternal("could not list appointments", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("could not list appointments", err)
	}
	return out, nil
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, description, start_time, end_time, location, status, user_id, created_at, updated_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.Title, &a.Description, &a.StartTime, &a.EndTime,
		&a.Location, &a.Status, &a.UserID, &a.CreatedAt, &a.UpdatedAt)
	if isNoRows(err) {
		return nil, apperror.NewNotFound("appointment not found")
	}
	if err != nil {
		return nil, apperror.NewInternal("could not load appointment", err)
	}
	return a, nil
}

// UpdateAppointment rewrites the mutable fields. The owner reference is
// never reassigned.
func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE appointments
		 SET title=$1, description=$2, start_time=$3, end_time=$4, location=$5, status=$6, updated_at=NOW()
		 WHERE id=$7
		 RETURNING updated_at`,
		a.Title, a.Description, a.StartTime, a.EndTime, a.Location, a.Status, a.ID,
	).Scan(&a.UpdatedAt)
	if isNoRows(err) {
		return apperror.NewNotFound("appointment not found")
	}
	if err != nil {
		return apperror.NewInternal("could not update appointment", err)
	}
	return nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("could not delete appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("appointment not found")
	}
	return nil
}
