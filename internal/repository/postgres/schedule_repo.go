package postgres

import (
	"context"
	"database/sql"

	"confsite/internal/domain"
)

type scheduleRepository struct {
	DB *sql.DB
}

// NewScheduleRepository returns a domain.ScheduleRepository implemented with Postgres.
func NewScheduleRepository(db *sql.DB) domain.ScheduleRepository {
	return &scheduleRepository{DB: db}
}

func (r *scheduleRepository) ListDates(ctx context.Context) ([]*domain.ProgramDate, error) {
	query := `
		SELECT id, day
		FROM program_dates
		ORDER BY day
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var dates []*domain.ProgramDate
	for rows.Next() {
		d := &domain.ProgramDate{}
		if err := rows.Scan(&d.ID, &d.Day); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *scheduleRepository) ListTimes(ctx context.Context) ([]*domain.ProgramTime, error) {
	query := `
		SELECT id, name, begin_at, end_at
		FROM program_times
		ORDER BY begin_at
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var times []*domain.ProgramTime
	for rows.Next() {
		t := &domain.ProgramTime{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Begin, &t.End); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func (r *scheduleRepository) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	query := `
		SELECT id, name, description
		FROM rooms
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var rooms []*domain.Room
	for rows.Next() {
		room := &domain.Room{}
		if err := rows.Scan(&room.ID, &room.Name, &room.Desc); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *scheduleRepository) GetRoomByID(ctx context.Context, id string) (*domain.Room, error) {
	query := `
		SELECT id, name, description
		FROM rooms
		WHERE id = $1
	`
	room := &domain.Room{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&room.ID, &room.Name, &room.Desc)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return room, nil
}
