package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"confsite/internal/domain"
)

type programRepository struct {
	DB *sql.DB
}

// NewProgramRepository returns a domain.ProgramRepository implemented with Postgres.
func NewProgramRepository(db *sql.DB) domain.ProgramRepository {
	return &programRepository{DB: db}
}

func (r *programRepository) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	query := `
		SELECT id, name, description, slide_url, video_url, is_recordable, date_id, category_id, created_at, updated_at
		FROM programs
		WHERE id = $1
	`
	p := &domain.Program{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Desc, &p.SlideURL, &p.VideoURL, &p.IsRecordable, &p.DateID, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadAssignments(ctx, []*domain.Program{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *programRepository) List(ctx context.Context) ([]*domain.Program, error) {
	query := `
		SELECT id, name, description, slide_url, video_url, is_recordable, date_id, category_id, created_at, updated_at
		FROM programs
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var programs []*domain.Program
	for rows.Next() {
		p := &domain.Program{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Desc, &p.SlideURL, &p.VideoURL, &p.IsRecordable, &p.DateID, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadAssignments(ctx, programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// loadAssignments fills TimeIDs and RoomIDs for the given programs with two
// ANY queries over the junction tables.
func (r *programRepository) loadAssignments(ctx context.Context, programs []*domain.Program) error {
	if len(programs) == 0 {
		return nil
	}
	ids := make([]string, len(programs))
	byID := make(map[string]*domain.Program, len(programs))
	for i, p := range programs {
		ids[i] = p.ID
		byID[p.ID] = p
		p.TimeIDs = []string{}
		p.RoomIDs = []string{}
	}

	timeRows, err := r.DB.QueryContext(ctx, `
		SELECT pt.program_id, pt.time_id
		FROM program_time_slots pt
		INNER JOIN program_times t ON t.id = pt.time_id
		WHERE pt.program_id = ANY($1)
		ORDER BY t.begin_at
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer timeRows.Close()
	for timeRows.Next() {
		var programID, timeID string
		if err := timeRows.Scan(&programID, &timeID); err != nil {
			return err
		}
		if p := byID[programID]; p != nil {
			p.TimeIDs = append(p.TimeIDs, timeID)
		}
	}
	if err := timeRows.Err(); err != nil {
		return err
	}

	roomRows, err := r.DB.QueryContext(ctx, `
		SELECT program_id, room_id
		FROM program_rooms
		WHERE program_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer roomRows.Close()
	for roomRows.Next() {
		var programID, roomID string
		if err := roomRows.Scan(&programID, &roomID); err != nil {
			return err
		}
		if p := byID[programID]; p != nil {
			p.RoomIDs = append(p.RoomIDs, roomID)
		}
	}
	return roomRows.Err()
}

func (r *programRepository) ListCategories(ctx context.Context) ([]*domain.ProgramCategory, error) {
	query := `
		SELECT id, name, slug
		FROM program_categories
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var categories []*domain.ProgramCategory
	for rows.Next() {
		c := &domain.ProgramCategory{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *programRepository) ListSpeakerEmails(ctx context.Context, programID string) ([]string, error) {
	query := `
		SELECT s.email
		FROM program_speakers ps
		INNER JOIN speakers s ON s.id = ps.speaker_id
		WHERE ps.program_id = $1
	`
	rows, err := r.DB.QueryContext(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func (r *programRepository) UpdateBySpeakerEmail(ctx context.Context, p *domain.Program, speakerEmail string) error {
	query := `
		UPDATE programs
		SET name = $1, description = $2, slide_url = $3, video_url = $4, is_recordable = $5, updated_at = $6
		WHERE id = $7
		  AND EXISTS (
			SELECT 1
			FROM program_speakers ps
			INNER JOIN speakers s ON s.id = ps.speaker_id
			WHERE ps.program_id = programs.id AND LOWER(s.email) = LOWER($8)
		  )
	`
	res, err := r.DB.ExecContext(ctx, query, p.Name, p.Desc, p.SlideURL, p.VideoURL, p.IsRecordable, p.UpdatedAt, p.ID, speakerEmail)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
