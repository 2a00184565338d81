package domain

import (
	"context"
	"time"
)

// Room represents a physical space used as a schedule grid axis
// swagger:model Room
type Room struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// ProgramDate is one calendar day of the event.
type ProgramDate struct {
	ID  string    `json:"id"`
	Day time.Time `json:"day"`
}

// ProgramTime is a named time interval used as a schedule grid axis,
// ordered by Begin.
type ProgramTime struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Begin time.Time `json:"begin"`
	End   time.Time `json:"end"`
}

// ProgramCategory groups programs on the program list page.
type ProgramCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Program represents a scheduled talk or activity. A program is linked to
// one date and to sets of time slots and rooms; its displayed start slot is
// the earliest (by Begin) of its assigned slots.
// swagger:model Program
type Program struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Desc         string    `json:"desc"`
	SlideURL     string    `json:"slide_url"`
	VideoURL     string    `json:"video_url"`
	IsRecordable bool      `json:"is_recordable"`
	DateID       string    `json:"date_id"`
	CategoryID   string    `json:"category_id"`
	TimeIDs      []string  `json:"time_ids"`
	RoomIDs      []string  `json:"room_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ScheduleGrid is the assembled day/time/room view of the program.
// Wide holds an entry for every (date, time, room) triple, with nil marking
// an empty cell. Narrow holds only (date, time) rows with at least one
// occupied room. Keys are entity IDs; the axis slices carry display order.
type ScheduleGrid struct {
	Dates  []*ProgramDate                           `json:"dates"`
	Times  []*ProgramTime                           `json:"times"`
	Rooms  []*Room                                  `json:"rooms"`
	Wide   map[string]map[string]map[string]*Program `json:"wide"`
	Narrow map[string]map[string]map[string]*Program `json:"narrow"`
}

// ScheduleRepository provides the grid axes: dates, times, and rooms.
type ScheduleRepository interface {
	ListDates(ctx context.Context) ([]*ProgramDate, error)
	// ListTimes returns time slots in ascending Begin order.
	ListTimes(ctx context.Context) ([]*ProgramTime, error)
	ListRooms(ctx context.Context) ([]*Room, error)
	GetRoomByID(ctx context.Context, id string) (*Room, error)
}

// ProgramRepository defines the interface for program storage.
type ProgramRepository interface {
	GetByID(ctx context.Context, id string) (*Program, error)
	List(ctx context.Context) ([]*Program, error)
	ListCategories(ctx context.Context) ([]*ProgramCategory, error)
	// ListSpeakerEmails returns the emails of the speakers assigned to the
	// program, used for the edit-permission check.
	ListSpeakerEmails(ctx context.Context, programID string) ([]string, error)
	// UpdateBySpeakerEmail updates the program only when one of its
	// speakers has the given email. Returns ErrNotFound otherwise.
	UpdateBySpeakerEmail(ctx context.Context, p *Program, speakerEmail string) error
}

// ScheduleService assembles the schedule grid.
type ScheduleService interface {
	GetSchedule(ctx context.Context) (*ScheduleGrid, error)
}

// CategoryPrograms is one program-list section: a category and its programs.
type CategoryPrograms struct {
	Category *ProgramCategory `json:"category"`
	Programs []*Program       `json:"programs"`
}

// ProgramService defines program listing and speaker-scoped editing.
type ProgramService interface {
	ListByCategory(ctx context.Context) ([]*CategoryPrograms, error)
	// Get returns the program and whether viewerEmail matches one of its
	// speakers' emails.
	Get(ctx context.Context, id, viewerEmail string) (program *Program, editable bool, err error)
	// UpdateAsSpeaker updates the program when the requester's email
	// matches one of its speakers.
	UpdateAsSpeaker(ctx context.Context, p *Program, email string) error
}

// ScheduleCache caches an assembled grid. Implementations are fail-safe:
// a miss or a backend outage behaves like an empty cache.
type ScheduleCache interface {
	Get(ctx context.Context) (*ScheduleGrid, bool)
	Set(ctx context.Context, grid *ScheduleGrid)
	Invalidate(ctx context.Context)
}
