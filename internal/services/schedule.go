package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"confsite/internal/domain"
)

type scheduleService struct {
	scheduleRepo   domain.ScheduleRepository
	programRepo    domain.ProgramRepository
	cache          domain.ScheduleCache
	contextTimeout time.Duration
}

// NewScheduleService creates a ScheduleService. cache may be nil, in which
// case every request assembles the grid from the store.
func NewScheduleService(scheduleRepo domain.ScheduleRepository, programRepo domain.ProgramRepository, cache domain.ScheduleCache, timeout time.Duration) domain.ScheduleService {
	return &scheduleService{
		scheduleRepo:   scheduleRepo,
		programRepo:    programRepo,
		cache:          cache,
		contextTimeout: timeout,
	}
}

func (s *scheduleService) GetSchedule(ctx context.Context) (*domain.ScheduleGrid, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if s.cache != nil {
		if grid, ok := s.cache.Get(ctx); ok {
			return grid, nil
		}
	}

	dates, err := s.scheduleRepo.ListDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dates: %w", err)
	}
	times, err := s.scheduleRepo.ListTimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list times: %w", err)
	}
	rooms, err := s.scheduleRepo.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	programs, err := s.programRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}

	grid := BuildScheduleGrid(dates, times, rooms, programs)
	if s.cache != nil {
		s.cache.Set(ctx, grid)
	}
	return grid, nil
}

// cellKey identifies one (date, time, room) grid cell.
type cellKey struct {
	dateID string
	timeID string
	roomID string
}

// BuildScheduleGrid assembles the wide and narrow schedule views. It is a
// pure function over its inputs and holds no state across invocations.
//
// A program occupies a cell only at the earliest (by Begin) of its assigned
// time slots, and is placed at most once per build: a program spanning
// several rooms or slots shows up in exactly one cell. When two programs
// claim the same cell, the one listed first wins and the other is left out.
// Programs matching no (date, time, room) triple are silently omitted.
//
// Wide holds an entry for every date/time/room triple with nil as the empty
// marker. Narrow keeps only time rows with at least one occupied room.
func BuildScheduleGrid(dates []*domain.ProgramDate, times []*domain.ProgramTime, rooms []*domain.Room, programs []*domain.Program) *domain.ScheduleGrid {
	// Order slots by begin value ascending. The tie-break for "first
	// assigned time slot" is this order, not insertion order.
	ordered := make([]*domain.ProgramTime, len(times))
	copy(ordered, times)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Begin.Before(ordered[j].Begin)
	})
	rank := make(map[string]int, len(ordered))
	for i, t := range ordered {
		rank[t.ID] = i
	}

	// Earliest assigned slot per program. Slot IDs that are not a grid
	// axis are ignored.
	firstSlot := make(map[string]string, len(programs))
	for _, p := range programs {
		best := -1
		for _, tid := range p.TimeIDs {
			r, ok := rank[tid]
			if !ok {
				continue
			}
			if best == -1 || r < best {
				best = r
				firstSlot[p.ID] = tid
			}
		}
	}

	// Index the first claimant of every cell once, replacing a per-cell
	// scan over the program list with O(1) lookups.
	byCell := make(map[cellKey]*domain.Program)
	for _, p := range programs {
		for _, tid := range p.TimeIDs {
			for _, rid := range p.RoomIDs {
				k := cellKey{dateID: p.DateID, timeID: tid, roomID: rid}
				if _, taken := byCell[k]; !taken {
					byCell[k] = p
				}
			}
		}
	}

	wide := make(map[string]map[string]map[string]*domain.Program, len(dates))
	narrow := make(map[string]map[string]map[string]*domain.Program, len(dates))
	visited := make(map[string]struct{}, len(programs))

	for _, d := range dates {
		wide[d.ID] = make(map[string]map[string]*domain.Program, len(ordered))
		narrow[d.ID] = make(map[string]map[string]*domain.Program)
		for _, t := range ordered {
			row := make(map[string]*domain.Program, len(rooms))
			var occupied map[string]*domain.Program
			for _, r := range rooms {
				row[r.ID] = nil
				p := byCell[cellKey{dateID: d.ID, timeID: t.ID, roomID: r.ID}]
				if p == nil {
					continue
				}
				if firstSlot[p.ID] != t.ID {
					continue
				}
				if _, done := visited[p.ID]; done {
					continue
				}
				visited[p.ID] = struct{}{}
				row[r.ID] = p
				if occupied == nil {
					occupied = make(map[string]*domain.Program, len(rooms))
				}
				occupied[r.ID] = p
			}
			wide[d.ID][t.ID] = row
			if occupied != nil {
				narrow[d.ID][t.ID] = occupied
			}
		}
	}

	return &domain.ScheduleGrid{
		Dates:  dates,
		Times:  ordered,
		Rooms:  rooms,
		Wide:   wide,
		Narrow: narrow,
	}
}
