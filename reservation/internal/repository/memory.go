package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Astemirdum/hotel-reservation/reservation/internal/errs"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/model"
)

// MemoryRepository keeps reservations in process, grouped by room.
type MemoryRepository struct {
	mu    sync.RWMutex
	rooms map[int][]model.Reservation
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rooms: make(map[int][]model.Reservation),
	}
}

func (m *MemoryRepository) ListByName(_ context.Context, name string) ([]model.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]model.Reservation, 0)
	for _, rsvs := range m.rooms {
		for _, r := range rsvs {
			if r.Name == name {
				result = append(result, r)
			}
		}
	}
	sortReservations(result)
	return result, nil
}

func (m *MemoryRepository) ListByRoom(_ context.Context, roomID int) ([]model.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := append(make([]model.Reservation, 0, len(m.rooms[roomID])), m.rooms[roomID]...)
	sortReservations(result)
	return result, nil
}

func (m *MemoryRepository) ListOverlapping(_ context.Context, roomID int, rng model.DateRange) ([]model.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]model.Reservation, 0)
	for _, r := range m.rooms[roomID] {
		if r.Range().Overlaps(rng) {
			result = append(result, r)
		}
	}
	sortReservations(result)
	return result, nil
}

func (m *MemoryRepository) Create(_ context.Context, rsv model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.find(rsv) >= 0 {
		return errs.ErrRoomNotAvailable
	}
	m.rooms[rsv.RoomID] = append(m.rooms[rsv.RoomID], rsv)
	return nil
}

func (m *MemoryRepository) UpdateDates(_ context.Context, rsv model.Reservation, rng model.DateRange) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.find(rsv)
	if i < 0 {
		return errs.ErrNotFound
	}
	m.rooms[rsv.RoomID][i].StartDate = rng.Start
	m.rooms[rsv.RoomID][i].EndDate = rng.End
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, rsv model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.find(rsv)
	if i < 0 {
		return nil
	}
	rsvs := m.rooms[rsv.RoomID]
	m.rooms[rsv.RoomID] = append(rsvs[:i:i], rsvs[i+1:]...)
	return nil
}

// find must be called with mu held.
func (m *MemoryRepository) find(rsv model.Reservation) int {
	for i, r := range m.rooms[rsv.RoomID] {
		if r.SameKey(rsv) {
			return i
		}
	}
	return -1
}

func sortReservations(rsvs []model.Reservation) {
	sort.Slice(rsvs, func(i, j int) bool {
		a, b := rsvs[i], rsvs[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		if a.RoomID != b.RoomID {
			return a.RoomID < b.RoomID
		}
		return a.Name < b.Name
	})
}
