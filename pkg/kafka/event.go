package kafka

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// ReservationEvent describes a change applied to the reservation store.
// Dates are formatted as YYYY-MM-DD.
type ReservationEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	Type          EventType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	Name          string    `json:"name"`
	RoomID        int       `json:"room_id"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	PrevStartDate string    `json:"prev_start_date,omitempty"`
	PrevEndDate   string    `json:"prev_end_date,omitempty"`
}

func NewReservationEvent(typ EventType, name string, roomID int, start, end string) ReservationEvent {
	return ReservationEvent{
		EventID:   uuid.New(),
		Type:      typ,
		Timestamp: time.Now().UTC(),
		Name:      name,
		RoomID:    roomID,
		StartDate: start,
		EndDate:   end,
	}
}
