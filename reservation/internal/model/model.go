package model

const (
	MinRoomID = 1
	MaxRoomID = 10
)

type Reservation struct {
	Name      string `json:"name" db:"name" validate:"required"`
	StartDate Date   `json:"start_date" db:"start_date" swaggertype:"string" example:"2024-01-01"`
	EndDate   Date   `json:"end_date" db:"end_date" swaggertype:"string" example:"2024-01-05"`
	RoomID    int    `json:"room_id" db:"room_id" validate:"min=1,max=10"`
}

func (r Reservation) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// SameKey compares the natural key (name, room, start, end).
func (r Reservation) SameKey(o Reservation) bool {
	return r.Name == o.Name &&
		r.RoomID == o.RoomID &&
		r.StartDate.Equal(o.StartDate) &&
		r.EndDate.Equal(o.EndDate)
}

// DateRange is an inclusive range of days.
type DateRange struct {
	Start Date
	End   Date
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() || r.End.IsZero()
}

func (r DateRange) Equal(o DateRange) bool {
	return r.Start.Equal(o.Start) && r.End.Equal(o.End)
}

// Ordered reports start <= end.
func (r DateRange) Ordered() bool {
	return !r.End.Before(r.Start)
}

// Overlaps reports whether candidate c collides with the stored range r:
// c starts inside r, c ends inside r, or c contains r.
func (r DateRange) Overlaps(c DateRange) bool {
	startsInside := !c.Start.Before(r.Start) && !r.End.Before(c.Start)
	endsInside := !c.End.Before(r.Start) && !r.End.Before(c.End)
	contains := !r.Start.Before(c.Start) && !c.End.Before(r.End)
	return startsInside || endsInside || contains
}

type UpdateReservationRequest struct {
	Reservation  Reservation `json:"reservation"`
	NewStartDate Date        `json:"new_start_date" swaggertype:"string" example:"2024-01-02"`
	NewEndDate   Date        `json:"new_end_date" swaggertype:"string" example:"2024-01-06"`
}

func (r UpdateReservationRequest) NewRange() DateRange {
	return DateRange{Start: r.NewStartDate, End: r.NewEndDate}
}

type ListReservationsResponse struct {
	Result []Reservation `json:"result"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AvailabilityRequest struct {
	RoomID    int    `query:"room_id" json:"room_id" validate:"min=1,max=10"`
	StartDate string `query:"start_date" json:"start_date" validate:"required"`
	EndDate   string `query:"end_date" json:"end_date" validate:"required"`
}

type AvailabilityResponse struct {
	RoomID    int  `json:"room_id"`
	StartDate Date `json:"start_date" swaggertype:"string" example:"2024-01-01"`
	EndDate   Date `json:"end_date" swaggertype:"string" example:"2024-01-05"`
	Available bool `json:"available"`
}
