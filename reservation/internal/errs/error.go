package errs

import (
	"errors"
)

var (
	ErrNotFound         = errors.New("reservation not found")
	ErrName             = errors.New("name is required")
	ErrRoomID           = errors.New("room_id must be between 1 and 10")
	ErrDateRequired     = errors.New("start and end dates are required")
	ErrDateOrder        = errors.New("start date must be before end date")
	ErrNoNewDate        = errors.New("no new date")
	ErrRoomNotAvailable = errors.New("room is not available")
)

// IsBadRequest reports errors caused by the caller's input.
func IsBadRequest(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrName, ErrRoomID, ErrDateRequired,
		ErrDateOrder, ErrNoNewDate, ErrRoomNotAvailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
