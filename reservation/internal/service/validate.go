package service

import (
	"github.com/Astemirdum/hotel-reservation/reservation/internal/errs"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/model"
)

func validateRoom(roomID int) error {
	if roomID < model.MinRoomID || roomID > model.MaxRoomID {
		return errs.ErrRoomID
	}
	return nil
}

func validateRange(rng model.DateRange) error {
	if rng.IsZero() {
		return errs.ErrDateRequired
	}
	if !rng.Ordered() {
		return errs.ErrDateOrder
	}
	return nil
}

func validateReservation(rsv model.Reservation) error {
	if rsv.Name == "" {
		return errs.ErrName
	}
	if err := validateRoom(rsv.RoomID); err != nil {
		return err
	}
	return validateRange(rsv.Range())
}
