package handler

import (
	"context"

	"github.com/Astemirdum/hotel-reservation/reservation/internal/model"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type ReservationService interface {
	GetReservationsByName(ctx context.Context, name string) ([]model.Reservation, error)
	GetReservationsByRoom(ctx context.Context, roomID int) ([]model.Reservation, error)
	IsAvailable(ctx context.Context, roomID int, rng model.DateRange) (bool, error)
	CreateReservation(ctx context.Context, rsv model.Reservation) error
	UpdateReservation(ctx context.Context, req model.UpdateReservationRequest) error
	CancelReservation(ctx context.Context, rsv model.Reservation) error
}

var _ ReservationService = (*service.Service)(nil)
