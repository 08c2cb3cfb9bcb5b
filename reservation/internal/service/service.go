package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Astemirdum/hotel-reservation/pkg/kafka"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/errs"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/metrics"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/model"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/repository"
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

type Service struct {
	log     *zap.Logger
	repo    repository.Repository
	events  kafka.Publisher
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithPublisher(p kafka.Publisher) Option {
	return func(s *Service) {
		s.events = p
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(repo repository.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:    log.Named("service"),
		repo:   repo,
		events: kafka.NewNopPublisher(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GetReservationsByName(ctx context.Context, name string) ([]model.Reservation, error) {
	if name == "" {
		return nil, errs.ErrName
	}
	return s.repo.ListByName(ctx, name)
}

func (s *Service) GetReservationsByRoom(ctx context.Context, roomID int) ([]model.Reservation, error) {
	if err := validateRoom(roomID); err != nil {
		return nil, err
	}
	return s.repo.ListByRoom(ctx, roomID)
}

// IsAvailable reports whether no reservation of the room overlaps rng.
func (s *Service) IsAvailable(ctx context.Context, roomID int, rng model.DateRange) (bool, error) {
	if err := validateRoom(roomID); err != nil {
		return false, err
	}
	if err := validateRange(rng); err != nil {
		return false, err
	}
	return s.available(ctx, roomID, rng)
}

func (s *Service) CreateReservation(ctx context.Context, rsv model.Reservation) (err error) {
	defer func() { s.metrics.Observe(opCreate, err) }()

	if err = validateReservation(rsv); err != nil {
		return err
	}
	ok, err := s.available(ctx, rsv.RoomID, rsv.Range())
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrRoomNotAvailable
	}
	if err = s.repo.Create(ctx, rsv); err != nil {
		return err
	}

	s.publish(ctx, newEvent(kafka.EventCreated, rsv))
	return nil
}

// UpdateReservation moves an existing reservation to new dates. The new range
// must not overlap any stored reservation of the room, the moved one included.
func (s *Service) UpdateReservation(ctx context.Context, req model.UpdateReservationRequest) (err error) {
	defer func() { s.metrics.Observe(opUpdate, err) }()

	rsv, newRange := req.Reservation, req.NewRange()
	if newRange.Start.IsZero() && newRange.End.IsZero() {
		return errs.ErrNoNewDate
	}
	if err = validateReservation(rsv); err != nil {
		return err
	}
	if newRange.Equal(rsv.Range()) {
		return errs.ErrNoNewDate
	}
	if err = validateRange(newRange); err != nil {
		return err
	}
	ok, err := s.available(ctx, rsv.RoomID, newRange)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrRoomNotAvailable
	}
	if err = s.repo.UpdateDates(ctx, rsv, newRange); err != nil {
		return err
	}

	ev := newEvent(kafka.EventUpdated, model.Reservation{
		Name:      rsv.Name,
		RoomID:    rsv.RoomID,
		StartDate: newRange.Start,
		EndDate:   newRange.End,
	})
	ev.PrevStartDate, ev.PrevEndDate = rsv.StartDate.String(), rsv.EndDate.String()
	s.publish(ctx, ev)
	return nil
}

// CancelReservation removes the reservation matching the natural key.
// Cancelling a missing reservation is not an error.
func (s *Service) CancelReservation(ctx context.Context, rsv model.Reservation) (err error) {
	defer func() { s.metrics.Observe(opDelete, err) }()

	if err = validateReservation(rsv); err != nil {
		return err
	}
	if err = s.repo.Delete(ctx, rsv); err != nil {
		return err
	}

	s.publish(ctx, newEvent(kafka.EventDeleted, rsv))
	return nil
}

func (s *Service) available(ctx context.Context, roomID int, rng model.DateRange) (bool, error) {
	conflicts, err := s.repo.ListOverlapping(ctx, roomID, rng)
	if err != nil {
		return false, err
	}
	for _, c := range conflicts {
		s.log.Debug("conflict",
			zap.Int("room_id", roomID),
			zap.Stringer("start", rng.Start),
			zap.Stringer("end", rng.End),
			zap.String("held_by", c.Name))
		return false, nil
	}
	return true, nil
}

func (s *Service) publish(ctx context.Context, ev kafka.ReservationEvent) {
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish event",
			zap.String("type", string(ev.Type)),
			zap.Int("room_id", ev.RoomID),
			zap.Error(err))
	}
}

func newEvent(typ kafka.EventType, rsv model.Reservation) kafka.ReservationEvent {
	return kafka.NewReservationEvent(typ, rsv.Name, rsv.RoomID, rsv.StartDate.String(), rsv.EndDate.String())
}
