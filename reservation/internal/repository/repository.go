package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/hotel-reservation/reservation/internal/errs"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/model"
)

type Repository interface {
	ListByName(ctx context.Context, name string) ([]model.Reservation, error)
	ListByRoom(ctx context.Context, roomID int) ([]model.Reservation, error)
	// ListOverlapping returns the reservations of the room whose range collides with rng.
	ListOverlapping(ctx context.Context, roomID int, rng model.DateRange) ([]model.Reservation, error)
	Create(ctx context.Context, r model.Reservation) error
	// UpdateDates moves the reservation matching r's natural key to rng.
	UpdateDates(ctx context.Context, r model.Reservation, rng model.DateRange) error
	Delete(ctx context.Context, r model.Reservation) error
}

type repository struct {
	db  *sqlx.DB
	qb  sq.StatementBuilderType
	log *zap.Logger
}

// NewRepository works on top of both the pgx and the sqlite driver.
func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	qb := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if db.DriverName() == "pgx" {
		qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return &repository{
		db:  db,
		qb:  qb,
		log: log.Named("repo"),
	}, nil
}

const (
	reservationTableName = `reservation`
)

var reservationColumns = []string{"name", "start_date", "end_date", "room_id"}

func (r *repository) ListByName(ctx context.Context, name string) ([]model.Reservation, error) {
	return r.list(ctx, sq.Eq{"name": name})
}

func (r *repository) ListByRoom(ctx context.Context, roomID int) ([]model.Reservation, error) {
	return r.list(ctx, sq.Eq{"room_id": roomID})
}

func (r *repository) ListOverlapping(ctx context.Context, roomID int, rng model.DateRange) ([]model.Reservation, error) {
	start, end := rng.Start, rng.End
	return r.list(ctx, sq.And{
		sq.Eq{"room_id": roomID},
		sq.Or{
			sq.And{sq.LtOrEq{"start_date": start}, sq.GtOrEq{"end_date": start}},
			sq.And{sq.LtOrEq{"start_date": end}, sq.GtOrEq{"end_date": end}},
			sq.And{sq.GtOrEq{"start_date": start}, sq.LtOrEq{"end_date": end}},
		},
	})
}

func (r *repository) list(ctx context.Context, where sq.Sqlizer) ([]model.Reservation, error) {
	q, args, err := r.qb.Select(reservationColumns...).
		From(reservationTableName).
		Where(where).
		OrderBy("start_date", "room_id", "name").
		ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("list", zap.String("q", q), zap.Any("args", args))

	items := make([]model.Reservation, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, errors.Wrap(err, "db.Select")
	}
	return items, nil
}

func (r *repository) Create(ctx context.Context, rsv model.Reservation) error {
	q, args, err := r.qb.Insert(reservationTableName).
		Columns(reservationColumns...).
		Values(rsv.Name, rsv.StartDate, rsv.EndDate, rsv.RoomID).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		r.log.Error("Create", zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return translate(err)
	}
	return nil
}

func (r *repository) UpdateDates(ctx context.Context, rsv model.Reservation, rng model.DateRange) error {
	q, args, err := r.qb.Update(reservationTableName).
		Set("start_date", rng.Start).
		Set("end_date", rng.End).
		Where(naturalKey(rsv)).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		r.log.Error("UpdateDates", zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "RowsAffected")
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, rsv model.Reservation) error {
	q, args, err := r.qb.Delete(reservationTableName).
		Where(naturalKey(rsv)).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return errors.Wrap(err, "db.Exec")
	}
	return nil
}

func naturalKey(rsv model.Reservation) sq.Eq {
	return sq.Eq{
		"name":       rsv.Name,
		"room_id":    rsv.RoomID,
		"start_date": rsv.StartDate,
		"end_date":   rsv.EndDate,
	}
}
