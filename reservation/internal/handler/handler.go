package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	md "github.com/Astemirdum/hotel-reservation/pkg/middleware"
	"github.com/Astemirdum/hotel-reservation/pkg/validate"
	_ "github.com/Astemirdum/hotel-reservation/reservation/docs" // swagger docs
	"github.com/Astemirdum/hotel-reservation/reservation/internal/errs"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/metrics"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/model"
)

const (
	msgInserted = "Reservation inserted"
	msgUpdated  = "Reservation updated"
	msgDeleted  = "Reservation deleted"
)

type Handler struct {
	reservationSvc ReservationService
	registry       *prometheus.Registry
	log            *zap.Logger
}

type Option func(*Handler)

// WithRegistry shares a prometheus registry with the rest of the app.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(h *Handler) {
		h.registry = reg
	}
}

func New(reservationSvc ReservationService, log *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		reservationSvc: reservationSvc,
		log:            log.Named("handler"),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.registry == nil {
		h.registry = prometheus.NewRegistry()
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})))
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	httpMetrics := md.NewHTTPMetrics(h.registry, metrics.Namespace)
	api := e.Group("/reservation",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		httpMetrics.Middleware,
	)

	api.GET("/by-name/:name", h.GetReservationsByName)
	api.GET("/by-room/:room_id", h.GetReservationsByRoom)
	api.GET("/availability", h.Availability)
	api.POST("", h.CreateReservation)
	api.PUT("/update", h.UpdateReservation)
	api.DELETE("/delete", h.CancelReservation)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// GetReservationsByName godoc
// @Summary  List reservations of a guest
// @Tags     reservation
// @Produce  json
// @Param    name path string true "guest name"
// @Success  200 {object} model.ListReservationsResponse
// @Failure  400 {object} echo.HTTPError
// @Router   /reservation/by-name/{name} [get]
func (h *Handler) GetReservationsByName(c echo.Context) error {
	rsvs, err := h.reservationSvc.GetReservationsByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.ListReservationsResponse{Result: rsvs})
}

// GetReservationsByRoom godoc
// @Summary  List reservations of a room
// @Tags     reservation
// @Produce  json
// @Param    room_id path int true "room id, 1-10"
// @Success  200 {object} model.ListReservationsResponse
// @Failure  400 {object} echo.HTTPError
// @Router   /reservation/by-room/{room_id} [get]
func (h *Handler) GetReservationsByRoom(c echo.Context) error {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "room_id must be an integer")
	}
	rsvs, err := h.reservationSvc.GetReservationsByRoom(c.Request().Context(), roomID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.ListReservationsResponse{Result: rsvs})
}

// Availability godoc
// @Summary  Check whether a room is free for a date range
// @Tags     reservation
// @Produce  json
// @Param    room_id    query int    true "room id, 1-10"
// @Param    start_date query string true "YYYY-MM-DD"
// @Param    end_date   query string true "YYYY-MM-DD"
// @Success  200 {object} model.AvailabilityResponse
// @Failure  400 {object} echo.HTTPError
// @Router   /reservation/availability [get]
func (h *Handler) Availability(c echo.Context) error {
	var req model.AvailabilityRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	start, err := model.ParseDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}
	end, err := model.ParseDate(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end_date must be YYYY-MM-DD")
	}

	ok, err := h.reservationSvc.IsAvailable(c.Request().Context(), req.RoomID, model.DateRange{Start: start, End: end})
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.AvailabilityResponse{
		RoomID:    req.RoomID,
		StartDate: start,
		EndDate:   end,
		Available: ok,
	})
}

// CreateReservation godoc
// @Summary  Reserve a room
// @Tags     reservation
// @Accept   json
// @Produce  json
// @Param    reservation body model.Reservation true "reservation"
// @Success  200 {object} model.MessageResponse
// @Failure  400 {object} echo.HTTPError
// @Router   /reservation [post]
func (h *Handler) CreateReservation(c echo.Context) error {
	var req model.Reservation
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.reservationSvc.CreateReservation(c.Request().Context(), req); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: msgInserted})
}

// UpdateReservation godoc
// @Summary  Move a reservation to new dates
// @Tags     reservation
// @Accept   json
// @Produce  json
// @Param    request body model.UpdateReservationRequest true "reservation and its new dates"
// @Success  200 {object} model.MessageResponse
// @Failure  400 {object} echo.HTTPError
// @Router   /reservation/update [put]
func (h *Handler) UpdateReservation(c echo.Context) error {
	var req model.UpdateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.reservationSvc.UpdateReservation(c.Request().Context(), req); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: msgUpdated})
}

// CancelReservation godoc
// @Summary  Cancel a reservation by its exact name, room and dates
// @Tags     reservation
// @Accept   json
// @Produce  json
// @Param    reservation body model.Reservation true "reservation"
// @Success  200 {object} model.MessageResponse
// @Failure  400 {object} echo.HTTPError
// @Router   /reservation/delete [delete]
func (h *Handler) CancelReservation(c echo.Context) error {
	var req model.Reservation
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.reservationSvc.CancelReservation(c.Request().Context(), req); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: msgDeleted})
}

func (h *Handler) httpError(err error) error {
	if errs.IsBadRequest(err) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.log.Error("reservation service", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
