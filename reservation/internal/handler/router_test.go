package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/hotel-reservation/reservation/internal/handler"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/metrics"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/model"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/repository"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/service"
)

type client struct {
	t *testing.T
	e *echo.Echo
}

func newClient(t *testing.T) *client {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc := service.NewService(repository.NewMemoryRepository(), zap.NewNop(), service.WithMetrics(metrics.New(reg)))
	h := handler.New(svc, zap.NewNop(), handler.WithRegistry(reg))
	return &client{t: t, e: h.NewRouter()}
}

func (c *client) do(method, target, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	c.e.ServeHTTP(w, r)
	return w
}

func reservationBody(name string, room int, start, end string) string {
	b, _ := json.Marshal(map[string]any{"name": name, "room_id": room, "start_date": start, "end_date": end})
	return string(b)
}

func TestRouter_Reservations(t *testing.T) {
	t.Parallel()
	c := newClient(t)

	w := c.do(http.MethodPost, "/reservation", reservationBody("alice", 5, "2024-01-01", "2024-01-05"))
	require.Equal(t, http.StatusOK, w.Code)

	// overlapping range on the same room
	w = c.do(http.MethodPost, "/reservation", reservationBody("bob", 5, "2024-01-03", "2024-01-06"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "room is not available")

	// same range on another room
	w = c.do(http.MethodPost, "/reservation", reservationBody("bob", 6, "2024-01-01", "2024-01-05"))
	require.Equal(t, http.StatusOK, w.Code)

	for _, room := range []int{0, 11} {
		w = c.do(http.MethodPost, "/reservation", reservationBody("bob", room, "2024-02-01", "2024-02-05"))
		require.Equal(t, http.StatusBadRequest, w.Code)
	}

	w = c.do(http.MethodPost, "/reservation", reservationBody("bob", 1, "2024-02-05", "2024-02-01"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "start date must be before end date")

	w = c.do(http.MethodGet, "/reservation/by-room/5", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list model.ListReservationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Result, 1)
	require.Equal(t, "alice", list.Result[0].Name)

	w = c.do(http.MethodGet, "/reservation/by-name/bob", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Result, 1)
	require.Equal(t, 6, list.Result[0].RoomID)

	w = c.do(http.MethodGet, "/reservation/availability?room_id=5&start_date=2024-01-06&end_date=2024-01-09", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"available":true`)
}

func TestRouter_UpdateAndDelete(t *testing.T) {
	t.Parallel()
	c := newClient(t)
	alice := reservationBody("alice", 5, "2024-01-01", "2024-01-05")
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/reservation", alice).Code)

	same := `{"reservation":` + alice + `,"new_start_date":"2024-01-01","new_end_date":"2024-01-05"}`
	w := c.do(http.MethodPut, "/reservation/update", same)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "no new date")

	overlapsSelf := `{"reservation":` + alice + `,"new_start_date":"2024-01-02","new_end_date":"2024-01-06"}`
	w = c.do(http.MethodPut, "/reservation/update", overlapsSelf)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "room is not available")

	moved := `{"reservation":` + alice + `,"new_start_date":"2024-01-06","new_end_date":"2024-01-08"}`
	w = c.do(http.MethodPut, "/reservation/update", moved)
	require.Equal(t, http.StatusOK, w.Code)

	// the old key no longer matches anything, delete is still fine
	require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/reservation/delete", alice).Code)
	require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/reservation/delete", alice).Code)

	w = c.do(http.MethodGet, "/reservation/by-name/alice", "")
	require.Contains(t, w.Body.String(), `"start_date":"2024-01-06"`)

	require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/reservation/delete", reservationBody("alice", 5, "2024-01-06", "2024-01-08")).Code)
	w = c.do(http.MethodGet, "/reservation/by-name/alice", "")
	require.Equal(t, `{"result":[]}`, strings.TrimSpace(w.Body.String()))
}

func TestRouter_Manage(t *testing.T) {
	t.Parallel()
	c := newClient(t)

	w := c.do(http.MethodGet, "/manage/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/reservation", reservationBody("alice", 1, "2024-01-01", "2024-01-01")).Code)

	w = c.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `hotel_reservation_operations_total{operation="create",result="ok"} 1`)
	require.Contains(t, w.Body.String(), `hotel_http_requests_total{method="POST",route="/reservation",status="200"} 1`)

	w = c.do(http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "/reservation/by-room/{room_id}")
}
