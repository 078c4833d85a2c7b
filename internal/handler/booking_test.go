package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookit/bookit/internal/model"
	"github.com/bookit/bookit/internal/queue"
	"github.com/bookit/bookit/internal/repository"
	"github.com/bookit/bookit/internal/service"
)

// testEnv bundles an echo instance, a seeded memory store and the
// booking handler under test.
type testEnv struct {
	e       *echo.Echo
	store   *repository.MemoryStore
	booking *BookingHandler
	events  []queue.BookingConfirmedEvent
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{e: echo.New(), store: repository.NewMemoryStore()}
	now := time.Now().UTC()

	env.store.AddExperience(model.Experience{
		ID: "exp_city_tour", Title: "Historic City Walking Tour",
		Description: "Explore the hidden alleys.", Price: 59.99,
	})
	env.store.AddSlot(model.Slot{
		ID: "slot_open", ExperienceID: "exp_city_tour",
		StartTime: now.Add(24 * time.Hour), EndTime: now.Add(26 * time.Hour),
		Capacity: 10, BookedCount: 0,
	})
	env.store.AddSlot(model.Slot{
		ID: "slot_full", ExperienceID: "exp_city_tour",
		StartTime: now.Add(48 * time.Hour), EndTime: now.Add(50 * time.Hour),
		Capacity: 5, BookedCount: 5,
	})

	publish := func(ctx context.Context, ev queue.BookingConfirmedEvent) error {
		env.events = append(env.events, ev)
		return nil
	}
	env.booking = NewBookingHandler(service.NewReservationService(env.store), env.store, publish)
	return env
}

func (env *testEnv) postBooking(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	require.NoError(t, env.booking.CreateBooking(c))
	return rec
}

func TestCreateBookingSuccess(t *testing.T) {
	env := newTestEnv(t)
	rec := env.postBooking(t, `{
        "slotId": "slot_open",
        "customerName": "Ada Lovelace",
        "customerEmail": "ada@example.com",
        "finalPrice": 53.99,
        "promoCodeUsed": "SAVE10"
    }`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success   bool          `json:"success"`
		Message   string        `json:"message"`
		BookingID string        `json:"bookingId"`
		Details   model.Booking `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.BookingID)
	assert.Equal(t, resp.BookingID, resp.Details.ID)
	assert.Equal(t, "slot_open", resp.Details.SlotID)
	require.NotNil(t, resp.Details.PromoCodeUsed)
	assert.Equal(t, "SAVE10", *resp.Details.PromoCodeUsed)

	// one unit of capacity consumed, one booking row created
	sl, err := env.store.GetSlot(context.Background(), "slot_open")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), sl.BookedCount)
	assert.Equal(t, 1, env.store.CountBookingsBySlot(context.Background(), "slot_open"))

	// confirmation event published after commit
	require.Len(t, env.events, 1)
	assert.Equal(t, resp.BookingID, env.events[0].BookingID)
	assert.Equal(t, "SAVE10", env.events[0].PromoCodeUsed)
}

func TestCreateBookingValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing slot", `{"customerName":"Ada","customerEmail":"ada@example.com","finalPrice":10}`},
		{"missing name", `{"slotId":"slot_open","customerEmail":"ada@example.com","finalPrice":10}`},
		{"bad email", `{"slotId":"slot_open","customerName":"Ada","customerEmail":"ada.example.com","finalPrice":10}`},
		{"zero price", `{"slotId":"slot_open","customerName":"Ada","customerEmail":"ada@example.com","finalPrice":0}`},
		{"negative price", `{"slotId":"slot_open","customerName":"Ada","customerEmail":"ada@example.com","finalPrice":-5}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			rec := env.postBooking(t, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			// no side effects: nothing booked, nothing published
			sl, err := env.store.GetSlot(context.Background(), "slot_open")
			require.NoError(t, err)
			assert.Equal(t, uint32(0), sl.BookedCount)
			assert.Empty(t, env.events)
		})
	}
}

func TestCreateBookingSlotNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.postBooking(t, `{"slotId":"slot_ghost","customerName":"Ada","customerEmail":"ada@example.com","finalPrice":10}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, env.events)
}

func TestCreateBookingSlotFull(t *testing.T) {
	env := newTestEnv(t)

	// repeated attempts against a full slot always conflict and never
	// mutate state
	for i := 0; i < 3; i++ {
		rec := env.postBooking(t, `{"slotId":"slot_full","customerName":"Ada","customerEmail":"ada@example.com","finalPrice":10}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	}
	sl, err := env.store.GetSlot(context.Background(), "slot_full")
	require.NoError(t, err)
	assert.Equal(t, uint32(5), sl.BookedCount)
	assert.Equal(t, 0, env.store.CountBookingsBySlot(context.Background(), "slot_full"))
	assert.Empty(t, env.events)
}

func TestCreateBookingLastSeatScenario(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddSlot(model.Slot{
		ID: "slot_last", ExperienceID: "exp_city_tour",
		StartTime: time.Now().UTC().Add(24 * time.Hour),
		EndTime:   time.Now().UTC().Add(26 * time.Hour),
		Capacity:  1, BookedCount: 0,
	})
	body := `{"slotId":"slot_last","customerName":"Ada","customerEmail":"ada@example.com","finalPrice":10}`

	first := env.postBooking(t, body)
	assert.Equal(t, http.StatusCreated, first.Code)

	second := env.postBooking(t, body)
	assert.Equal(t, http.StatusConflict, second.Code)

	sl, err := env.store.GetSlot(context.Background(), "slot_last")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), sl.BookedCount)
}

func TestCreateBookingPublishFailureDoesNotFailRequest(t *testing.T) {
	env := newTestEnv(t)
	env.booking.Publish = func(ctx context.Context, ev queue.BookingConfirmedEvent) error {
		return context.DeadlineExceeded
	}
	rec := env.postBooking(t, `{"slotId":"slot_open","customerName":"Ada","customerEmail":"ada@example.com","finalPrice":10}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestGetBooking(t *testing.T) {
	env := newTestEnv(t)
	rec := env.postBooking(t, `{"slotId":"slot_open","customerName":"Ada","customerEmail":"ada@example.com","finalPrice":10}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		BookingID string `json:"bookingId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	get := httptest.NewRecorder()
	c := env.e.NewContext(req, get)
	c.SetPath("/api/bookings/:id")
	c.SetParamNames("id")
	c.SetParamValues(created.BookingID)
	require.NoError(t, env.booking.GetBooking(c))
	assert.Equal(t, http.StatusOK, get.Code)

	var b model.Booking
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &b))
	assert.Equal(t, created.BookingID, b.ID)
}

func TestGetBookingNotFound(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.SetPath("/api/bookings/:id")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	require.NoError(t, env.booking.GetBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
