package handler

import (
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
	"github.com/bookit/bookit/internal/repository"
)

func newCatalogEnv(t *testing.T) (*echo.Echo, *repository.MemoryStore, *CatalogHandler) {
	t.Helper()
	e := echo.New()
	store := repository.NewMemoryStore()
	now := time.Now().UTC()

	store.AddExperience(model.Experience{
		ID: "exp_city_tour", Title: "Historic City Walking Tour",
		Description: "Explore the hidden alleys.", Price: 59.99,
		ImageURL: "https://example.com/tour.jpg",
	})
	store.AddExperience(model.Experience{
		ID: "exp_cooking_class", Title: "Italian Pasta Making Class",
		Description: "Three pasta shapes from scratch.", Price: 99.00,
		ImageURL: "https://example.com/pasta.jpg",
	})
	store.AddSlot(model.Slot{
		ID: "slot_soon", ExperienceID: "exp_city_tour",
		StartTime: now.Add(24 * time.Hour), EndTime: now.Add(26 * time.Hour),
		Capacity: 10, BookedCount: 3,
	})
	store.AddSlot(model.Slot{
		ID: "slot_later", ExperienceID: "exp_city_tour",
		StartTime: now.Add(48 * time.Hour), EndTime: now.Add(50 * time.Hour),
		Capacity: 5, BookedCount: 0,
	})
	store.AddSlot(model.Slot{
		ID: "slot_sold_out", ExperienceID: "exp_city_tour",
		StartTime: now.Add(72 * time.Hour), EndTime: now.Add(74 * time.Hour),
		Capacity: 8, BookedCount: 8,
	})
	store.AddSlot(model.Slot{
		ID: "slot_past", ExperienceID: "exp_city_tour",
		StartTime: now.Add(-24 * time.Hour), EndTime: now.Add(-22 * time.Hour),
		Capacity: 10, BookedCount: 0,
	})

	return e, store, NewCatalogHandler(store)
}

func TestListExperiences(t *testing.T) {
	e, _, h := newCatalogEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/experiences", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListExperiences(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var out []model.Experience
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out, 2)
	// the home page payload is a plain array of experiences
	assert.True(t, strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "["))
}

func TestGetExperienceDetail(t *testing.T) {
	e, _, h := newCatalogEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/experiences/:id")
	c.SetParamNames("id")
	c.SetParamValues("exp_city_tour")
	require.NoError(t, h.GetExperience(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		ID    string       `json:"id"`
		Title string       `json:"title"`
		Slots []model.Slot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "exp_city_tour", out.ID)

	// sold-out and past slots are filtered; remaining slots are ordered
	// by start time ascending
	require.Len(t, out.Slots, 2)
	assert.Equal(t, "slot_soon", out.Slots[0].ID)
	assert.Equal(t, "slot_later", out.Slots[1].ID)
}

func TestGetExperienceNotFound(t *testing.T) {
	e, _, h := newCatalogEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/experiences/:id")
	c.SetParamNames("id")
	c.SetParamValues("exp_ghost")
	require.NoError(t, h.GetExperience(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
