// Package handler exposes the HTTP handlers of the BookIt API.  This
// file defines the public catalog endpoints: the experience list shown
// on the home page and the experience detail with its available slots.
// The catalog is read-only; nothing here writes to the store.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookit/bookit/internal/model"
	"github.com/bookit/bookit/internal/repository"
)

// CatalogStore is the read side of the catalog consumed by the
// handlers.  It is implemented by repository.ExperienceRepo (MySQL)
// and repository.MemoryStore (tests).
type CatalogStore interface {
	ListExperiences(ctx context.Context) ([]model.Experience, error)
	GetExperience(ctx context.Context, id string) (*model.Experience, error)
	ListAvailableSlots(ctx context.Context, experienceID string, now time.Time) ([]model.Slot, error)
}

// CatalogHandler serves the experience list and detail pages.
type CatalogHandler struct {
	Catalog CatalogStore
}

// NewCatalogHandler constructs a CatalogHandler.  The store must be non-nil.
func NewCatalogHandler(catalog CatalogStore) *CatalogHandler {
	if catalog == nil {
		panic("nil catalog store passed to NewCatalogHandler")
	}
	return &CatalogHandler{Catalog: catalog}
}

// experienceDetail is the response shape of the detail endpoint: the
// experience plus its bookable slots.
type experienceDetail struct {
	model.Experience
	Slots []model.Slot `json:"slots"`
}

// ListExperiences handles GET /api/experiences.  It returns every
// experience in the catalog as a JSON array for the home page.
func (h *CatalogHandler) ListExperiences(c echo.Context) error {
	experiences, err := h.Catalog.ListExperiences(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list experiences: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not retrieve experiences."})
	}
	return c.JSON(http.StatusOK, experiences)
}

// GetExperience handles GET /api/experiences/:id.  It returns the
// experience and the slots that are still bookable: spare capacity
// remaining and a start time in the future, ordered by start time.
// Sold-out and past slots are filtered by the store.
func (h *CatalogHandler) GetExperience(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	exp, err := h.Catalog.GetExperience(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrExperienceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Experience not found."})
		}
		c.Logger().Errorf("get experience %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not retrieve experience details."})
	}

	slots, err := h.Catalog.ListAvailableSlots(ctx, id, time.Now().UTC())
	if err != nil {
		c.Logger().Errorf("list slots for %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not retrieve experience details."})
	}

	return c.JSON(http.StatusOK, experienceDetail{Experience: *exp, Slots: slots})
}
