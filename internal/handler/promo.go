package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookit/bookit/internal/promo"
)

// ValidatePromo handles POST /api/promo/validate.  The checkout page
// submits a code and receives the discount descriptor when the code is
// known.  Lookups go against the static promo table; there is no
// persistence involved.
func ValidatePromo(c echo.Context) error {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if strings.TrimSpace(body.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Promo code is required."})
	}

	d, ok := promo.Validate(body.Code)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Invalid or expired promo code."})
	}
	return c.JSON(http.StatusOK, d)
}
