package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"farm-advisor/internal/models"
	"farm-advisor/internal/services/advisor"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameter: place"`
}

// GetAdvisory godoc
// @Summary Get farming advisory for a place
// @Description Geocodes the place, fetches the 5-day forecast, and derives crop, irrigation, pest, and yield advice. Optional scenario sliders perturb temperature and rainfall before re-scoring yield.
// @Tags Advisory
// @Accept json
// @Produce json
// @Param place query string true "Village/town/city name" example(Kumbakonam)
// @Param dt query number false "Scenario temperature offset in degrees C (-3 to 4)" minimum(-3) maximum(4) example(2)
// @Param drain query number false "Scenario rainfall offset in percent (-40 to 40)" minimum(-40) maximum(40) example(-20)
// @Success 200 {object} models.Advisory "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - missing place"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Place not found"
// @Failure 502 {object} ErrorResponse "Forecast service unavailable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/advisory [get]
func (r *routes) handleAdvisory(c *fiber.Ctx) error {
	place := c.Query("place")
	if place == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: place",
		})
	}

	var scenario *advisor.ScenarioRequest
	dt := c.Query("dt")
	drain := c.Query("drain")
	if dt != "" || drain != "" {
		scenario = &advisor.ScenarioRequest{}
		if dt != "" {
			v, err := strconv.ParseFloat(dt, 64)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
					Error: "Invalid dt format",
				})
			}
			scenario.DeltaTemp = v
		}
		if drain != "" {
			v, err := strconv.ParseFloat(drain, 64)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
					Error: "Invalid drain format",
				})
			}
			scenario.DeltaRainPct = v
		}
	}

	advisory, err := r.advisor.Advise(c.Context(), place, scenario)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPlaceNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error: "Place not found. Try another name or include district/state.",
			})
		case errors.Is(err, models.ErrForecastUnavailable):
			return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
				Error: "Could not fetch forecast. Check your API key/quota or try again later.",
			})
		default:
			r.l.Error(err, map[string]any{"place": place})
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Error: "Failed to compute advisory",
			})
		}
	}

	return c.JSON(advisory)
}

// GetActivity godoc
// @Summary List recent account activity
// @Description Returns the append-only activity log, newest first. Administrator only.
// @Tags Accounts
// @Produce json
// @Param limit query integer false "Maximum entries to return (default 100)" example(50)
// @Success 200 {array} models.ActivityEntry
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Administrator role required"
// @Security BearerAuth
// @Router /api/v1/activity [get]
func (r *routes) handleActivity(c *fiber.Ctx) error {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		} else {
			r.l.Warning("invalid limit parameter, using default", map[string]any{
				"provided": v,
				"default":  limit,
			})
		}
	}

	entries, err := r.auth.Activity(limit)
	if err != nil {
		r.l.Error(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to read activity log",
		})
	}

	return c.JSON(entries)
}
