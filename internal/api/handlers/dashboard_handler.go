package handlers

import (
	"errors"

	"quantumfinance/internal/charts"
	"quantumfinance/internal/dto"
	"quantumfinance/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	recService *service.RecommendationService
	advisor    *service.AdvisorService
	charts     *charts.ChartGenerator
	logger     *zap.Logger
}

func NewDashboardHandler(
	recService *service.RecommendationService,
	advisor *service.AdvisorService,
	chartGenerator *charts.ChartGenerator,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		recService: recService,
		advisor:    advisor,
		charts:     chartGenerator,
		logger:     logger,
	}
}

// ListUsers godoc
// @Summary List customers
// @Description Customers available in the loaded dataset, for the selection box
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.UserSummary
// @Router /api/v1/users [get]
func (h *DashboardHandler) ListUsers(c *fiber.Ctx) error {
	return c.JSON(h.recService.ListUsers())
}

// Profile godoc
// @Summary Customer profile
// @Description Income, score, debt, spend, surplus and travel share of one customer
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Security Bearer
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/users/{id}/profile [get]
func (h *DashboardHandler) Profile(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return badUserID(c)
	}

	profile, err := h.recService.Profile(userID)
	if err != nil {
		return h.fail(c, err, "Failed to build profile")
	}
	return c.JSON(profile)
}

// Recommendations godoc
// @Summary Product recommendations
// @Description Ordered, de-duplicated products with justifications for one customer
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Security Bearer
// @Success 200 {object} dto.RecommendationsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/users/{id}/recommendations [get]
func (h *DashboardHandler) Recommendations(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return badUserID(c)
	}

	recs, err := h.recService.Recommend(userID)
	if err != nil {
		return h.fail(c, err, "Failed to evaluate recommendations")
	}
	return c.JSON(recs)
}

// Chart godoc
// @Summary Spend chart
// @Description PNG pie chart of the customer's monthly spend by category
// @Tags users
// @Produce png
// @Param id path int true "User ID"
// @Security Bearer
// @Success 200 {file} binary
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/users/{id}/chart [get]
func (h *DashboardHandler) Chart(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return badUserID(c)
	}

	spend, err := h.recService.SpendByCategory(userID)
	if err != nil {
		return h.fail(c, err, "Failed to load spend")
	}

	png, err := h.charts.GenerateSpendChart(spend)
	if err != nil {
		return h.fail(c, err, "Failed to render chart")
	}
	if png == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// Advice godoc
// @Summary Advisor narrative
// @Description Short LLM-written explanation of the customer's recommendations
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Security Bearer
// @Success 200 {object} dto.AdviceResponse
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/users/{id}/advice [get]
func (h *DashboardHandler) Advice(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return badUserID(c)
	}
	if !h.advisor.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Advisor is not configured",
		})
	}

	profile, err := h.recService.Profile(userID)
	if err != nil {
		return h.fail(c, err, "Failed to build profile")
	}
	recs, err := h.recService.Recommend(userID)
	if err != nil {
		return h.fail(c, err, "Failed to evaluate recommendations")
	}

	advice, err := h.advisor.Advise(c.UserContext(), profile, recs)
	if err != nil {
		h.logger.Error("Advisor failed", zap.Int("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Advisor is unavailable",
		})
	}

	return c.JSON(dto.AdviceResponse{
		UserID: userID,
		Advice: advice,
	})
}

// Interactions godoc
// @Summary Customer interactions
// @Description Recorded product interactions of one customer (not used by the rules)
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Security Bearer
// @Success 200 {array} models.Interaction
// @Failure 404 {object} map[string]string
// @Router /api/v1/users/{id}/interactions [get]
func (h *DashboardHandler) Interactions(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return badUserID(c)
	}

	interactions, err := h.recService.Interactions(userID)
	if err != nil {
		return h.fail(c, err, "Failed to load interactions")
	}
	return c.JSON(interactions)
}

// Products godoc
// @Summary Product catalogue
// @Tags products
// @Produce json
// @Security Bearer
// @Success 200 {array} models.Product
// @Router /api/v1/products [get]
func (h *DashboardHandler) Products(c *fiber.Ctx) error {
	return c.JSON(h.recService.Products())
}

// Status godoc
// @Summary Dataset status
// @Tags dataset
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.DatasetStatus
// @Router /api/v1/dataset [get]
func (h *DashboardHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.recService.Status())
}

// Reload godoc
// @Summary Reload dataset
// @Description Reload the snapshot from the configured source and recompute features
// @Tags dataset
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.DatasetStatus
// @Failure 500 {object} map[string]string
// @Router /api/v1/dataset/reload [post]
func (h *DashboardHandler) Reload(c *fiber.Ctx) error {
	status, err := h.recService.Load(c.UserContext())
	if err != nil {
		h.logger.Error("Dataset reload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reload dataset",
		})
	}
	return c.JSON(status)
}

func (h *DashboardHandler) fail(c *fiber.Ctx, err error, msg string) error {
	if errors.Is(err, service.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	h.logger.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": msg,
	})
}

func badUserID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid user ID",
	})
}
