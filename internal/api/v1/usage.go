package v1

import (
	"net/http"

	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/service"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/gin-gonic/gin"
)

type UsageHandler struct {
	service service.UsageService
	log     *logger.Logger
}

func NewUsageHandler(service service.UsageService, log *logger.Logger) *UsageHandler {
	return &UsageHandler{service: service, log: log}
}

// @Summary Get current usage
// @Description Usage of the current calendar month against the tier limits
// @Tags Usage
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CurrentUsageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /usage/current-usage [get]
func (h *UsageHandler) GetCurrentUsage(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.GetCurrentUsage(ctx, types.GetCompanyID(ctx))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get usage statistics
// @Description Usage, limits, usage percentages and subscription details
// @Tags Usage
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UsageStatsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /usage/stats [get]
func (h *UsageHandler) GetUsageStats(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.GetUsageStats(ctx, types.GetCompanyID(ctx))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
