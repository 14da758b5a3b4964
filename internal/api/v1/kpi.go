package v1

import (
	"net/http"

	"github.com/biznesassistant/biznesassistant/internal/api/dto"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/service"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/gin-gonic/gin"
)

type KPIHandler struct {
	kpiService       service.KPIService
	trendService     service.TrendService
	populatorService service.KPIPopulatorService
	log              *logger.Logger
}

func NewKPIHandler(
	kpiService service.KPIService,
	trendService service.TrendService,
	populatorService service.KPIPopulatorService,
	log *logger.Logger,
) *KPIHandler {
	return &KPIHandler{
		kpiService:       kpiService,
		trendService:     trendService,
		populatorService: populatorService,
		log:              log,
	}
}

// @Summary Get KPIs
// @Description Computes and stores all seven KPIs of the company for the window of the period
// @Tags KPIs
// @Produce json
// @Security BearerAuth
// @Param period query string false "Period" Enums(daily, weekly, monthly, quarterly, yearly)
// @Success 200 {array} dto.KPIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /kpis [get]
func (h *KPIHandler) GetKPIs(c *gin.Context) {
	var req dto.GetKPIsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	resp, err := h.kpiService.CalculateKPIs(ctx, types.GetCompanyID(ctx), req.Period)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get KPI trend
// @Description Returns one point per bucket, oldest first
// @Tags KPIs
// @Produce json
// @Security BearerAuth
// @Param category path string true "KPI category"
// @Param period_type query string false "Period type" Enums(monthly)
// @Param months query int false "Number of buckets" default(12)
// @Success 200 {object} dto.TrendResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /kpi/trend/{category} [get]
func (h *KPIHandler) GetTrend(c *gin.Context) {
	var req dto.TrendRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	req.Category = types.KPICategory(c.Param("category"))
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	resp, err := h.trendService.GenerateTrend(ctx, types.GetCompanyID(ctx), req.Category, req.PeriodType, req.Months)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Forecast a KPI
// @Description Fits a line through the last twelve buckets and projects it forward
// @Tags KPIs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ForecastRequest true "Forecast request"
// @Success 200 {object} dto.ForecastResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /kpi/forecast [post]
func (h *KPIHandler) Forecast(c *gin.Context) {
	var req dto.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := h.trendService.Forecast(ctx, types.GetCompanyID(ctx), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Populate KPIs
// @Description Replaces the stored KPIs of the current calendar period in one transaction
// @Tags KPIs
// @Produce json
// @Security BearerAuth
// @Param period query string false "Period" Enums(daily, weekly, monthly, quarterly, yearly)
// @Success 200 {object} dto.PopulateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /kpi/populate [post]
func (h *KPIHandler) Populate(c *gin.Context) {
	var req dto.PopulateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	resp, err := h.populatorService.PopulateAll(ctx, types.GetTenantID(ctx), types.GetCompanyID(ctx), req.Period)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Populate KPIs for every period
// @Description Runs a population for each period, one transaction per period
// @Tags KPIs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PopulateAllResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /kpi/populate/all [post]
func (h *KPIHandler) PopulateAllPeriods(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.populatorService.PopulateAllPeriods(ctx, types.GetTenantID(ctx), types.GetCompanyID(ctx))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get population status
// @Description Stored KPI row counts and last population time per category and period
// @Tags KPIs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PopulationStatusResponse
// @Failure 500 {object} ErrorResponse
// @Router /kpi/populate/status [get]
func (h *KPIHandler) GetPopulationStatus(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.populatorService.GetPopulationStatus(ctx, types.GetCompanyID(ctx))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
