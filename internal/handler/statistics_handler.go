package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"resifee-be-svc/internal/service"
	"resifee-be-svc/pkg/logger"
	"resifee-be-svc/pkg/utils"
)

// StatisticsHandler handles statistics HTTP requests
type StatisticsHandler struct {
	statsService service.StatisticsService
	logger       *logger.Logger
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(statsService service.StatisticsService, logger *logger.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		statsService: statsService,
		logger:       logger,
	}
}

// parseDateRange reads startDate/endDate query params (YYYY-MM-DD). Missing
// or malformed bounds stay zero; the service applies the rolling 12-month
// default.
func parseDateRange(c *gin.Context) (time.Time, time.Time) {
	var start, end time.Time

	if raw := c.Query("startDate"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			start = parsed
		}
	}
	if raw := c.Query("endDate"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			// include the whole end day
			end = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
	}

	return start, end
}

// GetOverall handles GET /api/v1/statistics/overall
// @Summary Overall billing statistics
// @Description Totals and status buckets across the date range (default rolling 12 months)
// @Tags statistics
// @Produce json
// @Param startDate query string false "Range start YYYY-MM-DD"
// @Param endDate query string false "Range end YYYY-MM-DD"
// @Success 200 {object} utils.APIResponse{data=response.OverallStatistics} "Statistics retrieved"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/statistics/overall [get]
func (h *StatisticsHandler) GetOverall(c *gin.Context) {
	start, end := parseDateRange(c)

	stats, err := h.statsService.GetOverall(start, end)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tính thống kê", err)
		return
	}

	utils.SuccessResponse(c, "Lấy thống kê thành công", stats)
}

// GetByFeeType handles GET /api/v1/statistics/by-fee-type
// @Summary Statistics grouped by fee type
// @Tags statistics
// @Produce json
// @Param startDate query string false "Range start YYYY-MM-DD"
// @Param endDate query string false "Range end YYYY-MM-DD"
// @Success 200 {object} utils.APIResponse{data=[]response.StatisticsGroup} "Statistics retrieved"
// @Router /api/v1/statistics/by-fee-type [get]
func (h *StatisticsHandler) GetByFeeType(c *gin.Context) {
	start, end := parseDateRange(c)

	groups, err := h.statsService.GetByFeeType(start, end)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tính thống kê", err)
		return
	}

	utils.SuccessResponse(c, "Lấy thống kê thành công", groups)
}

// GetByHousehold handles GET /api/v1/statistics/by-household
// @Summary Statistics grouped by household
// @Tags statistics
// @Produce json
// @Param startDate query string false "Range start YYYY-MM-DD"
// @Param endDate query string false "Range end YYYY-MM-DD"
// @Success 200 {object} utils.APIResponse{data=[]response.StatisticsGroup} "Statistics retrieved"
// @Router /api/v1/statistics/by-household [get]
func (h *StatisticsHandler) GetByHousehold(c *gin.Context) {
	start, end := parseDateRange(c)

	groups, err := h.statsService.GetByHousehold(start, end)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tính thống kê", err)
		return
	}

	utils.SuccessResponse(c, "Lấy thống kê thành công", groups)
}

// GetByCollector handles GET /api/v1/statistics/by-collector
// @Summary Statistics grouped by collector
// @Tags statistics
// @Produce json
// @Param startDate query string false "Range start YYYY-MM-DD"
// @Param endDate query string false "Range end YYYY-MM-DD"
// @Success 200 {object} utils.APIResponse{data=[]response.StatisticsGroup} "Statistics retrieved"
// @Router /api/v1/statistics/by-collector [get]
func (h *StatisticsHandler) GetByCollector(c *gin.Context) {
	start, end := parseDateRange(c)

	groups, err := h.statsService.GetByCollector(start, end)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tính thống kê", err)
		return
	}

	utils.SuccessResponse(c, "Lấy thống kê thành công", groups)
}

// GetByPaymentStatus handles GET /api/v1/statistics/by-payment-status
// @Summary Statistics grouped by derived payment status
// @Tags statistics
// @Produce json
// @Param startDate query string false "Range start YYYY-MM-DD"
// @Param endDate query string false "Range end YYYY-MM-DD"
// @Success 200 {object} utils.APIResponse{data=[]response.StatisticsGroup} "Statistics retrieved"
// @Router /api/v1/statistics/by-payment-status [get]
func (h *StatisticsHandler) GetByPaymentStatus(c *gin.Context) {
	start, end := parseDateRange(c)

	groups, err := h.statsService.GetByPaymentStatus(start, end)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tính thống kê", err)
		return
	}

	utils.SuccessResponse(c, "Lấy thống kê thành công", groups)
}

// GetByPeriod handles GET /api/v1/statistics/by-period
// @Summary Statistics grouped by time bucket
// @Tags statistics
// @Produce json
// @Param startDate query string false "Range start YYYY-MM-DD"
// @Param endDate query string false "Range end YYYY-MM-DD"
// @Param groupBy query string false "Bucket size: day, month or year" default(month)
// @Success 200 {object} utils.APIResponse{data=[]response.StatisticsGroup} "Statistics retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid groupBy"
// @Router /api/v1/statistics/by-period [get]
func (h *StatisticsHandler) GetByPeriod(c *gin.Context) {
	start, end := parseDateRange(c)

	groups, err := h.statsService.GetByPeriod(start, end, c.Query("groupBy"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidGroupBy) {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể tính thống kê", err)
		return
	}

	utils.SuccessResponse(c, "Lấy thống kê thành công", groups)
}
