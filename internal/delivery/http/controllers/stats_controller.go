package controllers

import (
	"log/slog"
	"net/http"

	"eventsystem/internal/delivery/http/helpers"
	"eventsystem/internal/domain"
)

// DashboardSuccessResponse is the success response envelope for GET /admin/dashboard (200).
type DashboardSuccessResponse struct {
	Data  *domain.DashboardTotals `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type StatsController struct {
	Logger  *slog.Logger
	Service domain.StatsService
}

func NewStatsController(logger *slog.Logger, svc domain.StatsService) *StatsController {
	return &StatsController{
		Logger:  logger,
		Service: svc,
	}
}

// Dashboard godoc
// @Summary Admin dashboard totals
// @Description Returns total counts of events, venues, categories, tags, and active (non-cancelled) registrations. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.DashboardSuccessResponse "data contains the totals"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (admin only)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/dashboard [get]
func (c *StatsController) Dashboard(w http.ResponseWriter, r *http.Request) {
	totals, err := c.Service.Totals(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, totals)
}
