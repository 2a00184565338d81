package controllers

import (
	"log/slog"
	"net/http"

	"confsite/internal/delivery/http/helpers"
	"confsite/internal/domain"
)

type ScheduleController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

func NewScheduleController(logger *slog.Logger, svc domain.ScheduleService) *ScheduleController {
	return &ScheduleController{
		Logger:  logger,
		Service: svc,
	}
}

// GetScheduleSuccessResponse is the success response envelope for GET /schedule (200).
type GetScheduleSuccessResponse struct {
	Data  *domain.ScheduleGrid `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// GetSchedule godoc
// @Summary Get the schedule grid
// @Description Returns the wide view (every date/time/room cell, null marking empty cells) and the narrow view (only time rows with at least one occupied room), plus the ordered axes.
// @Tags schedule
// @Produce json
// @Success 200 {object} controllers.GetScheduleSuccessResponse "data contains the grid"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedule [get]
func (c *ScheduleController) GetSchedule(w http.ResponseWriter, r *http.Request) {
	grid, err := c.Service.GetSchedule(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, grid)
}
