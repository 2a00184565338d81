package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"confsite/internal/delivery/http/helpers"
	"confsite/internal/delivery/http/middleware"
	"confsite/internal/domain"
)

// UpdateProgramRequest is the request body for PUT /programs/{programID}.
// Speakers may touch the presentation fields only; scheduling stays with
// the organizers.
type UpdateProgramRequest struct {
	Name         string `json:"name"`
	Desc         string `json:"desc"`
	SlideURL     string `json:"slide_url"`
	VideoURL     string `json:"video_url"`
	IsRecordable bool   `json:"is_recordable"`
}

// Validate implements Validator.
func (u UpdateProgramRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(u.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// ProgramDetail wraps a program with the viewer's edit permission.
type ProgramDetail struct {
	Program  *domain.Program `json:"program"`
	Editable bool            `json:"editable"`
}

type ProgramController struct {
	Logger  *slog.Logger
	Service domain.ProgramService
}

func NewProgramController(logger *slog.Logger, svc domain.ProgramService) *ProgramController {
	return &ProgramController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List programs grouped by category
// @Tags programs
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains category sections with their programs"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /programs [get]
func (c *ProgramController) List(w http.ResponseWriter, r *http.Request) {
	sections, err := c.Service.ListByCategory(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sections)
}

// Get godoc
// @Summary Get a program
// @Description Returns the program. For a logged-in viewer whose account email matches one of the program's speakers, editable is true.
// @Tags programs
// @Produce json
// @Param programID path string true "Program ID"
// @Success 200 {object} helpers.APIResponse "data contains program and editable"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /programs/{programID} [get]
func (c *ProgramController) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("programID")
	viewerEmail, _ := middleware.UserEmailFromContext(r.Context())

	program, editable, err := c.Service.Get(r.Context(), id, viewerEmail)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "program not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ProgramDetail{Program: program, Editable: editable})
}

// Update godoc
// @Summary Update a program page
// @Description Updates the program when the requester's account email matches one of its speakers. Any other program answers not_found.
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param programID path string true "Program ID"
// @Param body body UpdateProgramRequest true "Program fields"
// @Success 200 {object} helpers.APIResponse "data contains the updated program"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /programs/{programID} [put]
func (c *ProgramController) Update(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.UserEmailFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateProgramRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	program := &domain.Program{
		ID:           r.PathValue("programID"),
		Name:         req.Name,
		Desc:         req.Desc,
		SlideURL:     req.SlideURL,
		VideoURL:     req.VideoURL,
		IsRecordable: req.IsRecordable,
	}
	if err := c.Service.UpdateAsSpeaker(r.Context(), program, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "program not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, program)
}
