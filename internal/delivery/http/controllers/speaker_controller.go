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

// UpdateSpeakerRequest is the request body for PUT /speakers/{speakerID}.
type UpdateSpeakerRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Desc  string `json:"desc"`
	Info  string `json:"info"`
}

// Validate implements Validator.
func (u UpdateSpeakerRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(u.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// SpeakerDetail wraps a speaker with the viewer's edit permission.
type SpeakerDetail struct {
	Speaker  *domain.Speaker `json:"speaker"`
	Editable bool            `json:"editable"`
}

type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
}

func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService) *SpeakerController {
	return &SpeakerController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List speakers
// @Tags speakers
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the speaker list"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [get]
func (c *SpeakerController) List(w http.ResponseWriter, r *http.Request) {
	speakers, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speakers)
}

// Get godoc
// @Summary Get a speaker
// @Description Returns the speaker. For a logged-in viewer whose account email matches the speaker's email, editable is true.
// @Tags speakers
// @Produce json
// @Param speakerID path string true "Speaker ID"
// @Success 200 {object} helpers.APIResponse "data contains speaker and editable"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /speakers/{speakerID} [get]
func (c *SpeakerController) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("speakerID")
	viewerEmail, _ := middleware.UserEmailFromContext(r.Context())

	speaker, editable, err := c.Service.Get(r.Context(), id, viewerEmail)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "speaker not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SpeakerDetail{Speaker: speaker, Editable: editable})
}

// Update godoc
// @Summary Update a speaker page
// @Description Updates the speaker whose stored email matches the requester's account email. Any other speaker answers not_found.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param speakerID path string true "Speaker ID"
// @Param body body UpdateSpeakerRequest true "Speaker fields"
// @Success 200 {object} helpers.APIResponse "data contains the updated speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /speakers/{speakerID} [put]
func (c *SpeakerController) Update(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.UserEmailFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	speaker := &domain.Speaker{
		ID:    r.PathValue("speakerID"),
		Name:  req.Name,
		Image: req.Image,
		Desc:  req.Desc,
		Info:  req.Info,
	}
	if err := c.Service.UpdateOwn(r.Context(), speaker, email); err != nil {
		// Not distinguishing "no such speaker" from "not your speaker page"
		// keeps the ownership check unguessable.
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "speaker not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}
