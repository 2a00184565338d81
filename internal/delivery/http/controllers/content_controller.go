package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"confsite/internal/delivery/http/helpers"
	"confsite/internal/domain"
)

type ContentController struct {
	Logger  *slog.Logger
	Service domain.ContentService
}

func NewContentController(logger *slog.Logger, svc domain.ContentService) *ContentController {
	return &ContentController{
		Logger:  logger,
		Service: svc,
	}
}

// Index godoc
// @Summary Landing page content
// @Description Returns the latest three announcements and the currently active banners.
// @Tags content
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains recent_announcements and banners"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router / [get]
func (c *ContentController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := c.Service.Index(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// ListAnnouncements answers all currently visible announcements, newest first.
func (c *ContentController) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := c.Service.ListAnnouncements(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, announcements)
}

// GetAnnouncement answers one announcement by ID.
func (c *ContentController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("announcementID")
	a, err := c.Service.GetAnnouncement(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "announcement not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, a)
}

// ListSponsors answers sponsors ordered by level, then name.
func (c *ContentController) ListSponsors(w http.ResponseWriter, r *http.Request) {
	sponsors, err := c.Service.ListSponsors(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sponsors)
}

// GetSponsor answers one sponsor by slug.
func (c *ContentController) GetSponsor(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	sp, err := c.Service.GetSponsor(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "sponsor not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sp)
}

// GetRoom answers one room by ID.
func (c *ContentController) GetRoom(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("roomID")
	room, err := c.Service.GetRoom(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "room not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, room)
}

// Robots serves robots.txt as plain text.
func (c *ContentController) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("User-agent: *\nDisallow: /auth/\n"))
}
