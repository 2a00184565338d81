package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"confsite/internal/adapters/images"
	"confsite/internal/delivery/http/helpers"
	"confsite/internal/delivery/http/middleware"
	"confsite/internal/domain"
)

// UpdateProfileRequest is the request body for PUT /profile.
type UpdateProfileRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
	Bio          string `json:"bio"`
}

// Validate implements Validator.
func (u UpdateProfileRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(u.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

type ProfileController struct {
	Logger    *slog.Logger
	Service   domain.ProfileService
	Validator *images.Validator
}

func NewProfileController(logger *slog.Logger, svc domain.ProfileService, validator *images.Validator) *ProfileController {
	return &ProfileController{
		Logger:    logger,
		Service:   svc,
		Validator: validator,
	}
}

// Get godoc
// @Summary Get own profile
// @Description Returns the requester's profile with registration and proposal flags. While the profile has no name yet, redirects (302) to the edit endpoint.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains profile, is_registered, has_proposal"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /profile [get]
func (c *ProfileController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	view, err := c.Service.GetOwn(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	// A freshly provisioned profile has no name; send the user to the
	// edit page first.
	if view.Profile.Name == "" {
		http.Redirect(w, r, "/profile/edit", http.StatusFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// GetForEdit answers the raw profile for the edit form, without the
// empty-name redirect.
func (c *ProfileController) GetForEdit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	view, err := c.Service.GetOwn(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view.Profile)
}

// Update godoc
// @Summary Update own profile
// @Description Updates the requester's profile. The write is scoped to the requester; no other profile can be touched.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} helpers.APIResponse "data contains the updated profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /profile [put]
func (c *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	profile := &domain.Profile{
		UserID:       userID,
		Name:         req.Name,
		Phone:        req.Phone,
		Organization: req.Organization,
		Bio:          req.Bio,
	}
	if err := c.Service.UpdateOwn(r.Context(), profile); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}

// UploadPhoto godoc
// @Summary Upload a profile photo
// @Description Accepts a multipart photo upload, validates the configured size and dimension limits, and stores it on the profile.
// @Tags profile
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Photo"
// @Success 200 {object} helpers.APIResponse "data contains the stored file name"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, message names the violated limit"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /profile/photo [post]
func (c *ProfileController) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	name, err := c.Validator.SavePhoto(file, header)
	if err != nil {
		var vErr *images.ValidationError
		if errors.As(err, &vErr) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, vErr.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if err := c.Service.SetOwnImage(r.Context(), userID, name); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"image": name})
}
