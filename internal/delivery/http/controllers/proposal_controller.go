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

// ProposalRequest is the request body for POST /proposals and PUT /proposals/me.
type ProposalRequest struct {
	Title      string `json:"title"`
	Brief      string `json:"brief"`
	Desc       string `json:"desc"`
	Comment    string `json:"comment"`
	Difficulty string `json:"difficulty"`
	Duration   string `json:"duration"`
	Language   string `json:"language"`
}

// Validate implements Validator.
func (p ProposalRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(p.Brief) == "" {
		errs = append(errs, "brief is required")
	}
	if strings.TrimSpace(p.Desc) == "" {
		errs = append(errs, "desc is required")
	}
	switch p.Difficulty {
	case domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced:
	default:
		errs = append(errs, "difficulty must be one of: beginner, intermediate, advanced")
	}
	switch p.Duration {
	case domain.DurationShort, domain.DurationLong:
	default:
		errs = append(errs, "duration must be one of: 25min, 40min")
	}
	return errs
}

func (p ProposalRequest) toDomain(userID string) *domain.Proposal {
	return &domain.Proposal{
		UserID:     userID,
		Title:      p.Title,
		Brief:      p.Brief,
		Desc:       p.Desc,
		Comment:    p.Comment,
		Difficulty: p.Difficulty,
		Duration:   p.Duration,
		Language:   p.Language,
	}
}

type ProposalController struct {
	Logger  *slog.Logger
	Service domain.ProposalService
}

func NewProposalController(logger *slog.Logger, svc domain.ProposalService) *ProposalController {
	return &ProposalController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Submit a talk proposal
// @Description Creates the requester's proposal. Each user has at most one; a second submission redirects (302) to the existing proposal instead of failing.
// @Tags proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ProposalRequest true "Proposal fields"
// @Success 201 {object} helpers.APIResponse "data contains the created proposal"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /proposals [post]
func (c *ProposalController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req ProposalRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	proposal := req.toDomain(userID)
	if err := c.Service.Create(r.Context(), proposal); err != nil {
		// One proposal per user. A duplicate submission is not an error
		// state; the caller is sent to the proposal it already has.
		if errors.Is(err, domain.ErrDuplicateProposal) {
			http.Redirect(w, r, "/proposals/me", http.StatusFound)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, proposal)
}

// GetOwn godoc
// @Summary Get own proposal
// @Description Returns the requester's proposal. Without one, redirects (302) to the submission endpoint.
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the proposal"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /proposals/me [get]
func (c *ProposalController) GetOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	proposal, err := c.Service.GetOwn(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Redirect(w, r, "/proposals", http.StatusFound)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, proposal)
}

// UpdateOwn godoc
// @Summary Update own proposal
// @Description Rewrites the requester's proposal. The write is scoped to the requester's row.
// @Tags proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ProposalRequest true "Proposal fields"
// @Success 200 {object} helpers.APIResponse "data contains the updated proposal"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /proposals/me [put]
func (c *ProposalController) UpdateOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req ProposalRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	proposal := req.toDomain(userID)
	if err := c.Service.UpdateOwn(r.Context(), proposal); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "proposal not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, proposal)
}
