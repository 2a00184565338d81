package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"confsite/internal/delivery/http/helpers"
	"confsite/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(strings.ToLower(l.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// LoginResponse is the response body for POST /auth/login and the mailsent notice.
type LoginResponse struct {
	Status string `json:"status"`
}

// RedeemResponse is the response body for GET /auth/login/{token}.
// Valid is false for both expired and never-issued tokens; the two cases are
// indistinguishable on purpose.
type RedeemResponse struct {
	Valid     bool         `json:"valid"`
	Status    string       `json:"status,omitempty"`
	Token     string       `json:"token,omitempty"`
	TokenType string       `json:"token_type,omitempty"`
	User      *domain.User `json:"user,omitempty"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Login godoc
// @Summary Request a login link
// @Description Issues a single-use login token for the email and sends the link by mail. Any previously issued tokens for the email are invalidated.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Email address"
// @Success 200 {object} helpers.APIResponse "data contains status: mail sent"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.RequestLoginToken(r.Context(), req.Email); err != nil {
		if strings.Contains(err.Error(), "invalid email") {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Status: "mail sent"})
}

// Redeem godoc
// @Summary Redeem a login token
// @Description Consumes the emailed token. Succeeds at most once per token within the validity window; provisions the account on first login. Invalid and expired tokens answer 200 with valid=false.
// @Tags auth
// @Produce json
// @Param token path string true "Login token"
// @Success 200 {object} helpers.APIResponse "data contains valid, token, user"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login/{token} [get]
func (c *AuthController) Redeem(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	session, user, err := c.Service.RedeemLoginToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			// 200 on purpose: the caller learns nothing about whether
			// this email ever logged in.
			helpers.WriteJSONSuccess(w, http.StatusOK, RedeemResponse{Valid: false, Status: "not valid token"})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", "/auth/login/:token", "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RedeemResponse{
		Valid:     true,
		Token:     session,
		TokenType: "Bearer",
		User:      user,
	})
}

// MailSent answers the static "mail sent" notice.
func (c *AuthController) MailSent(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Status: "mail sent"})
}

// Logout godoc
// @Summary Log out
// @Description Sessions are bearer tokens; logout is the client discarding its token. The endpoint exists so clients have a uniform call.
// @Tags auth
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains status: logged out"
// @Router /auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Status: "logged out"})
}
