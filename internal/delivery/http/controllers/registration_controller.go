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

// PaymentRequest is the request body for POST /registration/payment.
type PaymentRequest struct {
	MerchantUID string `json:"merchant_uid"`
	Amount      int    `json:"amount"`
	CardNumber  string `json:"card_number"`
	Expiry      string `json:"expiry"`
	Birth       string `json:"birth"`
	Pwd2Digit   string `json:"pwd_2digit"`
}

// Validate implements Validator.
func (p PaymentRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.MerchantUID) == "" {
		errs = append(errs, "merchant_uid is required")
	}
	if p.Amount <= 0 {
		errs = append(errs, "amount must be positive")
	}
	if strings.TrimSpace(p.CardNumber) == "" {
		errs = append(errs, "card_number is required")
	}
	if strings.TrimSpace(p.Expiry) == "" {
		errs = append(errs, "expiry is required")
	}
	return errs
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Payment godoc
// @Summary Pay for a registration
// @Description Charges the card through the payment gateway and records the registration. A gateway outage answers 406 with error.code io_error; the client retries later.
// @Tags registration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PaymentRequest true "Payment details"
// @Success 201 {object} helpers.APIResponse "data contains the registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 406 {object} helpers.APIResponse "error.code: io_error"
// @Router /registration/payment [post]
func (c *RegistrationController) Payment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req PaymentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.ProcessPayment(r.Context(), userID, &domain.PaymentRequest{
		MerchantUID: req.MerchantUID,
		Amount:      req.Amount,
		CardNumber:  req.CardNumber,
		Expiry:      req.Expiry,
		Birth:       req.Birth,
		Pwd2Digit:   req.Pwd2Digit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPaymentGateway) {
			c.Logger.ErrorContext(r.Context(), "payment gateway unreachable", "path", r.URL.Path, "err", err)
			helpers.WriteIOError(w, "payment gateway is unavailable")
			return
		}
		if strings.Contains(err.Error(), "already registered") {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// Status godoc
// @Summary Get own registration
// @Tags registration
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the registration"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /registration [get]
func (c *RegistrationController) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	reg, err := c.Service.GetOwn(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "registration not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}
