package controllers

import (
	"net/http"

	"github.com/angelmondragon/lushka-backend/api/middleware"
	"github.com/angelmondragon/lushka-backend/api/responses"
	"github.com/angelmondragon/lushka-backend/api/validators"
	"github.com/angelmondragon/lushka-backend/internal/checkout"
	pkgerrors "github.com/angelmondragon/lushka-backend/pkg/errors"
	"github.com/angelmondragon/lushka-backend/pkg/logger"
)

type customerPayload struct {
	Name    string `json:"name" validate:"max=120"`
	Email   string `json:"email" validate:"omitempty,email,max=160"`
	Phone   string `json:"phone" validate:"max=40"`
	Address string `json:"address" validate:"max=240"`
}

type whatsAppCheckoutRequest struct {
	Customer *customerPayload `json:"customer"`
}

type customMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

func (p *customerPayload) toCustomer() *checkout.Customer {
	if p == nil {
		return nil
	}
	return &checkout.Customer{
		Name:    validators.SanitizeLine(p.Name, 120),
		Email:   validators.SanitizeLine(p.Email, 160),
		Phone:   validators.SanitizeLine(p.Phone, 40),
		Address: validators.SanitizeString(p.Address, 240),
	}
}

// CheckoutWhatsApp prepares the WhatsApp order handoff for the session's cart.
func CheckoutWhatsApp(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing"))
			return
		}

		var payload whatsAppCheckoutRequest
		if err := validators.DecodeOptionalJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, svc.CartHandoff(ctx, sessionID, payload.Customer.toCustomer()))
	}
}

// CheckoutCustomMessage prepares a free-form WhatsApp handoff.
func CheckoutCustomMessage(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload customMessageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		handoff, err := svc.CustomMessage(ctx, validators.SanitizeString(payload.Message, 0))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, handoff)
	}
}
