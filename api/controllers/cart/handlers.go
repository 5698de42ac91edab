package cart

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/angelmondragon/lushka-backend/api/controllers/cart/dto"
	"github.com/angelmondragon/lushka-backend/api/middleware"
	"github.com/angelmondragon/lushka-backend/api/responses"
	"github.com/angelmondragon/lushka-backend/api/validators"
	cartsvc "github.com/angelmondragon/lushka-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/lushka-backend/pkg/errors"
	"github.com/angelmondragon/lushka-backend/pkg/logger"
)

// CartFetch returns the session's cart summary.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, newCartResponse(svc.Summary(r.Context(), sessionID)))
	}
}

// CartAddItem adds a product or bundle to the session's cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.AddItem(r.Context(), sessionID, toAddItemInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(summary))
	}
}

// CartUpdateItem changes a line's quantity. Unknown line ids leave the cart unchanged.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		var payload cartdto.UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineID := strings.TrimSpace(chi.URLParam(r, "lineId"))
		responses.WriteSuccess(w, newCartResponse(svc.UpdateQuantity(r.Context(), sessionID, lineID, *payload.Quantity)))
	}
}

// CartRemoveItem deletes a line from the cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}
		lineID := strings.TrimSpace(chi.URLParam(r, "lineId"))
		responses.WriteSuccess(w, newCartResponse(svc.RemoveItem(r.Context(), sessionID, lineID)))
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, newCartResponse(svc.Clear(r.Context(), sessionID)))
	}
}

// CartLookup reports whether an item is in the cart and how many units.
func CartLookup(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		dto, err := svc.Lookup(r.Context(), sessionID, chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func requireSession(w http.ResponseWriter, r *http.Request, svc cartsvc.Service, logg *logger.Logger) (string, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
		return "", false
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing"))
		return "", false
	}
	return sessionID, true
}
