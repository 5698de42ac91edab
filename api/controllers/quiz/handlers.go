package quiz

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/lushka-backend/api/middleware"
	"github.com/angelmondragon/lushka-backend/api/responses"
	"github.com/angelmondragon/lushka-backend/api/validators"
	"github.com/angelmondragon/lushka-backend/internal/recommendation"
	pkgerrors "github.com/angelmondragon/lushka-backend/pkg/errors"
	"github.com/angelmondragon/lushka-backend/pkg/logger"
	"github.com/angelmondragon/lushka-backend/pkg/money"
)

type answerRequest struct {
	OptionID string `json:"option_id" validate:"required,max=40"`
}

type quizResponse struct {
	Questions []recommendation.Question `json:"questions"`
	recommendation.View
}

type addToCartResponse struct {
	ItemCount      int    `json:"item_count"`
	Total          int64  `json:"total"`
	FormattedTotal string `json:"formatted_total"`
}

// QuizFetch returns the questionnaire and the session's quiz state.
func QuizFetch(svc recommendation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, quizResponse{
			Questions: svc.Questions(),
			View:      svc.View(r.Context(), sessionID),
		})
	}
}

// QuizAnswer records an answer for the current question. The answer that
// starts processing responds 202; ignored answers return the unchanged view.
func QuizAnswer(svc recommendation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		var payload answerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, started := svc.Answer(r.Context(), sessionID, strings.TrimSpace(payload.OptionID))
		if started {
			responses.WriteSuccessStatus(w, http.StatusAccepted, view)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// QuizBack returns to the previous question.
func QuizBack(svc recommendation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, svc.Back(r.Context(), sessionID))
	}
}

// QuizReset restarts the quiz.
func QuizReset(svc recommendation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, svc.Reset(r.Context(), sessionID))
	}
}

// QuizAddToCart adds every recommended item to the session's cart.
func QuizAddToCart(svc recommendation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireSession(w, r, svc, logg)
		if !ok {
			return
		}

		summary, err := svc.AddToCart(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, addToCartResponse{
			ItemCount:      summary.ItemCount,
			Total:          summary.Total,
			FormattedTotal: money.Format(summary.Total),
		})
	}
}

func requireSession(w http.ResponseWriter, r *http.Request, svc recommendation.Service, logg *logger.Logger) (string, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quiz service unavailable"))
		return "", false
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing"))
		return "", false
	}
	return sessionID, true
}
