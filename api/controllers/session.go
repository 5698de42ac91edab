package controllers

import (
	"net/http"
	"time"

	"github.com/angelmondragon/lushka-backend/api/responses"
	"github.com/angelmondragon/lushka-backend/pkg/auth"
	"github.com/angelmondragon/lushka-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/lushka-backend/pkg/errors"
	"github.com/angelmondragon/lushka-backend/pkg/logger"
)

// SessionCreate mints an anonymous shopper session.
func SessionCreate(cfg config.SessionConfig, logg *logger.Logger, now func() time.Time) http.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := auth.MintSessionToken(cfg, now(), "")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session"))
			return
		}

		if logg != nil {
			logg.Info(logg.WithSessionID(r.Context(), sess.ID), "session.created")
		}

		w.Header().Set(cfg.Header, sess.Token)
		responses.WriteSuccessStatus(w, http.StatusCreated, sess)
	}
}
