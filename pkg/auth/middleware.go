package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/parstock/pkg/httpx"
	"github.com/ghuser/parstock/pkg/logger"
)

const sessionName = "parstock_session"

const (
	sessionOperatorIDKey   = "operator_id"
	sessionOperatorNameKey = "operator_name"
)

// RequireOperator is a chi middleware that enforces a signed-in operator via
// session cookies. It reads the session, extracts the operator, and injects it
// into the request context.
// Returns 401 Unauthorized if the session is missing, invalid, or anonymous.
//
// After this middleware, handlers can safely call auth.OperatorFromCtx(r.Context()).
func RequireOperator(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "sign-in required"})
				return
			}

			idStr, ok := session.Values[sessionOperatorIDKey].(string)
			if !ok || idStr == "" {
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "sign-in required"})
				return
			}

			id, err := uuid.Parse(idStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid operator_id in session", "operator_id", idStr, "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid session data"})
				return
			}

			name, _ := session.Values[sessionOperatorNameKey].(string)

			ctx := WithOperator(r.Context(), Operator{ID: id, Name: name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
