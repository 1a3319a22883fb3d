package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/parstock/pkg/httpx"
	"github.com/ghuser/parstock/pkg/logger"
	"github.com/ghuser/parstock/pkg/validator"
)

type signInRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80"`
}

// RegisterRoutes mounts the session endpoints:
//
//	POST   /session : sign in with a display name
//	DELETE /session : sign out
//	GET    /session : current operator
func RegisterRoutes(r chi.Router, store sessions.Store, log logger.Logger) {
	r.Post("/session", signIn(store, log))
	r.Delete("/session", signOut(store, log))
	r.Get("/session", whoami(store))
}

func signIn(store sessions.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := validator.ValidateRequest[signInRequest](w, r)
		if !ok {
			return
		}

		session, _ := store.Get(r, sessionName)

		// Keep the operator ID stable across renames on the same device.
		idStr, ok := session.Values[sessionOperatorIDKey].(string)
		if !ok || idStr == "" {
			idStr = uuid.New().String()
		}
		session.Values[sessionOperatorIDKey] = idStr
		session.Values[sessionOperatorNameKey] = req.Name

		if err := session.Save(r, w); err != nil {
			log.ErrorContext(r.Context(), "save session", "error", err)
			httpx.JSONError(w, http.StatusInternalServerError, "could not save session")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"id": idStr, "name": req.Name})
	}
}

func signOut(store sessions.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := store.Get(r, sessionName)
		session.Options.MaxAge = -1
		if err := session.Save(r, w); err != nil {
			log.ErrorContext(r.Context(), "delete session", "error", err)
			httpx.JSONError(w, http.StatusInternalServerError, "could not delete session")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func whoami(store sessions.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := store.Get(r, sessionName)
		if err != nil {
			httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "sign-in required"})
			return
		}
		idStr, ok := session.Values[sessionOperatorIDKey].(string)
		if !ok || idStr == "" {
			httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "sign-in required"})
			return
		}
		name, _ := session.Values[sessionOperatorNameKey].(string)
		httpx.JSON(w, http.StatusOK, map[string]string{"id": idStr, "name": name})
	}
}
