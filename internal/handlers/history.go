// internal/handlers/history.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aramdraft/aramdraft/internal/auth"
	"github.com/aramdraft/aramdraft/internal/config"
	"github.com/aramdraft/aramdraft/internal/database"
	"github.com/aramdraft/aramdraft/internal/models"
)

// HistoryLoginHandler exchanges the shared history secret for a session
// token. The secret never travels again after this exchange.
func HistoryLoginHandler(cfg config.Config, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeFailure(w, http.StatusBadRequest, "bad request payload")
			return
		}

		ok, err := auth.VerifySecret(body.Password, cfg.HistorySecret, cfg.HistorySecretHash)
		if err != nil {
			log.WithError(err).Error("history secret verification failed")
			writeFailure(w, http.StatusInternalServerError, "verification failed")
			return
		}
		if !ok {
			writeFailure(w, http.StatusUnauthorized, "wrong password")
			return
		}

		token, err := auth.CreateHistoryToken()
		if err != nil {
			log.WithError(err).Error("failed to mint history token")
			writeFailure(w, http.StatusInternalServerError, "failed to create session")
			return
		}
		writeJSON(w, http.StatusOK, apiResponse{"success": true, "token": token})
	}
}

// RequireHistoryToken guards the history listing behind a valid session
// token carried as a bearer credential.
func RequireHistoryToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeFailure(w, http.StatusUnauthorized, "missing history token")
			return
		}
		if err := auth.VerifyHistoryToken(token); err != nil {
			writeFailure(w, http.StatusForbidden, "invalid history token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HistoryHandler lists persisted matches newest-first with pagination.
func HistoryHandler(log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 1)
		limit := queryInt(r, "limit", 10)

		matches, total, err := database.ListMatches(r.Context(), page, limit)
		if err != nil {
			log.WithError(err).Error("history query failed")
			writeFailure(w, http.StatusInternalServerError, "query failed")
			return
		}

		writeJSON(w, http.StatusOK, apiResponse{
			"success": true,
			"data": apiResponse{
				"matches":    matches,
				"pagination": models.NewPagination(page, limit, total),
			},
		})
	}
}

// MatchHandler fetches one match row by UUID. Match pages are shareable by
// link, so this endpoint is not behind the history gate.
func MatchHandler(log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "uuid"))
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "invalid match uuid")
			return
		}

		m, err := database.GetMatchByUUID(r.Context(), id)
		if err == database.ErrMatchNotFound {
			writeJSON(w, http.StatusOK, apiResponse{"success": false, "message": "match record not found"})
			return
		}
		if err != nil {
			log.WithError(err).Error("match lookup failed")
			writeFailure(w, http.StatusInternalServerError, "query failed")
			return
		}
		writeJSON(w, http.StatusOK, apiResponse{"success": true, "match": m})
	}
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}
