package server

import (
	"net/http"
	"strings"

	"github.com/brk3/mindtrack/internal/logger"
)

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			logger.Debug("Missing bearer token", "path", r.URL.Path)
			RecordAuthEvent("missing_token")
			w.Header().Set("WWW-Authenticate", `Bearer realm="mindtrack"`)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		token := strings.TrimPrefix(ah, "Bearer ")
		if !tokensEqual(token, s.cfg.AuthToken) {
			logger.Debug("Invalid bearer token", "path", r.URL.Path, "token_hash", truncateHash(hashToken(token)))
			RecordAuthEvent("failed")
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		RecordAuthEvent("success")
		next.ServeHTTP(w, r)
	})
}
