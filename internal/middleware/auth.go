// internal/middleware/auth.go
package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dangerclosesec/geneql/internal/auth"
)

// APIKeyHeader carries the shared service API key
const APIKeyHeader = "X-API-Key"

// apiKeyPrincipal identifies callers authenticated by the shared key
const apiKeyPrincipal = "api-key"

// Authenticator validates bearer tokens and, when a key hash is configured,
// the X-API-Key header
type Authenticator struct {
	tokens *auth.TokenManager
	apiKey *auth.KeyHash
	logger *slog.Logger
}

// NewAuthenticator builds an Authenticator. A nil apiKey disables API key
// authentication.
func NewAuthenticator(tokens *auth.TokenManager, apiKey *auth.KeyHash, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		tokens: tokens,
		apiKey: apiKey,
		logger: logger,
	}
}

// Middleware rejects unauthenticated requests and stores the caller's
// Principal in the request context
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := r.Header.Get(APIKeyHeader); key != "" {
			if a.apiKey == nil {
				respondWithError(w, http.StatusUnauthorized, "API key authentication disabled")
				return
			}
			if !a.apiKey.Matches(key) {
				a.logger.WarnContext(r.Context(), "invalid api key", "remote_addr", r.RemoteAddr)
				respondWithError(w, http.StatusUnauthorized, "Invalid API key")
				return
			}
			ctx := auth.WithPrincipal(r.Context(), auth.Principal{ID: apiKeyPrincipal, Method: auth.MethodAPIKey})
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "No authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondWithError(w, http.StatusUnauthorized, "Invalid authorization header")
			return
		}

		claims, err := a.tokens.Validate(parts[1])
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := auth.WithPrincipal(r.Context(), auth.Principal{ID: claims.ClientID, Method: auth.MethodJWT})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// respondWithError sends a JSON error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
