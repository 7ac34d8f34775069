package middleware

import (
	"net/http"

	"github.com/dangerclosesec/geneql/internal/audit"
)

// AuditRequest makes the current HTTP request available to the audit logger
func AuditRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(audit.WithRequest(r.Context(), r)))
	})
}
