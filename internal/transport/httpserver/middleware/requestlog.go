package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"budget-app-go/pkg/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// requestInfo is placed in the context by the logging middleware and
// filled in by the auth middleware once the user is known.
type requestInfo struct {
	userID *uint
}

func requestInfoFromContext(ctx context.Context) *requestInfo {
	info, _ := ctx.Value(requestInfoKey).(*requestInfo)
	return info
}

var auditPrefixes = []string{"/auth", "/categories", "/transactions", "/budgets"}

// NewRequestLogger logs every request outcome and emits a coarse audit
// line for write operations on key resources.
func NewRequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	audit := log.With("channel", "audit")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			info := &requestInfo{}
			ctx := context.WithValue(r.Context(), requestInfoKey, info)
			wrapped := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(wrapped, r.WithContext(ctx))

			elapsed := time.Since(start)
			log.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.Status(),
				"duration_ms", float64(elapsed.Microseconds())/1000.0,
				"user_id", userIDValue(info),
			)

			if isWriteMethod(r.Method) && isAuditPath(r.URL.Path) {
				audit.Info("audit event",
					"action", r.Method+" "+r.URL.Path,
					"status", wrapped.Status(),
					"user_id", userIDValue(info),
				)
			}
		})
	}
}

func userIDValue(info *requestInfo) any {
	if info == nil || info.userID == nil {
		return nil
	}
	return *info.userID
}

func isWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func isAuditPath(path string) bool {
	for _, prefix := range auditPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
