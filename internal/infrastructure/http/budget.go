package httpserver

import (
	"net/http"
	"strconv"

	"bitprice-service/internal/application"
	"bitprice-service/internal/domain"

	"go.uber.org/zap"
)

// callBudget admits a request only while the budget is open. Rejected
// requests are answered with 429 and never reach the handler.
func callBudget(b *application.CallBudget) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed := b.Allow()
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(b.Ceiling(), 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(b.Remaining(), 10))
			if !allowed {
				requestLogger(r.Context()).Warn("call_budget.exhausted", zap.Int64("used", b.Used()))
				writeJSON(w, http.StatusTooManyRequests, messageResponse{Message: domain.ErrRateLimitExceeded.Error()})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
