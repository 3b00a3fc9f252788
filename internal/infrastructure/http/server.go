package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"bitprice-service/internal/application"
	"bitprice-service/internal/domain"

	"go.uber.org/zap"
)

type Server struct {
	gw     *application.QuoteGateway
	budget *application.CallBudget
	ping   func(ctx context.Context) error
}

func NewServer(gw *application.QuoteGateway, budget *application.CallBudget) *Server {
	return &Server{gw: gw, budget: budget}
}

// SetReadyCheck installs the readiness probe used by /readyz.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

type priceResponse struct {
	Price float64 `json:"price"`
}

type historyItem struct {
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

type budgetResponse struct {
	Limit     int64 `json:"limit"`
	Used      int64 `json:"used"`
	Remaining int64 `json:"remaining"`
	Closed    bool  `json:"closed"`
}

type detailResponse struct {
	Detail string   `json:"detail"`
	Price  *float64 `json:"price,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) FetchBitcoinPrice(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r.Context())
	q, err := s.gw.GetCurrentQuote(r.Context())

	var ue *domain.UpstreamError
	var pe *domain.PersistenceError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, priceResponse{Price: q.Price})
	case errors.As(err, &ue):
		log.Warn("fetch_price.upstream_error", zap.Int("upstream_status", ue.StatusCode), zap.String("detail", ue.Message))
		writeJSON(w, ue.HTTPStatus(), detailResponse{Detail: ue.Message})
	case errors.As(err, &pe):
		// the fetch succeeded, so the caller still gets the price alongside the failure
		log.Error("fetch_price.persistence_error", zap.Error(err))
		price := q.Price
		writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: pe.Error(), Price: &price})
	default:
		log.Error("fetch_price.failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: err.Error()})
	}
}

func (s *Server) BitcoinPriceHistory(w http.ResponseWriter, r *http.Request, params BitcoinPriceHistoryParams) {
	limit := application.DefaultHistoryLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	quotes, err := s.gw.GetQuoteHistory(r.Context(), limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLimit) {
			writeJSON(w, http.StatusUnprocessableEntity, detailResponse{Detail: err.Error()})
			return
		}
		requestLogger(r.Context()).Error("price_history.failed", zap.Int("limit", limit), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: err.Error()})
		return
	}
	items := make([]historyItem, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, historyItem{Price: q.Price, Timestamp: q.Timestamp()})
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) Budget(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, budgetResponse{
		Limit:     s.budget.Ceiling(),
		Used:      s.budget.Used(),
		Remaining: s.budget.Remaining(),
		Closed:    s.budget.Closed(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}{Code: status, Message: msg})
}
