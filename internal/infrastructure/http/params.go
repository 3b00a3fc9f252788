package httpserver

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// BitcoinPriceHistoryParams defines parameters for BitcoinPriceHistory.
type BitcoinPriceHistoryParams struct {
	// Limit caps the number of quotes returned. Defaults to 10.
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

func (s *Server) bitcoinPriceHistory(w http.ResponseWriter, r *http.Request) {
	var params BitcoinPriceHistoryParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detailResponse{Detail: fmt.Sprintf("invalid format for parameter limit: %v", err)})
		return
	}
	s.BitcoinPriceHistory(w, r, params)
}
