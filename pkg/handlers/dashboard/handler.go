package dashboard

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cost-guardian/dashboard/pkg/services/query"
)

type Querier interface {
	Handle(ctx context.Context, view, date string) query.Response
}

type Handler struct {
	querier Querier
}

func NewHandler(querier Querier) *Handler {
	return &Handler{querier: querier}
}

// GetDashboard serves ?view=daily|weekly|monthly&date=YYYY-MM-DD.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	params := r.URL.Query()

	resp := h.querier.Handle(ctx, params.Get("view"), params.Get("date"))

	writeJSON(w, resp.Status, resp.Body, logger)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, zerolog.Ctx(r.Context()))
}

func writeJSON(w http.ResponseWriter, status int, body any, logger *zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().
			Err(err).
			Int("status", status).
			Msg("failed to encode response")
	}
}
