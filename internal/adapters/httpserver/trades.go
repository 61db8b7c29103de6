package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"futuresjournal/internal/app"
	"futuresjournal/internal/domain"
	"futuresjournal/internal/ports"
)

type tradeHandlers struct {
	service *app.JournalService
	log     ports.Logger
}

func newTradeHandlers(service *app.JournalService, log ports.Logger) *tradeHandlers {
	return &tradeHandlers{service: service, log: log}
}

func (h *tradeHandlers) registerRoutes(r chi.Router) {
	r.Route("/trades", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{tradeID}", h.handleGet)
		r.Put("/{tradeID}", h.handleUpdate)
		r.Delete("/{tradeID}", h.handleDelete)
	})
}

// tradeRequest is the JSON payload for create/update. PnL is intentionally
// absent: it is always derived server-side from the prices.
type tradeRequest struct {
	Date       time.Time `json:"date"`
	Symbol     string    `json:"symbol"`
	Side       string    `json:"side"`
	Status     string    `json:"status"`
	Quantity   int       `json:"quantity"`
	EntryPrice float64   `json:"entryPrice"`
	ExitPrice  float64   `json:"exitPrice"`
	Commission float64   `json:"commission"`
	Fees       float64   `json:"fees"`
	Swap       float64   `json:"swap"`
	StopLoss   float64   `json:"stopLoss"`
	TakeProfit float64   `json:"takeProfit"`
	Strategy   string    `json:"strategy"`
	Timeframe  string    `json:"timeframe"`
	Notes      string    `json:"notes"`
	Tags       []string  `json:"tags"`
}

func (req *tradeRequest) toDomain(userID string) *domain.Trade {
	return &domain.Trade{
		UserID:     userID,
		Date:       req.Date,
		Symbol:     req.Symbol,
		Side:       domain.TradeSide(req.Side),
		Status:     domain.TradeStatus(req.Status),
		Quantity:   req.Quantity,
		EntryPrice: req.EntryPrice,
		ExitPrice:  req.ExitPrice,
		Commission: req.Commission,
		Fees:       req.Fees,
		Swap:       req.Swap,
		StopLoss:   req.StopLoss,
		TakeProfit: req.TakeProfit,
		Strategy:   req.Strategy,
		Timeframe:  req.Timeframe,
		Notes:      req.Notes,
		Tags:       req.Tags,
	}
}

type tradeResponse struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Symbol     string    `json:"symbol"`
	Side       string    `json:"side"`
	Status     string    `json:"status"`
	Quantity   int       `json:"quantity"`
	EntryPrice float64   `json:"entryPrice"`
	ExitPrice  float64   `json:"exitPrice"`
	PnL        float64   `json:"pnl"`
	Commission float64   `json:"commission"`
	Fees       float64   `json:"fees"`
	Swap       float64   `json:"swap"`
	StopLoss   float64   `json:"stopLoss"`
	TakeProfit float64   `json:"takeProfit"`
	Strategy   string    `json:"strategy"`
	Timeframe  string    `json:"timeframe"`
	Notes      string    `json:"notes"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toTradeResponse(t *domain.Trade) tradeResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return tradeResponse{
		ID:         t.ID,
		Date:       t.Date,
		Symbol:     t.Symbol,
		Side:       string(t.Side),
		Status:     string(t.Status),
		Quantity:   t.Quantity,
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.ExitPrice,
		PnL:        t.PNL,
		Commission: t.Commission,
		Fees:       t.Fees,
		Swap:       t.Swap,
		StopLoss:   t.StopLoss,
		TakeProfit: t.TakeProfit,
		Strategy:   t.Strategy,
		Timeframe:  t.Timeframe,
		Notes:      t.Notes,
		Tags:       tags,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func (h *tradeHandlers) handleList(w http.ResponseWriter, r *http.Request) {
	view, selected, err := parsePeriod(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	trades, err := h.service.ListTrades(r.Context(), userIDFrom(r.Context()), view, selected)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]tradeResponse, 0, len(trades))
	for _, t := range trades {
		out = append(out, toTradeResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *tradeHandlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	trade, err := h.service.CreateTrade(r.Context(), req.toDomain(userIDFrom(r.Context())))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTradeResponse(trade))
}

func (h *tradeHandlers) handleGet(w http.ResponseWriter, r *http.Request) {
	trade, err := h.service.GetTrade(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "tradeID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTradeResponse(trade))
}

func (h *tradeHandlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	userID := userIDFrom(r.Context())
	trade, err := h.service.UpdateTrade(r.Context(), userID, chi.URLParam(r, "tradeID"), req.toDomain(userID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTradeResponse(trade))
}

func (h *tradeHandlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTrade(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "tradeID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "trade deleted"})
}
