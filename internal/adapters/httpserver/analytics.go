package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"futuresjournal/internal/app"
	"futuresjournal/internal/domain"
	"futuresjournal/internal/ports"
)

type analyticsHandlers struct {
	service *app.JournalService
	log     ports.Logger
}

func newAnalyticsHandlers(service *app.JournalService, log ports.Logger) *analyticsHandlers {
	return &analyticsHandlers{service: service, log: log}
}

func (h *analyticsHandlers) registerRoutes(r chi.Router) {
	r.Get("/summary", h.handleSummary)
	r.Get("/calendar", h.handleCalendar)
	r.Get("/reports", h.handleReports)
	r.Get("/contracts", h.handleContracts)
	r.Get("/contracts/{symbol}", h.handleContract)
}

// parsePeriod reads the view/date query parameters shared by the trade list
// and the analytics endpoints. Both are optional: no date means "all time".
func parsePeriod(r *http.Request) (domain.ViewMode, time.Time, error) {
	view := domain.ViewMode(strings.ToLower(r.URL.Query().Get("view")))
	switch view {
	case "":
		view = domain.ViewAll
	case domain.ViewDaily, domain.ViewWeekly, domain.ViewMonthly, domain.ViewAll:
	default:
		return "", time.Time{}, errors.New("view must be one of daily, weekly, monthly, all")
	}

	var selected time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, raw)
		}
		if err != nil {
			return "", time.Time{}, errors.New("date must be YYYY-MM-DD or RFC3339")
		}
		selected = parsed.UTC()
	}
	return view, selected, nil
}

func (h *analyticsHandlers) handleSummary(w http.ResponseWriter, r *http.Request) {
	view, selected, err := parsePeriod(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	summary, err := h.service.Summary(r.Context(), userIDFrom(r.Context()), view, selected)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *analyticsHandlers) handleCalendar(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		writeMessage(w, http.StatusBadRequest, "month query parameter is required (YYYY-MM)")
		return
	}
	month, err := time.Parse("2006-01", raw)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	result, err := h.service.Calendar(r.Context(), userIDFrom(r.Context()), month.UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *analyticsHandlers) handleReports(w http.ResponseWriter, r *http.Request) {
	view, selected, err := parsePeriod(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := h.service.Report(r.Context(), userIDFrom(r.Context()), view, selected)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type contractResponse struct {
	Symbol     string  `json:"symbol"`
	TickSize   float64 `json:"tickSize"`
	TickValue  float64 `json:"tickValue"`
	PointValue float64 `json:"pointValue"`
	Currency   string  `json:"currency"`
}

func toContractResponse(spec domain.ContractSpec) contractResponse {
	return contractResponse{
		Symbol:     spec.Symbol,
		TickSize:   spec.TickSize,
		TickValue:  spec.TickValue,
		PointValue: spec.PointValue,
		Currency:   spec.Currency,
	}
}

func (h *analyticsHandlers) handleContracts(w http.ResponseWriter, r *http.Request) {
	specs := domain.ListContracts()
	out := make([]contractResponse, 0, len(specs))
	for _, spec := range specs {
		out = append(out, toContractResponse(spec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *analyticsHandlers) handleContract(w http.ResponseWriter, r *http.Request) {
	spec := domain.ContractInfo(chi.URLParam(r, "symbol"))
	if spec == nil {
		writeMessage(w, http.StatusNotFound, "unknown contract symbol")
		return
	}
	writeJSON(w, http.StatusOK, toContractResponse(*spec))
}
