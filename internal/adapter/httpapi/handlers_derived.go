package httpapi

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/simaogato/networth-backend/internal/usecase/projection"
)

func (s *Server) handleNetWorthHistory(w http.ResponseWriter, r *http.Request) {
	series, err := s.HistoryService.GetNetWorthHistory(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	points := make([]seriesPointResponse, 0, len(series.Points))
	for _, p := range series.Points {
		points = append(points, seriesPointResponse{
			Date:          p.Date,
			TotalNetWorth: p.Total.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"points": points})
}

func (s *Server) handleNetWorthBreakdown(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	series, err := s.HistoryService.GetNetWorthHistory(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	breakdown, ok := series.Breakdowns[date.String()]
	if !ok {
		writeError(w, http.StatusNotFound, "no net worth recorded on "+date.String())
		return
	}

	entries := make([]breakdownEntryResponse, 0, len(breakdown))
	for assetID, value := range breakdown {
		entries = append(entries, breakdownEntryResponse{
			AssetID: assetID.String(),
			Value:   value.String(),
		})
	}
	// Map iteration order is random; keep the payload deterministic.
	sort.Slice(entries, func(i, j int) bool { return entries[i].AssetID < entries[j].AssetID })

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":      date,
		"breakdown": entries,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	target := domain.YearMonth{Year: now.Year(), Month: now.Month()}

	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		target.Year = year
	}
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
		target.Month = time.Month(month)
	}

	summary, err := s.DashboardService.GetMonthlySummary(r.Context(), target)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	years, err := s.DashboardService.GetAvailableYears(r.Context(), now.Year())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, monthlySummaryResponse{
		Year:           summary.Year,
		Month:          int(summary.Month),
		Incomes:        toTransactionResponses(summary.Incomes),
		Expenses:       toTransactionResponses(summary.Expenses),
		TotalIncome:    summary.TotalIncome.StringFixed(2),
		TotalExpenses:  summary.TotalExpenses.StringFixed(2),
		Balance:        summary.Balance.StringFixed(2),
		ByCategory:     toBreakdownGroups(summary.ByCategory),
		ByType:         toBreakdownGroups(summary.ByType),
		AvailableYears: years,
	})
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	rate, err := decimal.NewFromString(r.URL.Query().Get("rate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rate")
		return
	}

	contribution, err := decimal.NewFromString(r.URL.Query().Get("contribution"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contribution")
		return
	}

	years, err := strconv.Atoi(r.URL.Query().Get("years"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid years")
		return
	}

	// The projection starts from the latest merged net-worth total.
	series, err := s.HistoryService.GetNetWorthHistory(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	current := decimal.Zero
	if len(series.Points) > 0 {
		current = series.Points[len(series.Points)-1].Total
	}

	points, err := projection.Project(current, rate, contribution, years, s.now().Year())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resps := make([]projectionPointResponse, 0, len(points))
	for _, p := range points {
		resps = append(resps, projectionPointResponse{
			Year:              p.Year,
			ProjectedNetWorth: p.Value.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"points": resps})
}
