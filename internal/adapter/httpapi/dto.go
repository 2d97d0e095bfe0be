package httpapi

import (
	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/simaogato/networth-backend/internal/usecase/dashboard"
)

// Amounts travel as decimal strings on the wire and dates as YYYY-MM-DD;
// both are parsed at this boundary so the services only ever see typed
// values.

type valuationResponse struct {
	Value string      `json:"value"`
	Date  domain.Date `json:"date"`
	Kind  string      `json:"kind,omitempty"`
}

type contributionResponse struct {
	Amount string      `json:"amount"`
	Date   domain.Date `json:"date"`
}

type assetResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Type          string                 `json:"type"`
	InitialValue  string                 `json:"initialValue"`
	CurrentValue  string                 `json:"currentValue"`
	Contributions []contributionResponse `json:"contributions"`
	ValueHistory  []valuationResponse    `json:"valueHistory"`
}

func toAssetResponse(a *domain.Asset) assetResponse {
	resp := assetResponse{
		ID:            a.ID.String(),
		Name:          a.Name,
		Type:          string(a.Type),
		InitialValue:  a.InitialValue.String(),
		CurrentValue:  a.CurrentValue.String(),
		Contributions: make([]contributionResponse, 0, len(a.Contributions)),
		ValueHistory:  make([]valuationResponse, 0, len(a.ValueHistory)),
	}
	for _, c := range a.Contributions {
		resp.Contributions = append(resp.Contributions, contributionResponse{
			Amount: c.Amount.String(),
			Date:   c.Date,
		})
	}
	for _, p := range a.ValueHistory {
		resp.ValueHistory = append(resp.ValueHistory, valuationResponse{
			Value: p.Value.String(),
			Date:  p.Date,
			Kind:  string(p.Kind),
		})
	}
	return resp
}

type snapshotResponse struct {
	Amount      string      `json:"amount"`
	Description string      `json:"description"`
	Date        domain.Date `json:"date"`
	IsRecurring bool        `json:"isRecurring"`
	Frequency   string      `json:"frequency,omitempty"`
	EndDate     domain.Date `json:"endDate"`
	Category    string      `json:"category,omitempty"`
	ChangeType  string      `json:"changeType"`
	RecordedAt  string      `json:"recordedAt"`
}

type transactionResponse struct {
	ID          string             `json:"id"`
	Kind        string             `json:"kind"`
	Amount      string             `json:"amount"`
	Description string             `json:"description"`
	Date        domain.Date        `json:"date"`
	IsRecurring bool               `json:"isRecurring"`
	Frequency   string             `json:"frequency,omitempty"`
	EndDate     domain.Date        `json:"endDate"`
	Category    string             `json:"category,omitempty"`
	History     []snapshotResponse `json:"history"`
}

func toTransactionResponse(t *domain.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:          t.ID.String(),
		Kind:        string(t.Kind),
		Amount:      t.Amount.String(),
		Description: t.Description,
		Date:        t.Date,
		IsRecurring: t.IsRecurring,
		Frequency:   string(t.Frequency),
		EndDate:     t.EndDate,
		Category:    string(t.Category),
		History:     make([]snapshotResponse, 0, len(t.History)),
	}
	for _, s := range t.History {
		resp.History = append(resp.History, snapshotResponse{
			Amount:      s.Amount.String(),
			Description: s.Description,
			Date:        s.Date,
			IsRecurring: s.IsRecurring,
			Frequency:   string(s.Frequency),
			EndDate:     s.EndDate,
			Category:    string(s.Category),
			ChangeType:  string(s.ChangeType),
			RecordedAt:  s.RecordedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return resp
}

func toTransactionResponses(txs []*domain.Transaction) []transactionResponse {
	resps := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		resps = append(resps, toTransactionResponse(t))
	}
	return resps
}

type seriesPointResponse struct {
	Date          domain.Date `json:"date"`
	TotalNetWorth string      `json:"totalNetWorth"`
}

type breakdownEntryResponse struct {
	AssetID string `json:"assetId"`
	Value   string `json:"value"`
}

type monthlySummaryResponse struct {
	Year           int                      `json:"year"`
	Month          int                      `json:"month"`
	Incomes        []transactionResponse    `json:"incomes"`
	Expenses       []transactionResponse    `json:"expenses"`
	TotalIncome    string                   `json:"totalIncome"`
	TotalExpenses  string                   `json:"totalExpenses"`
	Balance        string                   `json:"balance"`
	ByCategory     []breakdownGroupResponse `json:"expensesByCategory"`
	ByType         []breakdownGroupResponse `json:"expensesByType"`
	AvailableYears []int                    `json:"availableYears"`
}

type breakdownGroupResponse struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

func toBreakdownGroups(entries []dashboard.BreakdownEntry) []breakdownGroupResponse {
	groups := make([]breakdownGroupResponse, 0, len(entries))
	for _, e := range entries {
		groups = append(groups, breakdownGroupResponse{Label: e.Label, Amount: e.Amount.String()})
	}
	return groups
}

type projectionPointResponse struct {
	Year              int    `json:"year"`
	ProjectedNetWorth string `json:"projectedNetWorth"`
}
