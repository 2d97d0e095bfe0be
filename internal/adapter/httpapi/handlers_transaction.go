package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/simaogato/networth-backend/internal/usecase/transaction"
)

type transactionRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	IsRecurring bool   `json:"isRecurring"`
	Frequency   string `json:"frequency"`
	EndDate     string `json:"endDate"` // empty means open-ended
	Category    string `json:"category"`
}

// parse validates the wire fields and produces the typed input values.
func (req transactionRequest) parse() (amount decimal.Decimal, date, endDate domain.Date, err error) {
	amount, err = decimal.NewFromString(req.Amount)
	if err != nil {
		return decimal.Zero, domain.Date{}, domain.Date{}, err
	}

	date, err = domain.ParseDate(req.Date)
	if err != nil {
		return decimal.Zero, domain.Date{}, domain.Date{}, err
	}

	if req.EndDate != "" {
		endDate, err = domain.ParseDate(req.EndDate)
		if err != nil {
			return decimal.Zero, domain.Date{}, domain.Date{}, err
		}
	}

	return amount, date, endDate, nil
}

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	txs, err := s.TransactionService.ListIncomes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(txs))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	txs, err := s.TransactionService.ListExpenses(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(txs))
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	s.createTransaction(w, r, domain.TransactionKindIncome)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	s.createTransaction(w, r, domain.TransactionKindExpense)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request, kind domain.TransactionKind) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, date, endDate, err := req.parse()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.TransactionService.CreateTransaction(r.Context(), transaction.CreateTransactionInput{
		Kind:        kind,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
		IsRecurring: req.IsRecurring,
		Frequency:   domain.Frequency(req.Frequency),
		EndDate:     endDate,
		Category:    domain.ExpenseCategory(req.Category),
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, date, endDate, err := req.parse()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.TransactionService.UpdateTransaction(r.Context(), id, transaction.UpdateTransactionInput{
		Amount:      amount,
		Description: req.Description,
		Date:        date,
		IsRecurring: req.IsRecurring,
		Frequency:   domain.Frequency(req.Frequency),
		EndDate:     endDate,
		Category:    domain.ExpenseCategory(req.Category),
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.TransactionService.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
