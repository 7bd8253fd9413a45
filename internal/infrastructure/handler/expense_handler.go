package handler

import (
	"net/http"

	"github.com/bharath-kadali/expenseTracker/internal/application/service"
	"github.com/bharath-kadali/expenseTracker/internal/domain/entity"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/logger"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// ExpenseHandler handles HTTP requests for expenses and the preferred currency
type ExpenseHandler struct {
	service *service.ExpenseService
	logger  logger.Logger
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(service *service.ExpenseService, log logger.Logger) *ExpenseHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExpenseHandler{
		service: service,
		logger:  log,
	}
}

// CreateExpense handles the creation of a new expense
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req CreateExpenseRequest
	if !decodeAndValidate(w, r, h.logger, requestID, &req) {
		return
	}

	expense, err := h.service.AddExpense(r.Context(), service.NewExpense{
		Amount:   req.Amount,
		Currency: req.Currency,
		Category: req.Category,
		Date:     req.Date,
	})
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, toExpenseResponse(expense))
}

// ListExpenses handles listing all expenses
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	currency, err := h.service.GetPreferredCurrency(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	expenses, err := h.service.ListExpenses(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, ExpenseListResponse{
		Currency: currency,
		Expenses: toExpenseResponses(expenses),
	})
}

// GetExpense handles retrieving an expense by ID
func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	expense, err := h.service.GetExpense(r.Context(), id)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toExpenseResponse(expense))
}

// UpdateExpense handles editing an expense
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	var req UpdateExpenseRequest
	if !decodeAndValidate(w, r, h.logger, requestID, &req) {
		return
	}

	expense, err := h.service.EditExpense(r.Context(), id, entity.ExpenseUpdate{
		Amount:   req.Amount,
		Currency: req.Currency,
		Category: req.Category,
		Date:     req.Date,
	})
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toExpenseResponse(expense))
}

// DeleteExpense handles deleting an expense
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteExpense(r.Context(), id); err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecomputeExpenses handles recomputing every converted amount, e.g. after a rate refresh
func (h *ExpenseHandler) RecomputeExpenses(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	expenses, err := h.service.RecomputeAll(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	currency, err := h.service.GetPreferredCurrency(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, ExpenseListResponse{
		Currency: currency,
		Expenses: toExpenseResponses(expenses),
	})
}

// GetPreferredCurrency handles reading the preferred currency
func (h *ExpenseHandler) GetPreferredCurrency(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	currency, err := h.service.GetPreferredCurrency(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, PreferenceResponse{Currency: currency})
}

// SetPreferredCurrency handles changing the preferred currency; every expense is recomputed
func (h *ExpenseHandler) SetPreferredCurrency(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req PreferenceRequest
	if !decodeAndValidate(w, r, h.logger, requestID, &req) {
		return
	}

	expenses, err := h.service.SetPreferredCurrency(r.Context(), req.Currency)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	currency, err := h.service.GetPreferredCurrency(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, ExpenseListResponse{
		Currency: currency,
		Expenses: toExpenseResponses(expenses),
	})
}

// RegisterRoutes registers the expense handler routes
func (h *ExpenseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/expenses", h.CreateExpense).Methods("POST")
	router.HandleFunc("/expenses", h.ListExpenses).Methods("GET")
	router.HandleFunc("/expenses/recompute", h.RecomputeExpenses).Methods("POST")
	router.HandleFunc("/expenses/{id}", h.GetExpense).Methods("GET")
	router.HandleFunc("/expenses/{id}", h.UpdateExpense).Methods("PUT")
	router.HandleFunc("/expenses/{id}", h.DeleteExpense).Methods("DELETE")
	router.HandleFunc("/preferences/currency", h.GetPreferredCurrency).Methods("GET")
	router.HandleFunc("/preferences/currency", h.SetPreferredCurrency).Methods("PUT")

	h.logger.Info("Expense routes registered", map[string]interface{}{
		"routes": []string{
			"POST /expenses",
			"GET /expenses",
			"POST /expenses/recompute",
			"GET /expenses/{id}",
			"PUT /expenses/{id}",
			"DELETE /expenses/{id}",
			"GET /preferences/currency",
			"PUT /preferences/currency",
		},
	})
}
