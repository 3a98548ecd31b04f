package transaction

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cambio/internal/balance"
	"github.com/MrJamesThe3rd/cambio/internal/http/middleware"
	"github.com/MrJamesThe3rd/cambio/internal/http/render"
	"github.com/MrJamesThe3rd/cambio/internal/mirror"
	"github.com/MrJamesThe3rd/cambio/internal/operationtype"
	"github.com/MrJamesThe3rd/cambio/internal/transaction"
)

const defaultLatestLimit = 10

var errorStatus = map[error]int{
	transaction.ErrNotFound: http.StatusNotFound,
	balance.ErrNotFound:     http.StatusUnprocessableEntity,
}

type OperationTypes interface {
	ByCode(code string) (operationtype.OperationType, bool)
}

type Handler struct {
	svc   *transaction.Service
	types OperationTypes
	// mirror is nil when the mirror is disabled.
	mirror mirror.Reader
}

func NewHandler(svc *transaction.Service, types OperationTypes, mirror mirror.Reader) *Handler {
	return &Handler{svc: svc, types: types, mirror: mirror}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/latest", h.latest)
	r.Get("/{id}", h.get)
}

type createTransactionRequest struct {
	ClientID          uuid.UUID                     `json:"clientId"`
	OperationType     string                        `json:"operationType" validate:"required"`
	CurrencyOperation transaction.CurrencyOperation `json:"currencyOperation" validate:"required"`
	Amount            decimal.Decimal               `json:"amount" validate:"gt=0"`
	NetAmount         *decimal.Decimal              `json:"netAmount,omitempty"`
	CalculatedAmount  *decimal.Decimal              `json:"calculatedAmount,omitempty"`
	ExchangeRate      *decimal.Decimal              `json:"exchangeRate,omitempty"`
	BalanceID         *uuid.UUID                    `json:"balanceId,omitempty"`
	Description       string                        `json:"description,omitempty"`
	Date              *time.Time                    `json:"date,omitempty"`
	Deductions        *transaction.Deductions       `json:"deductions,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !render.Decode(w, r, &req) {
		return
	}

	ot, ok := h.types.ByCode(req.OperationType)
	if !ok {
		render.Error(w, http.StatusUnprocessableEntity, "unknown operation type")
		return
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		ClientID:          req.ClientID,
		OperatorID:        middleware.OperatorID(r.Context()),
		OperationType:     ot.Code,
		CurrencyOperation: req.CurrencyOperation,
		Amount:            req.Amount,
		NetAmount:         req.NetAmount,
		CalculatedAmount:  req.CalculatedAmount,
		ExchangeRate:      req.ExchangeRate,
		BalanceID:         req.BalanceID,
		Description:       req.Description,
		Date:              date,
		Deductions:        req.Deductions,
	})
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusCreated, tx)
}

// list serves the local transactions, or queries the database when a date
// range is given.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t.Add(24*time.Hour - time.Nanosecond))
		}
	}

	if filter.StartDate == nil && filter.EndDate == nil {
		render.JSON(w, http.StatusOK, h.svc.List())
		return
	}

	txs, err := h.svc.Query(r.Context(), filter)
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	if txs == nil {
		txs = []*transaction.Transaction{}
	}

	render.JSON(w, http.StatusOK, txs)
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	if h.mirror == nil {
		render.Error(w, http.StatusServiceUnavailable, "mirror disabled")
		return
	}

	limit := defaultLatestLimit

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			render.Error(w, http.StatusBadRequest, "invalid limit")
			return
		}

		limit = n
	}

	txs, err := mirror.LatestTransactions(r.Context(), h.mirror, limit)
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusOK, txs)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusOK, tx)
}
