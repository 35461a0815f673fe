package transaction

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avolkov/tinycrm/internal/http/httpx"
	"github.com/avolkov/tinycrm/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
	now func() time.Time
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// Summary serves the aggregated finance endpoint, mounted outside the
// CRUD subtree.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	acc := httpx.AccountFrom(r)

	summary, err := h.svc.Summary(r.Context(), acc.ID, h.now())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSummaryResponse(summary))
}

type createTransactionRequest struct {
	ClientID    *uuid.UUID       `json:"client_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Type        transaction.Type `json:"transaction_type"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
}

type updateTransactionRequest struct {
	// client_id distinguishes "absent" from an explicit null, which
	// detaches the transaction from its client.
	ClientID    json.RawMessage   `json:"client_id,omitempty"`
	Amount      *decimal.Decimal  `json:"amount,omitempty"`
	Type        *transaction.Type `json:"transaction_type,omitempty"`
	Description *string           `json:"description,omitempty"`
	Date        *time.Time        `json:"date,omitempty"`
}

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	ClientID    *uuid.UUID       `json:"client_id"`
	ClientName  string           `json:"client_name,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
	Type        transaction.Type `json:"transaction_type"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
}

func toResponse(t *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		ClientID:    t.ClientID,
		ClientName:  t.ClientName,
		Amount:      t.Amount,
		Type:        t.Type,
		Description: t.Description,
		Date:        t.Date,
	}
}

type bucketResponse struct {
	Period  string          `json:"period"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type summaryResponse struct {
	AllTime   []bucketResponse `json:"all_time"`
	ThisMonth []bucketResponse `json:"this_month"`
}

func toSummaryResponse(s *transaction.Summary) summaryResponse {
	return summaryResponse{
		AllTime:   toBuckets(s.AllTime, "2006-01"),
		ThisMonth: toBuckets(s.ThisMonth, time.DateOnly),
	}
}

func toBuckets(buckets []transaction.Bucket, layout string) []bucketResponse {
	resp := make([]bucketResponse, 0, len(buckets))
	for _, b := range buckets {
		resp = append(resp, bucketResponse{
			Period:  b.Period.Format(layout),
			Income:  b.Income,
			Expense: b.Expense,
		})
	}

	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Date.IsZero() {
		req.Date = h.now()
	}

	acc := httpx.AccountFrom(r)

	t, err := h.svc.Create(r.Context(), acc.ID, transaction.CreateParams{
		ClientID:    req.ClientID,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(t))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{
		Limit:  httpx.PageSize,
		Offset: httpx.PageOffset(r),
	}

	q := r.URL.Query()

	if raw := q.Get("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		filter.ClientID = &clientID
	}

	if raw := q.Get("transaction_type"); raw != "" {
		transactionType := transaction.Type(raw)
		filter.Type = &transactionType
	}

	acc := httpx.AccountFrom(r)

	transactions, total, err := h.svc.List(r.Context(), acc.ID, filter)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	resp := make([]transactionResponse, 0, len(transactions))
	for _, t := range transactions {
		resp = append(resp, toResponse(t))
	}

	httpx.JSON(w, http.StatusOK, httpx.Page{Count: total, Results: resp})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	t, err := h.svc.Get(r.Context(), acc.ID, id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := transaction.UpdateParams{
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
		Date:        req.Date,
	}

	if len(req.ClientID) > 0 {
		if bytes.Equal(req.ClientID, []byte("null")) {
			params.ClearClient = true
		} else {
			var clientID uuid.UUID
			if err := json.Unmarshal(req.ClientID, &clientID); err != nil {
				http.Error(w, "invalid client_id", http.StatusBadRequest)
				return
			}

			params.ClientID = &clientID
		}
	}

	acc := httpx.AccountFrom(r)

	t, err := h.svc.Update(r.Context(), acc.ID, id, params)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	if err := h.svc.Delete(r.Context(), acc.ID, id); err != nil {
		httpx.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
