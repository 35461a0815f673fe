package interaction

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/http/httpx"
	"github.com/avolkov/tinycrm/internal/interaction"
)

type Handler struct {
	svc *interaction.Service
}

func NewHandler(svc *interaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createInteractionRequest struct {
	ClientID    uuid.UUID             `json:"client_id"`
	Type        interaction.Type      `json:"interaction_type"`
	Date        time.Time             `json:"interaction_date"`
	Description string                `json:"description"`
	DueDate     *time.Time            `json:"due_date"`
	Status      interaction.SLAStatus `json:"status"`
	CompletedAt *time.Time            `json:"completed_at"`
}

type updateInteractionRequest struct {
	Type        *interaction.Type      `json:"interaction_type,omitempty"`
	Date        *time.Time             `json:"interaction_date,omitempty"`
	Description *string                `json:"description,omitempty"`
	DueDate     *time.Time             `json:"due_date,omitempty"`
	Status      *interaction.SLAStatus `json:"status,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
}

type interactionResponse struct {
	ID          uuid.UUID             `json:"id"`
	ClientID    uuid.UUID             `json:"client_id"`
	ClientName  string                `json:"client_name"`
	Type        interaction.Type      `json:"interaction_type"`
	Date        time.Time             `json:"interaction_date"`
	Description string                `json:"description"`
	DueDate     *time.Time            `json:"due_date"`
	Status      interaction.SLAStatus `json:"status"`
	CompletedAt *time.Time            `json:"completed_at"`
	CreatedAt   time.Time             `json:"created_at"`
}

func toResponse(in *interaction.Interaction) interactionResponse {
	return interactionResponse{
		ID:          in.ID,
		ClientID:    in.ClientID,
		ClientName:  in.ClientName,
		Type:        in.Type,
		Date:        in.Date,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      in.Status,
		CompletedAt: in.CompletedAt,
		CreatedAt:   in.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	in, err := h.svc.Create(r.Context(), acc.ID, interaction.CreateParams{
		ClientID:    req.ClientID,
		Type:        req.Type,
		Date:        req.Date,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		CompletedAt: req.CompletedAt,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(in))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := interaction.ListFilter{
		Limit:  httpx.PageSize,
		Offset: httpx.PageOffset(r),
	}

	if raw := r.URL.Query().Get("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		filter.ClientID = &clientID
	}

	acc := httpx.AccountFrom(r)

	interactions, total, err := h.svc.List(r.Context(), acc.ID, filter)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	resp := make([]interactionResponse, 0, len(interactions))
	for _, in := range interactions {
		resp = append(resp, toResponse(in))
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

	in, err := h.svc.Get(r.Context(), acc.ID, id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(in))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	in, err := h.svc.Update(r.Context(), acc.ID, id, interaction.UpdateParams{
		Type:        req.Type,
		Date:        req.Date,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		CompletedAt: req.CompletedAt,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(in))
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
