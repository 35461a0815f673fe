package client

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/client"
	"github.com/avolkov/tinycrm/internal/http/httpx"
)

type Handler struct {
	svc *client.Service
	now func() time.Time
}

func NewHandler(svc *client.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/birthdays", h.birthdays)
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createClientRequest struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Phone    string        `json:"phone"`
	Notes    string        `json:"notes"`
	Status   client.Status `json:"status"`
	Birthday *string       `json:"birthday"`
	TagIDs   []uuid.UUID   `json:"tag_ids"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	acc := httpx.AccountFrom(r)

	c, err := h.svc.Create(r.Context(), acc.ID, client.CreateParams{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Notes:    req.Notes,
		Status:   req.Status,
		Birthday: birthday,
		TagIDs:   req.TagIDs,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := client.ListFilter{
		Limit:  httpx.PageSize,
		Offset: httpx.PageOffset(r),
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := client.Status(s)
		filter.Status = &status
	}

	acc := httpx.AccountFrom(r)

	clients, total, err := h.svc.List(r.Context(), acc.ID, filter)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, httpx.Page{Count: total, Results: toResponseList(clients)})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	c, err := h.svc.Get(r.Context(), acc.ID, id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(c))
}

type updateClientRequest struct {
	Name     *string        `json:"name,omitempty"`
	Email    *string        `json:"email,omitempty"`
	Phone    *string        `json:"phone,omitempty"`
	Notes    *string        `json:"notes,omitempty"`
	Status   *client.Status `json:"status,omitempty"`
	Birthday *string        `json:"birthday,omitempty"`
	TagIDs   *[]uuid.UUID   `json:"tag_ids,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	acc := httpx.AccountFrom(r)

	c, err := h.svc.Update(r.Context(), acc.ID, id, client.UpdateParams{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Notes:    req.Notes,
		Status:   req.Status,
		Birthday: birthday,
		TagIDs:   req.TagIDs,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(c))
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

func (h *Handler) birthdays(w http.ResponseWriter, r *http.Request) {
	acc := httpx.AccountFrom(r)

	clients, err := h.svc.UpcomingBirthdays(r.Context(), acc.ID, h.now())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponseList(clients))
}

func parseBirthday(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, apperr.FieldErrors{"birthday": "must be a date in YYYY-MM-DD format"}
	}

	return &t, nil
}
