package timeentry

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/http/httpx"
	"github.com/avolkov/tinycrm/internal/timeentry"
)

type Handler struct {
	svc *timeentry.Service
}

func NewHandler(svc *timeentry.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/toggle-timer", h.toggle)
	r.Post("/start", h.start)
	r.Post("/stop", h.stop)
	r.Get("/active-timer", h.active)

	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createEntryRequest struct {
	ClientID    uuid.UUID  `json:"client_id"`
	Start       time.Time  `json:"start_time"`
	End         *time.Time `json:"end_time"`
	Description string     `json:"description"`
}

type updateEntryRequest struct {
	Start       *time.Time `json:"start_time,omitempty"`
	End         *time.Time `json:"end_time,omitempty"`
	Description *string    `json:"description,omitempty"`
}

type timerRequest struct {
	ClientID    uuid.UUID `json:"client_id"`
	Description string    `json:"description"`
}

type entryResponse struct {
	ID          uuid.UUID  `json:"id"`
	ClientID    uuid.UUID  `json:"client_id"`
	ClientName  string     `json:"client_name"`
	Start       time.Time  `json:"start_time"`
	End         *time.Time `json:"end_time"`
	Description string     `json:"description"`
	Running     bool       `json:"running"`
	Seconds     int64      `json:"duration_seconds"`
}

type toggleResponse struct {
	Stopped bool          `json:"stopped"`
	Entry   entryResponse `json:"entry"`
}

func toResponse(e *timeentry.TimeEntry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		ClientID:    e.ClientID,
		ClientName:  e.ClientName,
		Start:       e.Start,
		End:         e.End,
		Description: e.Description,
		Running:     e.Running(),
		Seconds:     int64(e.Duration().Seconds()),
	}
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	var req timerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	e, stopped, err := h.svc.Toggle(r.Context(), acc.ID, req.ClientID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	status := http.StatusCreated
	if stopped {
		status = http.StatusOK
	}

	httpx.JSON(w, status, toggleResponse{Stopped: stopped, Entry: toResponse(e)})
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	var req timerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	e, err := h.svc.Start(r.Context(), acc.ID, req.ClientID, req.Description)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) stop(w http.ResponseWriter, r *http.Request) {
	acc := httpx.AccountFrom(r)

	e, err := h.svc.Stop(r.Context(), acc.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) active(w http.ResponseWriter, r *http.Request) {
	acc := httpx.AccountFrom(r)

	e, err := h.svc.Active(r.Context(), acc.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	if e == nil {
		httpx.JSON(w, http.StatusOK, map[string]any{"active": false})
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"active": true, "entry": toResponse(e)})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	e, err := h.svc.Create(r.Context(), acc.ID, timeentry.CreateParams{
		ClientID:    req.ClientID,
		Start:       req.Start,
		End:         req.End,
		Description: req.Description,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := timeentry.ListFilter{
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

	entries, total, err := h.svc.List(r.Context(), acc.ID, filter)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	resp := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toResponse(e))
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

	e, err := h.svc.Get(r.Context(), acc.ID, id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	e, err := h.svc.Update(r.Context(), acc.ID, id, timeentry.UpdateParams{
		Start:       req.Start,
		End:         req.End,
		Description: req.Description,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(e))
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
