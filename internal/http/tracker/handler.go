package tracker

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/http/httpx"
	"github.com/avolkov/tinycrm/internal/tracker"
)

type Handler struct {
	svc *tracker.Service
}

func NewHandler(svc *tracker.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/projects", func(r chi.Router) {
		r.Post("/", h.createProject)
		r.Get("/", h.listProjects)
		r.Get("/{id}", h.getProject)
		r.Patch("/{id}", h.updateProject)
		r.Delete("/{id}", h.deleteProject)
	})

	r.Route("/issues", func(r chi.Router) {
		r.Post("/", h.createIssue)
		r.Get("/", h.listIssues)
		r.Get("/{id}", h.getIssue)
		r.Patch("/{id}", h.updateIssue)
		r.Delete("/{id}", h.deleteIssue)
		r.Get("/{id}/comments", h.listComments)
		r.Post("/{id}/comments", h.createComment)
	})

	r.Delete("/comments/{id}", h.deleteComment)
}

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type projectUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type projectResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProjectResponse(p *tracker.Project) projectResponse {
	return projectResponse{ID: p.ID, Name: p.Name, Description: p.Description, CreatedAt: p.CreatedAt}
}

type issueCreateRequest struct {
	ProjectID   uuid.UUID           `json:"project_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	AssigneeID  *uuid.UUID          `json:"assignee_id"`
	Status      tracker.IssueStatus `json:"status"`
}

type issueUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	// assignee_id distinguishes "absent" from an explicit null, which
	// unassigns the issue.
	AssigneeID json.RawMessage      `json:"assignee_id,omitempty"`
	Status     *tracker.IssueStatus `json:"status,omitempty"`
}

type issueResponse struct {
	ID          uuid.UUID           `json:"id"`
	ProjectID   uuid.UUID           `json:"project_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	ReporterID  *uuid.UUID          `json:"reporter_id"`
	AssigneeID  *uuid.UUID          `json:"assignee_id"`
	Status      tracker.IssueStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func toIssueResponse(i *tracker.Issue) issueResponse {
	return issueResponse{
		ID:          i.ID,
		ProjectID:   i.ProjectID,
		Title:       i.Title,
		Description: i.Description,
		ReporterID:  i.ReporterID,
		AssigneeID:  i.AssigneeID,
		Status:      i.Status,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

type commentRequest struct {
	Body string `json:"body"`
}

type commentResponse struct {
	ID        uuid.UUID  `json:"id"`
	IssueID   uuid.UUID  `json:"issue_id"`
	AuthorID  *uuid.UUID `json:"author_id"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
}

func toCommentResponse(c *tracker.Comment) commentResponse {
	return commentResponse{ID: c.ID, IssueID: c.IssueID, AuthorID: c.AuthorID, Body: c.Body, CreatedAt: c.CreatedAt}
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	p, err := h.svc.CreateProject(r.Context(), acc.ID, req.Name, req.Description)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toProjectResponse(p))
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	acc := httpx.AccountFrom(r)

	projects, err := h.svc.ListProjects(r.Context(), acc.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	p, err := h.svc.GetProject(r.Context(), acc.ID, id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toProjectResponse(p))
}

func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req projectUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	p, err := h.svc.UpdateProject(r.Context(), acc.ID, id, tracker.ProjectUpdateParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toProjectResponse(p))
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	if err := h.svc.DeleteProject(r.Context(), acc.ID, id); err != nil {
		httpx.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createIssue(w http.ResponseWriter, r *http.Request) {
	var req issueCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	i, err := h.svc.CreateIssue(r.Context(), acc.ID, tracker.IssueCreateParams{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		Status:      req.Status,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toIssueResponse(i))
}

func (h *Handler) listIssues(w http.ResponseWriter, r *http.Request) {
	var projectID *uuid.UUID

	if raw := r.URL.Query().Get("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid project_id", http.StatusBadRequest)
			return
		}

		projectID = &id
	}

	acc := httpx.AccountFrom(r)

	issues, err := h.svc.ListIssues(r.Context(), acc.ID, projectID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	resp := make([]issueResponse, 0, len(issues))
	for _, i := range issues {
		resp = append(resp, toIssueResponse(i))
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) getIssue(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	i, err := h.svc.GetIssue(r.Context(), acc.ID, id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toIssueResponse(i))
}

func (h *Handler) updateIssue(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req issueUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := tracker.IssueUpdateParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}

	if len(req.AssigneeID) > 0 {
		if bytes.Equal(req.AssigneeID, []byte("null")) {
			params.ClearAssignee = true
		} else {
			var assigneeID uuid.UUID
			if err := json.Unmarshal(req.AssigneeID, &assigneeID); err != nil {
				http.Error(w, "invalid assignee_id", http.StatusBadRequest)
				return
			}

			params.AssigneeID = &assigneeID
		}
	}

	acc := httpx.AccountFrom(r)

	i, err := h.svc.UpdateIssue(r.Context(), acc.ID, id, params)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toIssueResponse(i))
}

func (h *Handler) deleteIssue(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	if err := h.svc.DeleteIssue(r.Context(), acc.ID, id); err != nil {
		httpx.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	issueID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	c, err := h.svc.CreateComment(r.Context(), acc.ID, issueID, req.Body)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toCommentResponse(c))
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	issueID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	comments, err := h.svc.ListComments(r.Context(), acc.ID, issueID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	resp := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		resp = append(resp, toCommentResponse(c))
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	if err := h.svc.DeleteComment(r.Context(), acc.ID, id); err != nil {
		httpx.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
