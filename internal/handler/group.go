package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/middleware"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/service"
)

// GroupHandler handles the group endpoints. Handlers only move data: the
// token travels to the service layer, which resolves it and enforces
// ownership.
type GroupHandler struct {
	groups *service.GroupService
}

// NewGroupHandler creates a new group handler.
func NewGroupHandler(groups *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// Create handles POST /api/groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.GroupRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewInvalidArgument("invalid request body"))
		return
	}

	group, err := h.groups.Create(r.Context(), middleware.GetToken(r.Context()), req)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, group)
}

// List handles GET /api/groups.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	result, err := h.groups.List(r.Context(), middleware.GetToken(r.Context()), q.Get("limit"), q.Get("page"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// Get handles GET /api/groups/{groupID}.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	details, err := h.groups.Details(r.Context(), middleware.GetToken(r.Context()),
		chi.URLParam(r, "groupID"), q.Get("limit"), q.Get("page"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, details)
}

// Update handles PUT /api/groups/{groupID}.
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.GroupRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewInvalidArgument("invalid request body"))
		return
	}

	group, err := h.groups.Update(r.Context(), middleware.GetToken(r.Context()),
		chi.URLParam(r, "groupID"), req)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, group)
}

// Delete handles DELETE /api/groups/{groupID}.
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.groups.Delete(r.Context(), middleware.GetToken(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteNoContent(w)
}

// AddMovie handles PUT /api/groups/{groupID}/movies/{movieID}.
func (h *GroupHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.groups.AddMovie(r.Context(), middleware.GetToken(r.Context()),
		chi.URLParam(r, "groupID"), chi.URLParam(r, "movieID"))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, movie)
}

// RemoveMovie handles DELETE /api/groups/{groupID}/movies/{movieID}.
func (h *GroupHandler) RemoveMovie(w http.ResponseWriter, r *http.Request) {
	err := h.groups.RemoveMovie(r.Context(), middleware.GetToken(r.Context()),
		chi.URLParam(r, "groupID"), chi.URLParam(r, "movieID"))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteNoContent(w)
}
