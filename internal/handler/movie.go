package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/service"
)

// MovieHandler handles the public catalog endpoints.
type MovieHandler struct {
	movies *service.MovieService
}

// NewMovieHandler creates a new movie handler.
func NewMovieHandler(movies *service.MovieService) *MovieHandler {
	return &MovieHandler{movies: movies}
}

// List handles GET /api/movies. A name query parameter switches from the
// popular listing to a title search.
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, page := q.Get("limit"), q.Get("page")

	if name := q.Get("name"); name != "" {
		result, err := h.movies.Search(r.Context(), name, limit, page)
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, result)
		return
	}

	result, err := h.movies.Popular(r.Context(), limit, page)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// Get handles GET /api/movies/{movieID}.
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	details, err := h.movies.Details(r.Context(), chi.URLParam(r, "movieID"))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, details)
}
