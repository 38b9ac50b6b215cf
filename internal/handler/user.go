package handler

import (
	"net/http"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/service"
)

// UserHandler handles registration and login endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// userResponse never carries the password hash out of the process.
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email, Token: u.Token}
}

// Register handles POST /api/users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewInvalidArgument("invalid request body"))
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// Login handles POST /api/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewInvalidArgument("invalid request body"))
		return
	}

	user, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, toUserResponse(user))
}
