package user

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/construction-backoffice/internal/authz"
	"github.com/frahmantamala/construction-backoffice/internal/transport"
	"github.com/frahmantamala/construction-backoffice/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetAll(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, userID int64) (*User, error)
	CreateUser(ctx context.Context, dto CreateUserDTO) (*User, error)
	UpdateUser(ctx context.Context, userID int64, dto UpdateUserDTO) (*User, error)
	DeactivateUser(ctx context.Context, userID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.GetByID(r.Context(), principal.UserID)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("failed to load current user", "user_id", principal.UserID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.Logger.Error("failed to list users", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.Service.GetByID(r.Context(), userID)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("failed to load user", "user_id", userID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.CreateUser(r.Context(), dto)
	if err != nil {
		switch {
		case err == ErrEmailTaken:
			h.WriteError(w, http.StatusConflict, "email already in use")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			h.Logger.Error("failed to create user", "error", err)
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.UpdateUser(r.Context(), userID, dto)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("failed to update user", "user_id", userID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.Service.DeactivateUser(r.Context(), userID); err != nil {
		h.Logger.Error("failed to deactivate user", "user_id", userID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
