package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/construction-backoffice/internal/authz"
	"github.com/frahmantamala/construction-backoffice/internal/transport"
	"github.com/frahmantamala/construction-backoffice/pkg/logger"
)

// SessionAPI is the slice of the session manager the middleware needs:
// resolve a permission snapshot for the authenticated user and drop it on
// sign-out.
type SessionAPI interface {
	Snapshot(ctx context.Context, userID int64) *authz.Snapshot
	Invalidate(userID int64)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Sessions SessionAPI
}

func NewHandler(svc ServiceAPI, sessions SessionAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Sessions:    sessions,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)

		switch err {
		case ErrInvalidCredentials:
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		case ErrUserInactive:
			h.WriteError(w, http.StatusUnauthorized, "user is inactive")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)

		switch err {
		case ErrInvalidToken, ErrTokenExpired:
			h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		case ErrUserInactive:
			h.WriteError(w, http.StatusUnauthorized, "user is inactive")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	claims, err := h.Service.ValidateAccessToken(token)
	if err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	if userID, perr := strconv.ParseInt(claims.UserID, 10, 64); perr == nil {
		h.Sessions.Invalidate(userID)
	}

	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware validates the bearer token and places the caller's
// Principal, snapshot included, into the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Error("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		userID, err := strconv.ParseInt(claims.UserID, 10, 64)
		if err != nil {
			h.Logger.Warn("failed to parse user id from token claims", "value", claims.UserID, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		principal := &authz.Principal{
			UserID:   userID,
			Email:    claims.Email,
			Snapshot: h.Sessions.Snapshot(r.Context(), userID),
		}

		ctx := authz.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
