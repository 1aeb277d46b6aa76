package notification

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/construction-backoffice/internal/authz"
	"github.com/frahmantamala/construction-backoffice/internal/transport"
	"github.com/frahmantamala/construction-backoffice/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetForUser(ctx context.Context, userID int64, unreadOnly bool) ([]*Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
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

// ListNotifications handles GET /notifications?unread=true for the caller.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.Service.GetForUser(r.Context(), principal.UserID, unreadOnly)
	if err != nil {
		h.Logger.Error("failed to list notifications", "user_id", principal.UserID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if notifications == nil {
		notifications = []*Notification{}
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

// MarkRead handles POST /notifications/{id}/read.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.Service.MarkRead(r.Context(), principal.UserID, id); err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "notification not found")
			return
		}
		h.Logger.Error("failed to mark notification read", "notification_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
