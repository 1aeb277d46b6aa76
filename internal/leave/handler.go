package leave

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
	GetBalances(ctx context.Context, userID int64) ([]*Balance, error)
	GetBalance(ctx context.Context, userID int64, year int) (*Balance, error)
	SaveBalance(ctx context.Context, dto SaveBalanceDTO) (*Balance, error)
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

// GetUserBalances handles GET /users/{id}/leave-balances. The owner may read
// their own rows; anyone else needs admin.
func (h *Handler) GetUserBalances(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if principal.UserID != userID && !principal.IsAdmin() {
		h.WriteError(w, http.StatusForbidden, "forbidden")
		return
	}

	balances, err := h.Service.GetBalances(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to list leave balances", "user_id", userID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"balances": balances})
}

// SaveBalance handles PUT /leave-balances, admin only via the router guard.
func (h *Handler) SaveBalance(w http.ResponseWriter, r *http.Request) {
	var dto SaveBalanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	balance, err := h.Service.SaveBalance(r.Context(), dto)
	if err != nil {
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("failed to save leave balance", "user_id", dto.UserID, "year", dto.Year, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, balance)
}
