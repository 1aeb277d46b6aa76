package authz

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/construction-backoffice/internal"
	"github.com/frahmantamala/construction-backoffice/internal/transport"
	"github.com/frahmantamala/construction-backoffice/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetMatrix(ctx context.Context) ([]MatrixEntry, error)
	SaveMatrix(ctx context.Context, dto SaveMatrixDTO) error
	GetUserVisibility(ctx context.Context, userID int64) ([]string, error)
	SaveUserVisibility(ctx context.Context, userID int64, dto SaveVisibilityDTO) error
	GetProjectAccess(ctx context.Context, projectID int64) ([]int64, error)
	SaveProjectAccess(ctx context.Context, projectID int64, dto SaveProjectAccessDTO) error
}

type SessionAPI interface {
	Snapshot(ctx context.Context, userID int64) *Snapshot
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

// GetMyPermissions handles GET /permissions/me, the only query the screen
// gating logic uses.
func (h *Handler) GetMyPermissions(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	snapshot := h.Sessions.Snapshot(r.Context(), principal.UserID)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":  snapshot.UserID,
		"is_admin": snapshot.IsAdmin,
		"features": snapshot.FeatureCodes(),
	})
}

func (h *Handler) GetMatrix(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.GetMatrix(r.Context())
	if err != nil {
		h.WriteError(w, http.StatusServiceUnavailable, "failed to load role permission matrix")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (h *Handler) SaveMatrix(w http.ResponseWriter, r *http.Request) {
	var dto SaveMatrixDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.SaveMatrix(r.Context(), dto); err != nil {
		h.writeServiceError(w, err, "failed to save role permission matrix")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetUserVisibility(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	codes, err := h.Service.GetUserVisibility(r.Context(), userID)
	if err != nil {
		h.WriteError(w, http.StatusServiceUnavailable, "failed to load user visibility")
		return
	}

	if codes == nil {
		codes = []string{}
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":       userID,
		"feature_codes": codes,
	})
}

func (h *Handler) SaveUserVisibility(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto SaveVisibilityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.SaveUserVisibility(r.Context(), userID, dto); err != nil {
		h.writeServiceError(w, err, "failed to save user visibility")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetProjectAccess(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	userIDs, err := h.Service.GetProjectAccess(r.Context(), projectID)
	if err != nil {
		h.WriteError(w, http.StatusServiceUnavailable, "failed to load project access")
		return
	}

	if userIDs == nil {
		userIDs = []int64{}
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"project_id": projectID,
		"user_ids":   userIDs,
	})
}

func (h *Handler) SaveProjectAccess(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var dto SaveProjectAccessDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.SaveProjectAccess(r.Context(), projectID, dto); err != nil {
		h.writeServiceError(w, err, "failed to save project access")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if _, ok := err.(ValidationError); ok {
		h.WriteAppError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
		return
	}
	h.Logger.Error(fallback, "error", err)
	h.WriteAppError(w, internal.NewUnavailableError(fallback, err))
}

func pathID(r *http.Request, param string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, param), 10, 64)
}
