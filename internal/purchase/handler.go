package purchase

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
	SubmitRequest(ctx context.Context, principal *authz.Principal, dto CreateRequestDTO) (*Request, error)
	GetRequestByID(ctx context.Context, principal *authz.Principal, id int64) (*Request, error)
	ListRequests(ctx context.Context, principal *authz.Principal, limit, offset int) ([]*Request, error)
	ApproveRequest(ctx context.Context, principal *authz.Principal, id int64) error
	RejectRequest(ctx context.Context, principal *authz.Principal, id int64, dto RejectRequestDTO) error
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

func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.Service.SubmitRequest(r.Context(), principal, dto)
	if err != nil {
		if err == ErrUnauthorizedAccess {
			h.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.WriteJSON(w, http.StatusCreated, request)
}

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	requests, err := h.Service.ListRequests(r.Context(), principal, limit, offset)
	if err != nil {
		h.Logger.Error("failed to list purchase requests", "user_id", principal.UserID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if requests == nil {
		requests = []*Request{}
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"purchase_requests": requests})
}

func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	request, err := h.Service.GetRequestByID(r.Context(), principal, id)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, request)
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	if err := h.Service.ApproveRequest(r.Context(), principal, id); err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": StatusApproved})
}

func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var dto RejectRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.RejectRequest(r.Context(), principal, id, dto); err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": StatusRejected})
}

func (h *Handler) writeWorkflowError(w http.ResponseWriter, err error) {
	switch err {
	case ErrRequestNotFound:
		h.WriteError(w, http.StatusNotFound, "purchase request not found")
	case ErrUnauthorizedAccess:
		h.WriteError(w, http.StatusForbidden, "forbidden")
	case ErrInvalidStatus:
		h.WriteError(w, http.StatusConflict, "purchase request already processed")
	default:
		h.WriteError(w, http.StatusBadRequest, err.Error())
	}
}
