package project

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/construction-backoffice/internal/transport"
	"github.com/frahmantamala/construction-backoffice/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetAll(ctx context.Context) ([]*Project, error)
	GetByID(ctx context.Context, id int64) (*Project, error)
	CreateProject(ctx context.Context, dto CreateProjectDTO) (*Project, error)
	UpdateProject(ctx context.Context, id int64, dto UpdateProjectDTO) (*Project, error)
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

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.Logger.Error("failed to list projects", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"projects": projects})
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	p, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "project not found")
			return
		}
		h.Logger.Error("failed to load project", "project_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var dto CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.CreateProject(r.Context(), dto)
	if err != nil {
		if err == ErrCodeTaken {
			h.WriteError(w, http.StatusConflict, "project code already in use")
			return
		}
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("failed to create project", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var dto UpdateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.UpdateProject(r.Context(), id, dto)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "project not found")
			return
		}
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("failed to update project", "project_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}
