package feature

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/construction-backoffice/internal/transport"
	"github.com/frahmantamala/construction-backoffice/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetActiveFeatures() ([]FeatureResponse, error)
	GetAllFeatures() ([]FeatureResponse, error)
	CreateFeature(dto CreateFeatureDTO) (*FeatureResponse, error)
	UpdateFeature(id int64, dto UpdateFeatureDTO) (*FeatureResponse, error)
	DeactivateFeature(id int64) error
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

// GetFeatures handles GET /features, the active catalog consumed by the
// editors and by clients deciding what to render.
func (h *Handler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := h.Service.GetActiveFeatures()
	if err != nil {
		h.WriteError(w, http.StatusServiceUnavailable, "failed to load features")
		return
	}

	if features == nil {
		features = []FeatureResponse{}
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"features": features})
}

// GetAllFeatures handles GET /admin/features, inactive entries included.
func (h *Handler) GetAllFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := h.Service.GetAllFeatures()
	if err != nil {
		h.WriteError(w, http.StatusServiceUnavailable, "failed to load features")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"features": features})
}

func (h *Handler) CreateFeature(w http.ResponseWriter, r *http.Request) {
	var dto CreateFeatureDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateFeature(dto)
	if err != nil {
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.WriteError(w, http.StatusServiceUnavailable, "failed to create feature")
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateFeature(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid feature id")
		return
	}

	var dto UpdateFeatureDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateFeature(id, dto)
	if err != nil {
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.WriteError(w, http.StatusServiceUnavailable, "failed to update feature")
		return
	}
	if updated == nil {
		h.WriteError(w, http.StatusNotFound, "feature not found")
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeactivateFeature(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid feature id")
		return
	}

	if err := h.Service.DeactivateFeature(id); err != nil {
		h.WriteError(w, http.StatusServiceUnavailable, "failed to deactivate feature")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
