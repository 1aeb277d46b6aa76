package purchase

import (
	"errors"
	"time"

	purchaseDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/purchase"
)

// Request is a purchase request raised against a project budget. Requests
// start pending and are approved or rejected by a holder of the purchasing
// approval feature.
type Request struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	ProjectID   *int64     `json:"project_id,omitempty"`
	AmountIDR   int64      `json:"amount_idr"`
	Description string     `json:"description"`
	Vendor      string     `json:"vendor,omitempty"`
	Status      string     `json:"status"`
	NeededBy    time.Time  `json:"needed_by"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

const (
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
)

// Feature codes gating the approval workflow.
const (
	FeatureApprove = "purchasing.approve"
	FeatureViewAll = "purchasing.view_all"
	FeatureSubmit  = "purchasing.submit"
)

var (
	ErrRequestNotFound    = errors.New("purchase request not found")
	ErrUnauthorizedAccess = errors.New("unauthorized access to purchase request")
	ErrInvalidStatus      = errors.New("invalid purchase request status for this operation")
)

func (r *Request) CanBeProcessed() bool {
	return r.Status == StatusPendingApproval
}

func ToDataModel(r *Request) *purchaseDatamodel.PurchaseRequest {
	return &purchaseDatamodel.PurchaseRequest{
		ID:          r.ID,
		UserID:      r.UserID,
		ProjectID:   r.ProjectID,
		AmountIDR:   r.AmountIDR,
		Description: r.Description,
		Vendor:      r.Vendor,
		Status:      r.Status,
		NeededBy:    r.NeededBy,
		SubmittedAt: r.SubmittedAt,
		ProcessedAt: r.ProcessedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func FromDataModel(r *purchaseDatamodel.PurchaseRequest) *Request {
	return &Request{
		ID:          r.ID,
		UserID:      r.UserID,
		ProjectID:   r.ProjectID,
		AmountIDR:   r.AmountIDR,
		Description: r.Description,
		Vendor:      r.Vendor,
		Status:      r.Status,
		NeededBy:    r.NeededBy,
		SubmittedAt: r.SubmittedAt,
		ProcessedAt: r.ProcessedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*purchaseDatamodel.PurchaseRequest) []*Request {
	result := make([]*Request, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
