package purchase

import (
	"errors"
	"time"
)

// CreateRequestDTO is the submission payload.
type CreateRequestDTO struct {
	ProjectID   *int64    `json:"project_id,omitempty"`
	AmountIDR   int64     `json:"amount_idr"`
	Description string    `json:"description"`
	Vendor      string    `json:"vendor,omitempty"`
	NeededBy    time.Time `json:"needed_by"`
}

func (dto CreateRequestDTO) Validate() error {
	if dto.AmountIDR <= 0 {
		return errors.New("amount must be greater than 0")
	}
	if dto.Description == "" {
		return errors.New("description is required")
	}
	if len(dto.Description) > 500 {
		return errors.New("description must be less than 500 characters")
	}
	if dto.NeededBy.IsZero() {
		return errors.New("needed_by date is required")
	}
	return nil
}

// RejectRequestDTO carries the rejection reason.
type RejectRequestDTO struct {
	Reason string `json:"reason"`
}

func (dto RejectRequestDTO) Validate() error {
	if dto.Reason == "" {
		return errors.New("reason is required when rejecting a purchase request")
	}
	return nil
}
