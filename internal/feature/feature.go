package feature

import (
	featureDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/feature"
)

// Feature is an addressable unit of application functionality, gated
// independently of role.
type Feature struct {
	ID       int64
	Code     string
	Name     string
	Category string
	IsActive bool
}

func (f *Feature) IsActiveFeature() bool {
	return f.IsActive
}

func (f *Feature) ToResponse() FeatureResponse {
	return FeatureResponse{
		ID:       f.ID,
		Code:     f.Code,
		Name:     f.Name,
		Category: f.Category,
		IsActive: f.IsActive,
	}
}

func FromDataModel(f *featureDatamodel.Feature) *Feature {
	return &Feature{
		ID:       f.ID,
		Code:     f.Code,
		Name:     f.Name,
		Category: f.Category,
		IsActive: f.IsActive,
	}
}

func ToDataModel(f *Feature) *featureDatamodel.Feature {
	return &featureDatamodel.Feature{
		ID:       f.ID,
		Code:     f.Code,
		Name:     f.Name,
		Category: f.Category,
		IsActive: f.IsActive,
	}
}
