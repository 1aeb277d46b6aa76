package postgres

import (
	"github.com/frahmantamala/construction-backoffice/internal/feature"
	featureDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/feature"
	"gorm.io/gorm"
)

type FeatureRepository struct {
	db *gorm.DB
}

func NewFeatureRepository(db *gorm.DB) feature.RepositoryAPI {
	return &FeatureRepository{db: db}
}

func (r *FeatureRepository) GetAll() ([]*featureDatamodel.Feature, error) {
	var features []*featureDatamodel.Feature
	err := r.db.Order("code ASC").Find(&features).Error
	return features, err
}

func (r *FeatureRepository) GetByID(id int64) (*featureDatamodel.Feature, error) {
	var f featureDatamodel.Feature
	err := r.db.Where("id = ?", id).First(&f).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *FeatureRepository) GetByCode(code string) (*featureDatamodel.Feature, error) {
	var f featureDatamodel.Feature
	err := r.db.Where("code = ?", code).First(&f).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *FeatureRepository) Create(f *featureDatamodel.Feature) error {
	return r.db.Create(f).Error
}

func (r *FeatureRepository) Update(f *featureDatamodel.Feature) error {
	return r.db.Save(f).Error
}

func (r *FeatureRepository) Deactivate(id int64) error {
	return r.db.Model(&featureDatamodel.Feature{}).Where("id = ?", id).Update("is_active", false).Error
}
