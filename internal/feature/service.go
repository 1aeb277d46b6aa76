package feature

import (
	"log/slog"

	featureDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/feature"
)

type RepositoryAPI interface {
	GetAll() ([]*featureDatamodel.Feature, error)
	GetByID(id int64) (*featureDatamodel.Feature, error)
	GetByCode(code string) (*featureDatamodel.Feature, error)
	Create(feature *featureDatamodel.Feature) error
	Update(feature *featureDatamodel.Feature) error
	Deactivate(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetActiveFeatures returns the catalog entries the editors and the resolver
// operate on; deactivated features are hidden.
func (s *Service) GetActiveFeatures() ([]FeatureResponse, error) {
	dataFeatures, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get features from repository", "error", err)
		return nil, err
	}

	var responses []FeatureResponse
	for _, dataFeature := range dataFeatures {
		domainFeature := FromDataModel(dataFeature)
		if domainFeature.IsActiveFeature() {
			responses = append(responses, domainFeature.ToResponse())
		}
	}

	s.logger.Info("retrieved active features", "count", len(responses))
	return responses, nil
}

// GetAllFeatures returns everything, inactive included, for the admin catalog
// screen.
func (s *Service) GetAllFeatures() ([]FeatureResponse, error) {
	dataFeatures, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get features from repository", "error", err)
		return nil, err
	}

	responses := make([]FeatureResponse, 0, len(dataFeatures))
	for _, dataFeature := range dataFeatures {
		responses = append(responses, FromDataModel(dataFeature).ToResponse())
	}
	return responses, nil
}

func (s *Service) CreateFeature(dto CreateFeatureDTO) (*FeatureResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByCode(dto.Code)
	if err != nil {
		s.logger.Error("failed to check feature code uniqueness", "code", dto.Code, "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, ValidationError{Msg: "feature code already exists: " + dto.Code}
	}

	dataFeature := &featureDatamodel.Feature{
		Code:     dto.Code,
		Name:     dto.Name,
		Category: dto.Category,
		IsActive: true,
	}
	if err := s.repo.Create(dataFeature); err != nil {
		s.logger.Error("failed to create feature", "code", dto.Code, "error", err)
		return nil, err
	}

	response := FromDataModel(dataFeature).ToResponse()
	s.logger.Info("feature created", "code", dto.Code, "id", dataFeature.ID)
	return &response, nil
}

func (s *Service) UpdateFeature(id int64, dto UpdateFeatureDTO) (*FeatureResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dataFeature, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load feature", "id", id, "error", err)
		return nil, err
	}
	if dataFeature == nil {
		return nil, nil
	}

	if dto.Name != nil {
		dataFeature.Name = *dto.Name
	}
	if dto.Category != nil {
		dataFeature.Category = *dto.Category
	}
	if dto.IsActive != nil {
		dataFeature.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(dataFeature); err != nil {
		s.logger.Error("failed to update feature", "id", id, "error", err)
		return nil, err
	}

	response := FromDataModel(dataFeature).ToResponse()
	return &response, nil
}

// DeactivateFeature soft-deletes: the code stays reserved and historical
// grants keep their rows, but the resolver stops granting it.
func (s *Service) DeactivateFeature(id int64) error {
	if err := s.repo.Deactivate(id); err != nil {
		s.logger.Error("failed to deactivate feature", "id", id, "error", err)
		return err
	}
	s.logger.Info("feature deactivated", "id", id)
	return nil
}
