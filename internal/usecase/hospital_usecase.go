package usecase

import (
	"context"

	"health-management/internal/domain/entity"
	"health-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// PlacesSearcher finds hospitals around a location.
type PlacesSearcher interface {
	NearbyHospitals(ctx context.Context, location entity.Location) ([]entity.Hospital, error)
}

type HospitalUsecase interface {
	List(ctx context.Context) ([]entity.Hospital, error)
	Nearby(ctx context.Context, location entity.Location) ([]entity.Hospital, error)
}

type hospitalUsecase struct {
	log          *logrus.Logger
	hospitalRepo repository.HospitalRepository
	places       PlacesSearcher
}

// NewHospitalUsecase accepts a nil places searcher, in which case nearby
// search returns the catalog only.
func NewHospitalUsecase(log *logrus.Logger, hospitalRepo repository.HospitalRepository, places PlacesSearcher) HospitalUsecase {
	return &hospitalUsecase{
		log:          log,
		hospitalRepo: hospitalRepo,
		places:       places,
	}
}

func (u *hospitalUsecase) List(ctx context.Context) ([]entity.Hospital, error) {
	hospitals, err := u.hospitalRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load hospital catalog: %+v", err)
		return nil, err
	}
	return hospitals, nil
}

// Nearby lists the bookable catalog first, followed by search results whose
// names are not already in the catalog. Search failures fall back to the
// catalog alone.
func (u *hospitalUsecase) Nearby(ctx context.Context, location entity.Location) ([]entity.Hospital, error) {
	hospitals, err := u.List(ctx)
	if err != nil {
		return nil, err
	}
	if u.places == nil {
		return hospitals, nil
	}

	found, err := u.places.NearbyHospitals(ctx, location)
	if err != nil {
		u.log.Warnf("Nearby hospital search failed, serving catalog only: %+v", err)
		return hospitals, nil
	}

	seen := make(map[string]struct{}, len(hospitals))
	for _, h := range hospitals {
		seen[h.Name] = struct{}{}
	}
	for _, h := range found {
		if _, ok := seen[h.Name]; ok {
			continue
		}
		seen[h.Name] = struct{}{}
		hospitals = append(hospitals, h)
	}
	return hospitals, nil
}
