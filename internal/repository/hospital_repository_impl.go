package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"health-management/internal/domain/entity"
	domainRepo "health-management/internal/domain/repository"
)

//go:embed catalog/hospitals.json
var defaultCatalog []byte

// hospitalRepository serves a read-only hospital catalog loaded once at startup.
type hospitalRepository struct {
	hospitals []entity.Hospital
}

// NewHospitalRepository loads the catalog from path, or the embedded catalog
// when path is empty.
func NewHospitalRepository(path string) (domainRepo.HospitalRepository, error) {
	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read hospital catalog: %w", err)
		}
		data = raw
	}

	var hospitals []entity.Hospital
	if err := json.Unmarshal(data, &hospitals); err != nil {
		return nil, fmt.Errorf("parse hospital catalog: %w", err)
	}
	return &hospitalRepository{hospitals: hospitals}, nil
}

func (r *hospitalRepository) FindAll(ctx context.Context) ([]entity.Hospital, error) {
	hospitals := make([]entity.Hospital, len(r.hospitals))
	copy(hospitals, r.hospitals)
	return hospitals, nil
}
