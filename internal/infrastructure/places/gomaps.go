package places

import (
	"context"
	"errors"
	"fmt"

	"health-management/config"
	"health-management/internal/domain/entity"

	"googlemaps.github.io/maps"
)

var ErrNotConfigured = errors.New("PLACES_API_KEY is not configured")

// Searcher looks up hospitals through a Google Places compatible API.
type Searcher struct {
	client *maps.Client
	radius uint
}

// NewSearcher returns nil and ErrNotConfigured when no API key is set.
func NewSearcher(cfg config.PlacesConfig) (*Searcher, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	opts := []maps.ClientOption{maps.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create places client: %w", err)
	}

	radius := cfg.Radius
	if radius == 0 {
		radius = 5000
	}
	return &Searcher{client: client, radius: radius}, nil
}

func (s *Searcher) NearbyHospitals(ctx context.Context, location entity.Location) ([]entity.Hospital, error) {
	resp, err := s.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: location.Latitude, Lng: location.Longitude},
		Radius:   s.radius,
		Keyword:  "hospital",
		Type:     maps.PlaceTypeHospital,
	})
	if err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	hospitals := make([]entity.Hospital, 0, len(resp.Results))
	for _, r := range resp.Results {
		hospitals = append(hospitals, entity.Hospital{
			PlaceID:          r.PlaceID,
			Name:             r.Name,
			Vicinity:         r.Vicinity,
			Rating:           float64(r.Rating),
			UserRatingsTotal: r.UserRatingsTotal,
			Latitude:         r.Geometry.Location.Lat,
			Longitude:        r.Geometry.Location.Lng,
		})
	}
	return hospitals, nil
}
