package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"health-management/config"
	"health-management/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearcher_NearbyHospitals(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/place/nearbysearch/json", r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{
			"location": q.Get("location"),
			"radius":   q.Get("radius"),
			"keyword":  q.Get("keyword"),
			"key":      q.Get("key"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"place_id": "abc",
				"name": "City Hospital",
				"vicinity": "1 Main St",
				"rating": 4.5,
				"user_ratings_total": 120,
				"geometry": {"location": {"lat": 28.5, "lng": 77.2}}
			}]
		}`))
	}))
	defer srv.Close()

	searcher, err := NewSearcher(config.PlacesConfig{APIKey: "key", BaseURL: srv.URL, Radius: 2000})
	require.NoError(t, err)

	hospitals, err := searcher.NearbyHospitals(context.Background(), entity.Location{Latitude: 28.5, Longitude: 77.2})
	require.NoError(t, err)
	require.Len(t, hospitals, 1)

	assert.Equal(t, "City Hospital", hospitals[0].Name)
	assert.Equal(t, "abc", hospitals[0].PlaceID)
	assert.Equal(t, 4.5, hospitals[0].Rating)
	assert.Equal(t, 120, hospitals[0].UserRatingsTotal)
	assert.Equal(t, "2000", gotQuery["radius"])
	assert.Equal(t, "hospital", gotQuery["keyword"])
	assert.Equal(t, "key", gotQuery["key"])
}

func TestNewSearcher_NotConfigured(t *testing.T) {
	_, err := NewSearcher(config.PlacesConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
