package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"health-management/pkg/retry"
)

// ErrDiagnosisPending is returned by WaitForDiagnosis when the attempt budget
// runs out before the job finishes.
var ErrDiagnosisPending = errors.New("diagnosis still pending")

func (c *Client) SubmitDiagnosis(ctx context.Context, req DiagnosisRequest) (*DiagnosisJob, error) {
	var job DiagnosisJob
	if _, err := c.do(ctx, http.MethodPost, "/diagnosis", nil, req, &job, "Failed to get diagnosis"); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) SubmitRecommendation(ctx context.Context, req RecommendationRequest) (*DiagnosisJob, error) {
	var job DiagnosisJob
	if _, err := c.do(ctx, http.MethodPost, "/recommendations", nil, req, &job, "Failed to get recommendations"); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) GetDiagnosis(ctx context.Context, id string) (*DiagnosisJob, error) {
	var job DiagnosisJob
	if _, err := c.do(ctx, http.MethodGet, "/diagnosis/"+url.PathEscape(id), nil, nil, &job, "Failed to fetch diagnosis"); err != nil {
		return nil, err
	}
	return &job, nil
}

// WaitForDiagnosis polls until the job completes or fails, under a bounded
// attempt budget with exponential backoff. Cancelling ctx stops polling. A
// failed job is returned together with an error carrying its message.
func (c *Client) WaitForDiagnosis(ctx context.Context, id string, policy retry.Policy) (*DiagnosisJob, error) {
	var job *DiagnosisJob
	err := retry.Do(ctx, policy, func(err error) bool {
		return errors.Is(err, ErrDiagnosisPending)
	}, func(ctx context.Context, attempt int) error {
		current, err := c.GetDiagnosis(ctx, id)
		if err != nil {
			return err
		}
		job = current
		if current.Status == DiagnosisPending {
			return ErrDiagnosisPending
		}
		return nil
	})
	if err != nil {
		return job, err
	}

	if job.Status == DiagnosisFailed {
		return job, fmt.Errorf("diagnosis failed: %s", job.Error)
	}
	return job, nil
}

func (c *Client) Hospitals(ctx context.Context) ([]Hospital, error) {
	hospitals := []Hospital{}
	if _, err := c.do(ctx, http.MethodGet, "/hospitals", nil, nil, &hospitals, "Failed to fetch hospitals"); err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (c *Client) NearbyHospitals(ctx context.Context, location Location) ([]Hospital, error) {
	hospitals := []Hospital{}
	query := url.Values{
		"lat": []string{strconv.FormatFloat(location.Latitude, 'f', -1, 64)},
		"lng": []string{strconv.FormatFloat(location.Longitude, 'f', -1, 64)},
	}
	if _, err := c.do(ctx, http.MethodGet, "/hospitals/nearby", query, nil, &hospitals, "Failed to fetch nearby hospitals"); err != nil {
		return nil, err
	}
	return hospitals, nil
}

// Logout revokes the current bearer token on the server.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil, "Failed to logout")
	return err
}
