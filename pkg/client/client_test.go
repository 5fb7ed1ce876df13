package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"health-management/internal/delivery/dto"
	"health-management/internal/domain/entity"
	"health-management/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": status < 300,
		"message": message,
		"data":    data,
	})
}

func TestClient_ListByPatient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/appointments/user/p1", r.URL.Path)
		assert.Equal(t, "scheduled", r.URL.Query().Get("status"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, "Appointments retrieved successfully", []dto.AppointmentResponse{
			{ID: "a1", PatientID: "p1", Status: "scheduled"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/v1", WithTokenSource(func() string { return "tok" }))
	appointments, err := c.ListByPatient(context.Background(), "p1", "scheduled")

	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "a1", appointments[0].ID)
}

func TestClient_DefaultsStatusToAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all", r.URL.Query().Get("status"))
		writeEnvelope(w, http.StatusOK, "ok", []dto.AppointmentResponse{})
	}))
	defer srv.Close()

	appointments, err := New(srv.URL).ListByDoctor(context.Background(), "doc@example.com", "")
	require.NoError(t, err)
	assert.Empty(t, appointments)
}

func TestClient_ErrorUsesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, "Appointment not found", nil)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetAppointment(context.Background(), "missing")

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Equal(t, "Appointment not found", reqErr.Message)
	assert.True(t, reqErr.IsNotFound())
}

func TestClient_ErrorFallsBackToOperationMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL).DeleteAppointment(context.Background(), "a1")

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "Failed to delete appointment", reqErr.Message)
}

func TestClient_HTMLResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>Cannot GET</body></html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListByPatient(context.Background(), "p1", "all")

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, htmlResponseMessage, reqErr.Message)
}

func TestClient_ValidationFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Missing required fields","error":{"patient_id":"patient_id is required"}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateAppointment(context.Background(), CreateAppointmentRequest{})

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "Missing required fields", reqErr.Message)
	assert.Equal(t, "patient_id is required", reqErr.Fields["patient_id"])
}

func TestVideoSession_FetchesOnce(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			writeEnvelope(w, http.StatusInternalServerError, "Failed to generate token", nil)
			return
		}
		assert.Equal(t, "room1", r.URL.Query().Get("room"))
		writeEnvelope(w, http.StatusOK, "ok", dto.RoomTokenResponse{Token: "video-token"})
	}))
	defer srv.Close()

	session := New(srv.URL).NewVideoSession("alice", "room1")

	_, err := session.Token(context.Background())
	require.Error(t, err)

	for i := 0; i < 3; i++ {
		token, err := session.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "video-token", token)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestNewRoomCode(t *testing.T) {
	code := NewRoomCode()
	assert.Len(t, code, 9)
	assert.Regexp(t, `^[0-9a-z]{9}$`, code)
	assert.NotEqual(t, code, NewRoomCode())
}

func TestRoomCodeFrom_SkipsBiasedBytes(t *testing.T) {
	assert.Equal(t, 252, roomCodeByteLimit)

	src := []byte{255, 252, 0, 35, 36, 71, 251, 254, 1, 2, 3, 4, 9, 9, 9, 9, 9, 9}
	code, err := roomCodeFrom(bytes.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "0z0zz1234", code)

	allRejected := bytes.Repeat([]byte{253}, roomCodeLength*2)
	tail := []byte{10, 11, 12, 13, 14, 15, 16, 17, 18, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	code, err = roomCodeFrom(bytes.NewReader(append(allRejected, tail...)))
	require.NoError(t, err)
	assert.Equal(t, "abcdefghi", code)

	_, err = roomCodeFrom(bytes.NewReader([]byte{255}))
	assert.Error(t, err)
}

func TestClient_WaitForDiagnosis(t *testing.T) {
	var polls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/diagnosis/job1", r.URL.Path)
		status := "pending"
		if atomic.AddInt32(&polls, 1) >= 3 {
			status = "completed"
		}
		writeEnvelope(w, http.StatusOK, "ok", dto.DiagnosisJobResponse{ID: "job1", Status: status})
	}))
	defer srv.Close()

	policy := retry.Policy{MaxAttempts: 5, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
	job, err := New(srv.URL).WaitForDiagnosis(context.Background(), "job1", policy)

	require.NoError(t, err)
	assert.Equal(t, "completed", job.Status)
	assert.Equal(t, int32(3), atomic.LoadInt32(&polls))
}

func TestClient_WaitForDiagnosis_GivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "ok", dto.DiagnosisJobResponse{ID: "job1", Status: "pending"})
	}))
	defer srv.Close()

	policy := retry.Policy{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 2}
	_, err := New(srv.URL).WaitForDiagnosis(context.Background(), "job1", policy)

	assert.ErrorIs(t, err, ErrDiagnosisPending)
	assert.ErrorIs(t, err, retry.ErrAttemptsExhausted)
}

func TestClient_WaitForDiagnosis_Failed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "ok", dto.DiagnosisJobResponse{ID: "job1", Status: "failed", Error: "model request failed"})
	}))
	defer srv.Close()

	job, err := New(srv.URL).WaitForDiagnosis(context.Background(), "job1", retry.DefaultPolicy)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model request failed")
	assert.Equal(t, "failed", job.Status)
}

func TestClient_WaitForDiagnosis_DoesNotRetryRequestErrors(t *testing.T) {
	var polls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&polls, 1)
		writeEnvelope(w, http.StatusNotFound, "Diagnosis job not found", nil)
	}))
	defer srv.Close()

	_, err := New(srv.URL).WaitForDiagnosis(context.Background(), "job1", retry.DefaultPolicy)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, int32(1), atomic.LoadInt32(&polls))
}

func TestClient_TypesMatchServerWire(t *testing.T) {
	created := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/appointments":
			var req dto.CreateAppointmentRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "p1", req.PatientID)
			assert.Equal(t, "10:00 AM - 11:00 AM", req.TimeSlot)
			assert.Equal(t, "asthma", req.MedicalHistory)
			writeEnvelope(w, http.StatusCreated, "ok", dto.AppointmentResponse{
				ID: "a1", PatientID: req.PatientID, TimeSlot: req.TimeSlot, Status: "scheduled",
				MedicalHistory: req.MedicalHistory, CreatedAt: created,
			})
		case "/appointments/a1/details":
			var req dto.UpdateAppointmentDetailsRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if !assert.NotNil(t, req.MedicineHistory) {
				return
			}
			assert.Equal(t, "metformin", *req.MedicineHistory)
			assert.Nil(t, req.Symptoms)
			writeEnvelope(w, http.StatusOK, "ok", dto.AppointmentResponse{ID: "a1", MedicineHistory: *req.MedicineHistory})
		case "/diagnosis":
			var req dto.DiagnosisRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "cough", req.Symptoms)
			assert.Equal(t, "penicillin", req.Allergies)
			writeEnvelope(w, http.StatusAccepted, "ok", dto.DiagnosisJobResponse{
				ID: "job1", Kind: "diagnosis", Status: "completed",
				Result: &entity.DiagnosisResult{
					Result: entity.DiagnosisBody{Analysis: &entity.Analysis{
						PossibleConditions: []entity.PossibleCondition{{Condition: "Bronchitis", RiskLevel: "medium"}},
					}},
					Disclaimer: "not medical advice",
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	appointment, err := c.CreateAppointment(ctx, CreateAppointmentRequest{
		PatientID: "p1", TimeSlot: "10:00 AM - 11:00 AM", MedicalHistory: "asthma",
	})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", appointment.Status)
	assert.Equal(t, "asthma", appointment.MedicalHistory)
	assert.True(t, created.Equal(appointment.CreatedAt))

	medicine := "metformin"
	appointment, err = c.UpdateAppointmentDetails(ctx, "a1", AppointmentDetails{MedicineHistory: &medicine})
	require.NoError(t, err)
	assert.Equal(t, "metformin", appointment.MedicineHistory)

	job, err := c.SubmitDiagnosis(ctx, DiagnosisRequest{Symptoms: "cough", Allergies: "penicillin"})
	require.NoError(t, err)
	assert.Equal(t, DiagnosisCompleted, job.Status)
	require.NotNil(t, job.Result)
	require.NotNil(t, job.Result.Result.Analysis)
	assert.Equal(t, "Bronchitis", job.Result.Result.Analysis.PossibleConditions[0].Condition)
	assert.Equal(t, "not medical advice", job.Result.Disclaimer)
}
