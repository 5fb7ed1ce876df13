package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAppointmentDetailsRequest_HistoryKeys(t *testing.T) {
	var req UpdateAppointmentDetailsRequest
	require.NoError(t, json.Unmarshal([]byte(`{"medicalHistory":"diabetes","medicineHistory":"metformin","symptoms":"cough"}`), &req))
	require.NotNil(t, req.MedicalHistory)
	require.NotNil(t, req.MedicineHistory)
	assert.Equal(t, "diabetes", *req.MedicalHistory)
	assert.Equal(t, "metformin", *req.MedicineHistory)
	assert.Equal(t, "cough", *req.Symptoms)
	assert.Nil(t, req.Allergies)

	req = UpdateAppointmentDetailsRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"medical_history":"snake","medicalHistory":"camel"}`), &req))
	assert.Equal(t, "snake", *req.MedicalHistory)
	assert.Nil(t, req.MedicineHistory)
}

func TestCreateAppointmentRequest_HistoryKeys(t *testing.T) {
	var req CreateAppointmentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"patient_id":"p1","medicalHistory":"asthma","medicine_history":"inhaler"}`), &req))
	assert.Equal(t, "p1", req.PatientID)
	assert.Equal(t, "asthma", req.MedicalHistory)
	assert.Equal(t, "inhaler", req.MedicineHistory)

	assert.Error(t, json.Unmarshal([]byte(`{"patient_id":`), &req))
}
