package dto

import (
	"time"

	"health-management/internal/domain/entity"
)

// Request DTOs

type DiagnosisRequest struct {
	Symptoms           string  `json:"symptoms" validate:"required"`
	Age                int     `json:"age" validate:"gte=0,lte=150"`
	Gender             string  `json:"gender"`
	Height             float64 `json:"height" validate:"gte=0"`
	Weight             float64 `json:"weight" validate:"gte=0"`
	MedicalHistory     string  `json:"medical_history"`
	CurrentMedications string  `json:"current_medications"`
	Allergies          string  `json:"allergies"`
	Smoking            bool    `json:"smoking"`
	Alcohol            string  `json:"alcohol"`
	Exercise           string  `json:"exercise"`
	Diet               string  `json:"diet"`
}

type RecommendationRequest struct {
	Age               int      `json:"age" validate:"gte=0,lte=150"`
	Weight            float64  `json:"weight" validate:"gte=0"`
	Height            float64  `json:"height" validate:"gte=0"`
	BMI               float64  `json:"bmi" validate:"gte=0"`
	ActivityLevel     string   `json:"activity_level"`
	MedicalConditions []string `json:"medical_conditions"`
	Smoking           bool     `json:"smoking"`
	Alcohol           string   `json:"alcohol"`
	Diet              string   `json:"diet"`
	SleepHours        float64  `json:"sleep_hours" validate:"gte=0,lte=24"`
	StressLevel       string   `json:"stress_level"`
	ExerciseFrequency string   `json:"exercise_frequency"`
	BloodPressure     string   `json:"blood_pressure"`
	RestingHeartRate  int      `json:"resting_heart_rate" validate:"gte=0"`
	BloodSugar        float64  `json:"blood_sugar" validate:"gte=0"`
}

// Response DTOs

type DiagnosisJobResponse struct {
	ID        string                  `json:"id"`
	Kind      string                  `json:"kind"`
	Status    string                  `json:"status"`
	Attempts  int                     `json:"attempts"`
	Result    *entity.DiagnosisResult `json:"result,omitempty"`
	Error     string                  `json:"error,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}
