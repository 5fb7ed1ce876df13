package client

import "time"

// Appointment is an appointment as the API returns it.
type Appointment struct {
	ID               string    `json:"id"`
	PatientID        string    `json:"patient_id"`
	DoctorName       string    `json:"doctor_name"`
	DoctorEmail      string    `json:"doctor_email"`
	HospitalName     string    `json:"hospital_name"`
	HospitalLocation string    `json:"hospital_location"`
	Department       string    `json:"department"`
	AppointmentDate  string    `json:"appointment_date"`
	TimeSlot         string    `json:"time_slot"`
	Status           string    `json:"status"`
	Symptoms         string    `json:"symptoms"`
	Medications      string    `json:"medications"`
	Allergies        string    `json:"allergies"`
	MedicalHistory   string    `json:"medical_history"`
	MedicineHistory  string    `json:"medicine_history"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateAppointmentRequest books an appointment. AppointmentDate is YYYY-MM-DD.
type CreateAppointmentRequest struct {
	PatientID        string `json:"patient_id"`
	DoctorName       string `json:"doctor_name"`
	DoctorEmail      string `json:"doctor_email"`
	HospitalName     string `json:"hospital_name"`
	HospitalLocation string `json:"hospital_location"`
	Department       string `json:"department"`
	AppointmentDate  string `json:"appointment_date"`
	TimeSlot         string `json:"time_slot"`
	Symptoms         string `json:"symptoms,omitempty"`
	Medications      string `json:"medications,omitempty"`
	Allergies        string `json:"allergies,omitempty"`
	MedicalHistory   string `json:"medical_history,omitempty"`
	MedicineHistory  string `json:"medicine_history,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// AppointmentDetails is the pre-appointment form. Nil fields are not sent
// and stay unchanged on the server.
type AppointmentDetails struct {
	Symptoms        *string `json:"symptoms,omitempty"`
	Medications     *string `json:"medications,omitempty"`
	Allergies       *string `json:"allergies,omitempty"`
	MedicalHistory  *string `json:"medical_history,omitempty"`
	MedicineHistory *string `json:"medicine_history,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type roomTokenResponse struct {
	Token string `json:"token"`
}

// Diagnosis job states.
const (
	DiagnosisPending   = "pending"
	DiagnosisCompleted = "completed"
	DiagnosisFailed    = "failed"
)

type DiagnosisRequest struct {
	Symptoms           string  `json:"symptoms"`
	Age                int     `json:"age"`
	Gender             string  `json:"gender,omitempty"`
	Height             float64 `json:"height,omitempty"`
	Weight             float64 `json:"weight,omitempty"`
	MedicalHistory     string  `json:"medical_history,omitempty"`
	CurrentMedications string  `json:"current_medications,omitempty"`
	Allergies          string  `json:"allergies,omitempty"`
	Smoking            bool    `json:"smoking"`
	Alcohol            string  `json:"alcohol,omitempty"`
	Exercise           string  `json:"exercise,omitempty"`
	Diet               string  `json:"diet,omitempty"`
}

type RecommendationRequest struct {
	Age               int      `json:"age"`
	Weight            float64  `json:"weight,omitempty"`
	Height            float64  `json:"height,omitempty"`
	BMI               float64  `json:"bmi,omitempty"`
	ActivityLevel     string   `json:"activity_level,omitempty"`
	MedicalConditions []string `json:"medical_conditions,omitempty"`
	Smoking           bool     `json:"smoking"`
	Alcohol           string   `json:"alcohol,omitempty"`
	Diet              string   `json:"diet,omitempty"`
	SleepHours        float64  `json:"sleep_hours,omitempty"`
	StressLevel       string   `json:"stress_level,omitempty"`
	ExerciseFrequency string   `json:"exercise_frequency,omitempty"`
	BloodPressure     string   `json:"blood_pressure,omitempty"`
	RestingHeartRate  int      `json:"resting_heart_rate,omitempty"`
	BloodSugar        float64  `json:"blood_sugar,omitempty"`
}

// DiagnosisJob tracks one asynchronous diagnosis or recommendation request.
type DiagnosisJob struct {
	ID        string           `json:"id"`
	Kind      string           `json:"kind"`
	Status    string           `json:"status"`
	Attempts  int              `json:"attempts"`
	Result    *DiagnosisResult `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type DiagnosisResult struct {
	Result     DiagnosisBody `json:"result"`
	Disclaimer string        `json:"disclaimer"`
}

// DiagnosisBody carries Analysis for diagnosis jobs and HealthAssessment
// with Recommendations for recommendation jobs.
type DiagnosisBody struct {
	Analysis             *Analysis            `json:"analysis,omitempty"`
	HealthAssessment     *HealthAssessment    `json:"healthAssessment,omitempty"`
	Recommendations      *Recommendations     `json:"recommendations,omitempty"`
	EducationalResources EducationalResources `json:"educationalResources"`
}

type Analysis struct {
	PossibleConditions []PossibleCondition `json:"possibleConditions"`
	GeneralAdvice      GeneralAdvice       `json:"generalAdvice"`
}

type PossibleCondition struct {
	Condition        string   `json:"condition"`
	RiskLevel        string   `json:"riskLevel"`
	Description      string   `json:"description"`
	CommonSymptoms   []string `json:"commonSymptoms"`
	MatchingSymptoms []string `json:"matchingSymptoms"`
	AdditionalInfo   string   `json:"additionalInfo"`
}

type GeneralAdvice struct {
	RecommendedActions         []string `json:"recommendedActions"`
	LifestyleConsiderations    []string `json:"lifestyleConsiderations"`
	WhenToSeekMedicalAttention []string `json:"whenToSeekMedicalAttention"`
}

type HealthAssessment struct {
	Overview    string   `json:"overview"`
	KeyAreas    []string `json:"keyAreas"`
	RiskFactors []string `json:"riskFactors"`
}

type Recommendations struct {
	Lifestyle      Lifestyle      `json:"lifestyle"`
	PreventiveCare PreventiveCare `json:"preventiveCare"`
}

type Lifestyle struct {
	Diet     []string `json:"diet"`
	Exercise []string `json:"exercise"`
	Sleep    []string `json:"sleep"`
	Stress   []string `json:"stress"`
}

type PreventiveCare struct {
	Screening    []string `json:"screening"`
	Vaccinations []string `json:"vaccinations"`
	Checkups     []string `json:"checkups"`
}

type EducationalResources struct {
	MedicalTerminology map[string]string `json:"medicalTerminology"`
	PreventiveMeasures []string          `json:"preventiveMeasures"`
	ReliableSources    []string          `json:"reliableSources"`
}

// AppointmentType is the consultation modality of an availability slot.
type AppointmentType string

const (
	AppointmentTypeOnline  AppointmentType = "online"
	AppointmentTypeOffline AppointmentType = "offline"
)

// IsValid reports whether t is online or offline.
func (t AppointmentType) IsValid() bool {
	return t == AppointmentTypeOnline || t == AppointmentTypeOffline
}

type AvailabilitySlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type Availability struct {
	Offline []AvailabilitySlot `json:"offline"`
	Online  []AvailabilitySlot `json:"online"`
}

type Doctor struct {
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Available    bool         `json:"available"`
	Availability Availability `json:"availability"`
}

type Department struct {
	Name    string   `json:"name"`
	Doctors []Doctor `json:"doctors"`
}

// Hospital is a catalog entry with departments, or a bare nearby-search hit.
type Hospital struct {
	PlaceID          string       `json:"place_id,omitempty"`
	Name             string       `json:"name"`
	Vicinity         string       `json:"vicinity"`
	Rating           float64      `json:"rating"`
	UserRatingsTotal int          `json:"user_ratings_total"`
	Latitude         float64      `json:"latitude,omitempty"`
	Longitude        float64      `json:"longitude,omitempty"`
	Departments      []Department `json:"departments,omitempty"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
