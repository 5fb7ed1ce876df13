package entity

import "time"

// DiagnosisKind selects the prompt family and the expected result shape.
type DiagnosisKind string

const (
	DiagnosisKindDiagnosis      DiagnosisKind = "diagnosis"
	DiagnosisKindRecommendation DiagnosisKind = "recommendation"
)

// DiagnosisJobStatus represents the state of an asynchronous diagnosis job
type DiagnosisJobStatus string

const (
	DiagnosisJobPending   DiagnosisJobStatus = "pending"
	DiagnosisJobCompleted DiagnosisJobStatus = "completed"
	DiagnosisJobFailed    DiagnosisJobStatus = "failed"
)

// DiagnosisJob tracks one request to the generative model.
type DiagnosisJob struct {
	ID        string             `json:"id"`
	Kind      DiagnosisKind      `json:"kind"`
	Status    DiagnosisJobStatus `json:"status"`
	Prompt    string             `json:"prompt"`
	Attempts  int                `json:"attempts"`
	Result    *DiagnosisResult   `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// IsFinished reports whether the job reached a terminal state.
func (j *DiagnosisJob) IsFinished() bool {
	return j.Status == DiagnosisJobCompleted || j.Status == DiagnosisJobFailed
}

// DiagnosisResult is the normalized model output. Exactly one of
// Result.Analysis or Result.HealthAssessment is set.
type DiagnosisResult struct {
	Result     DiagnosisBody `json:"result"`
	Disclaimer string        `json:"disclaimer"`
}

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
