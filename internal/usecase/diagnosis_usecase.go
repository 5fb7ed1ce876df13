package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"health-management/internal/converter"
	"health-management/internal/delivery/dto"
	"health-management/internal/domain/entity"
	"health-management/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrDiagnosisJobNotFound = errors.New("diagnosis job not found")
)

// JobQueue accepts stored diagnosis jobs for background processing.
type JobQueue interface {
	Enqueue(jobID string) error
}

type DiagnosisUsecase interface {
	SubmitDiagnosis(ctx context.Context, req *dto.DiagnosisRequest) (*dto.DiagnosisJobResponse, error)
	SubmitRecommendation(ctx context.Context, req *dto.RecommendationRequest) (*dto.DiagnosisJobResponse, error)
	GetJob(ctx context.Context, id string) (*dto.DiagnosisJobResponse, error)
}

type diagnosisUsecase struct {
	log     *logrus.Logger
	jobRepo repository.DiagnosisJobRepository
	queue   JobQueue
	now     func() time.Time
}

func NewDiagnosisUsecase(log *logrus.Logger, jobRepo repository.DiagnosisJobRepository, queue JobQueue) DiagnosisUsecase {
	return &diagnosisUsecase{
		log:     log,
		jobRepo: jobRepo,
		queue:   queue,
		now:     time.Now,
	}
}

func (u *diagnosisUsecase) SubmitDiagnosis(ctx context.Context, req *dto.DiagnosisRequest) (*dto.DiagnosisJobResponse, error) {
	if strings.TrimSpace(req.Symptoms) == "" {
		return nil, newValidationError("Validation failed", map[string]string{"symptoms": "symptoms is required"})
	}
	return u.submit(ctx, entity.DiagnosisKindDiagnosis, BuildDiagnosisPrompt(req))
}

func (u *diagnosisUsecase) SubmitRecommendation(ctx context.Context, req *dto.RecommendationRequest) (*dto.DiagnosisJobResponse, error) {
	return u.submit(ctx, entity.DiagnosisKindRecommendation, BuildRecommendationPrompt(req))
}

// submit stores a pending job and hands it to the queue. When the queue
// refuses it the job is marked failed so pollers do not wait on it.
func (u *diagnosisUsecase) submit(ctx context.Context, kind entity.DiagnosisKind, prompt string) (*dto.DiagnosisJobResponse, error) {
	now := u.now().UTC()
	job := &entity.DiagnosisJob{
		ID:        uuid.NewString(),
		Kind:      kind,
		Status:    entity.DiagnosisJobPending,
		Prompt:    prompt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.jobRepo.Save(ctx, job); err != nil {
		u.log.Warnf("Failed to store diagnosis job: %+v", err)
		return nil, err
	}

	if err := u.queue.Enqueue(job.ID); err != nil {
		u.log.Warnf("Failed to enqueue diagnosis job %s: %+v", job.ID, err)
		job.Status = entity.DiagnosisJobFailed
		job.Error = err.Error()
		if saveErr := u.jobRepo.Save(ctx, job); saveErr != nil {
			u.log.Warnf("Failed to mark diagnosis job %s failed: %+v", job.ID, saveErr)
		}
		return nil, err
	}

	u.log.Infof("Diagnosis job queued: id=%s, kind=%s", job.ID, kind)
	return converter.DiagnosisJobToResponse(job), nil
}

func (u *diagnosisUsecase) GetJob(ctx context.Context, id string) (*dto.DiagnosisJobResponse, error) {
	job, err := u.jobRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find diagnosis job %s: %+v", id, err)
		return nil, err
	}
	if job == nil {
		return nil, ErrDiagnosisJobNotFound
	}
	return converter.DiagnosisJobToResponse(job), nil
}

const diagnosisSchema = `{
  "result": {
    "analysis": {
      "possibleConditions": [
        {
          "condition": "string",
          "riskLevel": "low|medium|high",
          "description": "string",
          "commonSymptoms": ["string"],
          "matchingSymptoms": ["string"],
          "additionalInfo": "string"
        }
      ],
      "generalAdvice": {
        "recommendedActions": ["string"],
        "lifestyleConsiderations": ["string"],
        "whenToSeekMedicalAttention": ["string"]
      }
    },
    "educationalResources": {
      "medicalTerminology": {"term": "definition"},
      "reliableSources": ["string"]
    }
  },
  "disclaimer": "string"
}`

const recommendationSchema = `{
  "result": {
    "healthAssessment": {
      "overview": "string",
      "keyAreas": ["string"],
      "riskFactors": ["string"]
    },
    "recommendations": {
      "lifestyle": {
        "diet": ["string"],
        "exercise": ["string"],
        "sleep": ["string"],
        "stress": ["string"]
      },
      "preventiveCare": {
        "screening": ["string"],
        "vaccinations": ["string"],
        "checkups": ["string"]
      }
    },
    "educationalResources": {
      "medicalTerminology": {"term": "definition"},
      "preventiveMeasures": ["string"],
      "reliableSources": ["string"]
    }
  },
  "disclaimer": "string"
}`

// BuildDiagnosisPrompt renders a patient profile into the diagnosis prompt.
func BuildDiagnosisPrompt(req *dto.DiagnosisRequest) string {
	var b strings.Builder
	b.WriteString("Given the following patient information:\n")
	fmt.Fprintf(&b, "Age: %s\n", orUnknown(intString(req.Age)))
	fmt.Fprintf(&b, "Gender: %s\n", orUnknown(req.Gender))
	fmt.Fprintf(&b, "Height: %s cm\n", orUnknown(floatString(req.Height)))
	fmt.Fprintf(&b, "Weight: %s kg\n", orUnknown(floatString(req.Weight)))
	fmt.Fprintf(&b, "Symptoms: %s\n", strings.TrimSpace(req.Symptoms))
	fmt.Fprintf(&b, "Medical History: %s\n", orNone(req.MedicalHistory))
	fmt.Fprintf(&b, "Current Medications: %s\n", orNone(req.CurrentMedications))
	fmt.Fprintf(&b, "Allergies: %s\n", orNone(req.Allergies))
	b.WriteString("Lifestyle:\n")
	fmt.Fprintf(&b, "  - Smoking: %s\n", yesNo(req.Smoking))
	fmt.Fprintf(&b, "  - Alcohol: %s\n", orUnknown(req.Alcohol))
	fmt.Fprintf(&b, "  - Exercise: %s\n", orUnknown(req.Exercise))
	fmt.Fprintf(&b, "  - Diet: %s\n", orUnknown(req.Diet))
	b.WriteString("\nProvide a medical analysis as a single JSON object in exactly this format:\n")
	b.WriteString(diagnosisSchema)
	b.WriteString("\nInclude a clear disclaimer that this is not a replacement for professional medical advice.")
	return b.String()
}

// BuildRecommendationPrompt renders a health profile into the preventive
// recommendation prompt.
func BuildRecommendationPrompt(req *dto.RecommendationRequest) string {
	conditions := make([]string, 0, len(req.MedicalConditions))
	for _, c := range req.MedicalConditions {
		if c = strings.TrimSpace(c); c != "" {
			conditions = append(conditions, c)
		}
	}

	var b strings.Builder
	b.WriteString("Based on the following health profile, provide personalized preventive health recommendations:\n")
	fmt.Fprintf(&b, "Age: %s\n", orUnknown(intString(req.Age)))
	fmt.Fprintf(&b, "Weight: %s kg\n", orUnknown(floatString(req.Weight)))
	fmt.Fprintf(&b, "Height: %s cm\n", orUnknown(floatString(req.Height)))
	fmt.Fprintf(&b, "BMI: %s\n", orUnknown(floatString(req.BMI)))
	fmt.Fprintf(&b, "Activity Level: %s\n", orUnknown(req.ActivityLevel))
	fmt.Fprintf(&b, "Medical Conditions: %s\n", orNone(strings.Join(conditions, ", ")))
	b.WriteString("Lifestyle:\n")
	fmt.Fprintf(&b, "  - Smoking: %s\n", yesNo(req.Smoking))
	fmt.Fprintf(&b, "  - Alcohol: %s\n", orUnknown(req.Alcohol))
	fmt.Fprintf(&b, "  - Diet: %s\n", orUnknown(req.Diet))
	fmt.Fprintf(&b, "  - Sleep: %s hours\n", orUnknown(floatString(req.SleepHours)))
	fmt.Fprintf(&b, "  - Stress Level: %s\n", orUnknown(req.StressLevel))
	fmt.Fprintf(&b, "  - Exercise Frequency: %s\n", orUnknown(req.ExerciseFrequency))
	b.WriteString("Vitals:\n")
	fmt.Fprintf(&b, "  - Blood Pressure: %s\n", orUnknown(req.BloodPressure))
	fmt.Fprintf(&b, "  - Resting Heart Rate: %s\n", orUnknown(intString(req.RestingHeartRate)))
	fmt.Fprintf(&b, "  - Blood Sugar: %s\n", orUnknown(floatString(req.BloodSugar)))
	b.WriteString("\nRespond with a single JSON object in exactly this format:\n")
	b.WriteString(recommendationSchema)
	b.WriteString("\nInclude a clear disclaimer that this is not a replacement for professional medical advice.")
	return b.String()
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "not provided"
	}
	return s
}

func orNone(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "none reported"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func intString(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}

func floatString(f float64) string {
	if f == 0 {
		return ""
	}
	return fmt.Sprintf("%g", f)
}
