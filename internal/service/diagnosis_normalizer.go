package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"health-management/internal/domain/entity"
)

var ErrMalformedModelOutput = errors.New("malformed model output")

const DefaultDisclaimer = "This analysis is for informational purposes only and is not a replacement for professional medical advice, diagnosis, or treatment. Always consult a qualified healthcare provider."

var DefaultReliableSources = []string{"Mayo Clinic", "WebMD", "CDC", "WHO", "NIH"}

// stringList accepts either a JSON array of strings or a single string.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = stringList{s}
		return nil
	}

	var items []interface{}
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(stringList, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		if item != nil {
			out = append(out, fmt.Sprint(item))
		}
	}
	*l = out
	return nil
}

// terminology accepts an object of term -> definition or an array of
// {term, definition} pairs.
type terminology map[string]string

func (t *terminology) UnmarshalJSON(data []byte) error {
	out := make(terminology)
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = out
		return nil
	}

	if data[0] == '[' {
		var pairs []struct {
			Term       string `json:"term"`
			Definition string `json:"definition"`
		}
		if err := json.Unmarshal(data, &pairs); err != nil {
			return err
		}
		for _, p := range pairs {
			if p.Term != "" {
				out[p.Term] = p.Definition
			}
		}
		*t = out
		return nil
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for k, v := range m {
		out[k] = fmt.Sprint(v)
	}
	*t = out
	return nil
}

type rawModelOutput struct {
	Result *struct {
		Analysis *struct {
			PossibleConditions []struct {
				Condition        string     `json:"condition"`
				RiskLevel        string     `json:"riskLevel"`
				Description      string     `json:"description"`
				CommonSymptoms   stringList `json:"commonSymptoms"`
				MatchingSymptoms stringList `json:"matchingSymptoms"`
				AdditionalInfo   string     `json:"additionalInfo"`
			} `json:"possibleConditions"`
			GeneralAdvice struct {
				RecommendedActions         stringList `json:"recommendedActions"`
				LifestyleConsiderations    stringList `json:"lifestyleConsiderations"`
				WhenToSeekMedicalAttention stringList `json:"whenToSeekMedicalAttention"`
			} `json:"generalAdvice"`
		} `json:"analysis"`
		HealthAssessment *struct {
			Overview    string     `json:"overview"`
			KeyAreas    stringList `json:"keyAreas"`
			RiskFactors stringList `json:"riskFactors"`
		} `json:"healthAssessment"`
		Recommendations *struct {
			Lifestyle struct {
				Diet     stringList `json:"diet"`
				Exercise stringList `json:"exercise"`
				Sleep    stringList `json:"sleep"`
				Stress   stringList `json:"stress"`
			} `json:"lifestyle"`
			PreventiveCare struct {
				Screening    stringList `json:"screening"`
				Vaccinations stringList `json:"vaccinations"`
				Checkups     stringList `json:"checkups"`
			} `json:"preventiveCare"`
		} `json:"recommendations"`
		EducationalResources struct {
			MedicalTerminology terminology `json:"medicalTerminology"`
			PreventiveMeasures stringList  `json:"preventiveMeasures"`
			ReliableSources    stringList  `json:"reliableSources"`
		} `json:"educationalResources"`
	} `json:"result"`
	Disclaimer string `json:"disclaimer"`
}

// NormalizeModelOutput parses raw model text into the fixed result schema.
// Diagnosis output must name at least one condition; recommendation output
// must carry a health assessment overview.
func NormalizeModelOutput(kind entity.DiagnosisKind, raw string) (*entity.DiagnosisResult, error) {
	var out rawModelOutput
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModelOutput, err)
	}
	if out.Result == nil {
		return nil, fmt.Errorf("%w: missing result", ErrMalformedModelOutput)
	}

	r := out.Result
	body := entity.DiagnosisBody{}

	switch kind {
	case entity.DiagnosisKindDiagnosis:
		if r.Analysis == nil {
			return nil, fmt.Errorf("%w: missing result.analysis", ErrMalformedModelOutput)
		}
		conditions := make([]entity.PossibleCondition, 0, len(r.Analysis.PossibleConditions))
		for _, c := range r.Analysis.PossibleConditions {
			name := strings.TrimSpace(c.Condition)
			if name == "" {
				continue
			}
			conditions = append(conditions, entity.PossibleCondition{
				Condition:        name,
				RiskLevel:        normalizeRiskLevel(c.RiskLevel),
				Description:      strings.TrimSpace(c.Description),
				CommonSymptoms:   nonNil(c.CommonSymptoms),
				MatchingSymptoms: nonNil(c.MatchingSymptoms),
				AdditionalInfo:   strings.TrimSpace(c.AdditionalInfo),
			})
		}
		if len(conditions) == 0 {
			return nil, fmt.Errorf("%w: no possible conditions", ErrMalformedModelOutput)
		}
		body.Analysis = &entity.Analysis{
			PossibleConditions: conditions,
			GeneralAdvice: entity.GeneralAdvice{
				RecommendedActions:         nonNil(r.Analysis.GeneralAdvice.RecommendedActions),
				LifestyleConsiderations:    nonNil(r.Analysis.GeneralAdvice.LifestyleConsiderations),
				WhenToSeekMedicalAttention: nonNil(r.Analysis.GeneralAdvice.WhenToSeekMedicalAttention),
			},
		}

	case entity.DiagnosisKindRecommendation:
		if r.HealthAssessment == nil || strings.TrimSpace(r.HealthAssessment.Overview) == "" {
			return nil, fmt.Errorf("%w: missing result.healthAssessment.overview", ErrMalformedModelOutput)
		}
		body.HealthAssessment = &entity.HealthAssessment{
			Overview:    strings.TrimSpace(r.HealthAssessment.Overview),
			KeyAreas:    nonNil(r.HealthAssessment.KeyAreas),
			RiskFactors: nonNil(r.HealthAssessment.RiskFactors),
		}
		recs := &entity.Recommendations{
			Lifestyle: entity.Lifestyle{
				Diet: []string{}, Exercise: []string{}, Sleep: []string{}, Stress: []string{},
			},
			PreventiveCare: entity.PreventiveCare{
				Screening: []string{}, Vaccinations: []string{}, Checkups: []string{},
			},
		}
		if r.Recommendations != nil {
			recs.Lifestyle = entity.Lifestyle{
				Diet:     nonNil(r.Recommendations.Lifestyle.Diet),
				Exercise: nonNil(r.Recommendations.Lifestyle.Exercise),
				Sleep:    nonNil(r.Recommendations.Lifestyle.Sleep),
				Stress:   nonNil(r.Recommendations.Lifestyle.Stress),
			}
			recs.PreventiveCare = entity.PreventiveCare{
				Screening:    nonNil(r.Recommendations.PreventiveCare.Screening),
				Vaccinations: nonNil(r.Recommendations.PreventiveCare.Vaccinations),
				Checkups:     nonNil(r.Recommendations.PreventiveCare.Checkups),
			}
		}
		body.Recommendations = recs

	default:
		return nil, fmt.Errorf("unknown diagnosis kind %q", kind)
	}

	terms := map[string]string(r.EducationalResources.MedicalTerminology)
	if terms == nil {
		terms = map[string]string{}
	}
	sources := nonNil(r.EducationalResources.ReliableSources)
	if len(sources) == 0 {
		sources = append([]string(nil), DefaultReliableSources...)
	}
	body.EducationalResources = entity.EducationalResources{
		MedicalTerminology: terms,
		PreventiveMeasures: nonNil(r.EducationalResources.PreventiveMeasures),
		ReliableSources:    sources,
	}

	disclaimer := strings.TrimSpace(out.Disclaimer)
	if disclaimer == "" {
		disclaimer = DefaultDisclaimer
	}

	return &entity.DiagnosisResult{Result: body, Disclaimer: disclaimer}, nil
}

// extractJSON strips markdown code fences and any prose around the outermost
// JSON object.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```JSON")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return strings.TrimSpace(s)
}

func normalizeRiskLevel(level string) string {
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case "low", "medium", "high":
		return l
	case "moderate":
		return "medium"
	default:
		return "unknown"
	}
}

func nonNil(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
