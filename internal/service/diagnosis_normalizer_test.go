package service

import (
	"testing"

	"health-management/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fencedDiagnosis = "Here is the analysis:\n```json\n" + `{
  "result": {
    "analysis": {
      "possibleConditions": [
        {
          "condition": "Migraine",
          "riskLevel": "Moderate",
          "description": "Recurrent headaches",
          "commonSymptoms": ["headache", "nausea"],
          "matchingSymptoms": "headache"
        },
        {"condition": "  ", "riskLevel": "high"}
      ],
      "generalAdvice": {"recommendedActions": ["rest", ""]}
    },
    "educationalResources": {
      "medicalTerminology": [{"term": "Aura", "definition": "Sensory disturbance"}]
    }
  }
}` + "\n```"

func TestNormalizeModelOutput_Diagnosis(t *testing.T) {
	result, err := NormalizeModelOutput(entity.DiagnosisKindDiagnosis, fencedDiagnosis)
	require.NoError(t, err)

	analysis := result.Result.Analysis
	require.NotNil(t, analysis)
	require.Len(t, analysis.PossibleConditions, 1)

	c := analysis.PossibleConditions[0]
	assert.Equal(t, "Migraine", c.Condition)
	assert.Equal(t, "medium", c.RiskLevel)
	assert.Equal(t, []string{"headache"}, c.MatchingSymptoms)
	assert.Equal(t, []string{"rest"}, analysis.GeneralAdvice.RecommendedActions)
	assert.NotNil(t, analysis.GeneralAdvice.LifestyleConsiderations)

	assert.Equal(t, "Sensory disturbance", result.Result.EducationalResources.MedicalTerminology["Aura"])
	assert.Equal(t, DefaultReliableSources, result.Result.EducationalResources.ReliableSources)
	assert.Equal(t, DefaultDisclaimer, result.Disclaimer)
	assert.Nil(t, result.Result.HealthAssessment)
}

func TestNormalizeModelOutput_Recommendation(t *testing.T) {
	raw := `{
	  "result": {
	    "healthAssessment": {"overview": "Generally healthy", "keyAreas": "sleep"},
	    "educationalResources": {
	      "medicalTerminology": {"BMI": "Body mass index"},
	      "reliableSources": ["NHS"]
	    }
	  },
	  "disclaimer": "Not medical advice."
	}`

	result, err := NormalizeModelOutput(entity.DiagnosisKindRecommendation, raw)
	require.NoError(t, err)

	require.NotNil(t, result.Result.HealthAssessment)
	assert.Equal(t, "Generally healthy", result.Result.HealthAssessment.Overview)
	assert.Equal(t, []string{"sleep"}, result.Result.HealthAssessment.KeyAreas)
	assert.Empty(t, result.Result.HealthAssessment.RiskFactors)

	require.NotNil(t, result.Result.Recommendations)
	assert.NotNil(t, result.Result.Recommendations.Lifestyle.Diet)
	assert.Equal(t, []string{"NHS"}, result.Result.EducationalResources.ReliableSources)
	assert.Equal(t, "Not medical advice.", result.Disclaimer)
}

func TestNormalizeModelOutput_Rejects(t *testing.T) {
	tests := []struct {
		name string
		kind entity.DiagnosisKind
		raw  string
	}{
		{name: "not json", kind: entity.DiagnosisKindDiagnosis, raw: "I cannot help with that."},
		{name: "missing result", kind: entity.DiagnosisKindDiagnosis, raw: `{"disclaimer": "x"}`},
		{name: "no conditions", kind: entity.DiagnosisKindDiagnosis, raw: `{"result": {"analysis": {"possibleConditions": []}}}`},
		{name: "missing overview", kind: entity.DiagnosisKindRecommendation, raw: `{"result": {"healthAssessment": {"keyAreas": []}}}`},
		{name: "wrong shape", kind: entity.DiagnosisKindRecommendation, raw: `{"result": {"analysis": {"possibleConditions": [{"condition": "Flu"}]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeModelOutput(tt.kind, tt.raw)
			assert.ErrorIs(t, err, ErrMalformedModelOutput)
		})
	}
}

func TestNormalizeRiskLevel(t *testing.T) {
	assert.Equal(t, "high", normalizeRiskLevel(" HIGH "))
	assert.Equal(t, "medium", normalizeRiskLevel("moderate"))
	assert.Equal(t, "unknown", normalizeRiskLevel("severe"))
}
