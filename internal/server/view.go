package server

import (
	"github.com/yahyarisas/spark-app/internal/assessment"
	"github.com/yahyarisas/spark-app/internal/prediction"
)

// StepView is what the presentation layer receives: the step to render
// plus only the slice of session data that step needs.
type StepView struct {
	Variant       string              `json:"variant"`
	Step          string              `json:"step"`
	StepIndex     int                 `json:"step_index"`
	StepCount     int                 `json:"step_count"`
	Title         string              `json:"title"`
	BasicInfo     *BasicInfoView      `json:"basic_info,omitempty"`
	HealthHistory *HealthHistoryView  `json:"health_history,omitempty"`
	Questionnaire *QuestionnaireView  `json:"questionnaire,omitempty"`
	MotionUpload  *MotionUploadView   `json:"motion_upload,omitempty"`
	Results       *prediction.Outcome `json:"results,omitempty"`
}

type BasicInfoView struct {
	Age             int     `json:"age"`
	AgeAtDiagnosis  int     `json:"age_at_diagnosis"`
	HeightCM        float64 `json:"height_cm,omitempty"`
	WeightKG        float64 `json:"weight_kg,omitempty"`
	BMI             float64 `json:"bmi,omitempty"`
	BMIBand         string  `json:"bmi_band,omitempty"`
	Gender          string  `json:"gender"`
	Handedness      string  `json:"handedness,omitempty"`
	FamilyHistory   string  `json:"family_history"`
	SubjectID       int     `json:"subject_id,omitempty"`
	ConsentRequired bool    `json:"consent_required"`
	ConsentGiven    bool    `json:"consent_given"`
}

type HealthHistoryView struct {
	Choices       []string `json:"choices"`
	HasConditions bool     `json:"has_conditions"`
	Conditions    []string `json:"conditions"`
}

type QuestionnaireView struct {
	Questions []QuestionView `json:"questions"`
	Answered  int            `json:"answered"`
	Total     int            `json:"total"`
}

type QuestionView struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Answer *bool  `json:"answer"`
}

type MotionUploadView struct {
	Uploaded bool `json:"uploaded"`
}

func buildView(v *assessment.Variant, s assessment.Session, outcome *prediction.Outcome) StepView {
	view := StepView{
		Variant:   v.Name,
		Step:      v.CurrentStep(s).String(),
		StepIndex: s.StepIndex,
		StepCount: len(v.Steps),
		Title:     v.Title,
	}

	switch v.CurrentStep(s) {
	case assessment.StepBasicInfo:
		bi := &BasicInfoView{
			Age:             s.Basic.Age,
			AgeAtDiagnosis:  s.Basic.AgeAtDiagnosis,
			Gender:          s.Basic.Gender,
			FamilyHistory:   s.Basic.FamilyHistory,
			SubjectID:       s.Basic.SubjectID,
			ConsentRequired: v.RequireConsent,
			ConsentGiven:    s.ConsentGiven,
		}
		if v.RequireBody {
			bi.HeightCM = s.Basic.HeightCM
			bi.WeightKG = s.Basic.WeightKG
			bi.Handedness = s.Basic.Handedness
			bi.BMI = assessment.BMI(s.Basic.HeightCM, s.Basic.WeightKG)
			bi.BMIBand = assessment.BMIBand(bi.BMI)
		}
		view.BasicInfo = bi
	case assessment.StepHealthHistory:
		view.HealthHistory = &HealthHistoryView{
			Choices:       assessment.MotionConditions,
			HasConditions: s.History.HasConditions,
			Conditions:    s.History.Conditions,
		}
	case assessment.StepMotionUpload:
		view.MotionUpload = &MotionUploadView{Uploaded: s.MotionUploaded}
	case assessment.StepQuestionnaire:
		qv := &QuestionnaireView{Total: v.Bank.Len()}
		for _, q := range v.Bank.Questions() {
			item := QuestionView{ID: string(q.ID), Text: q.Text}
			if ans, ok := s.Answers[q.ID]; ok {
				val := ans
				item.Answer = &val
				qv.Answered++
			}
			qv.Questions = append(qv.Questions, item)
		}
		view.Questionnaire = qv
	case assessment.StepResults:
		view.Results = outcome
	}

	return view
}
