package prediction

import (
	"fmt"

	"github.com/yahyarisas/spark-app/internal/assessment"
)

// Each endpoint gets its own typed request so a malformed payload fails
// here, at assembly, instead of silently on the wire. JSON keys mirror
// the model's training columns, including the two-digit question codes.

// ClinicalRequest carries the full demographic set plus all thirty
// questionnaire answers.
type ClinicalRequest struct {
	Age                 int     `json:"age"`
	AgeAtDiagnosis      int     `json:"age_at_diagnosis"`
	Height              float64 `json:"height"`
	Weight              float64 `json:"weight"`
	BMI                 float64 `json:"bmi"`
	Gender              string  `json:"gender"`
	Handedness          string  `json:"handedness"`
	AppearanceInKinship string  `json:"appearance_in_kinship"`
	SubjectID           int     `json:"subject_id"`
	Q01                 bool    `json:"01"`
	Q02                 bool    `json:"02"`
	Q03                 bool    `json:"03"`
	Q04                 bool    `json:"04"`
	Q05                 bool    `json:"05"`
	Q06                 bool    `json:"06"`
	Q07                 bool    `json:"07"`
	Q08                 bool    `json:"08"`
	Q09                 bool    `json:"09"`
	Q10                 bool    `json:"10"`
	Q11                 bool    `json:"11"`
	Q12                 bool    `json:"12"`
	Q13                 bool    `json:"13"`
	Q14                 bool    `json:"14"`
	Q15                 bool    `json:"15"`
	Q16                 bool    `json:"16"`
	Q17                 bool    `json:"17"`
	Q18                 bool    `json:"18"`
	Q19                 bool    `json:"19"`
	Q20                 bool    `json:"20"`
	Q21                 bool    `json:"21"`
	Q22                 bool    `json:"22"`
	Q23                 bool    `json:"23"`
	Q24                 bool    `json:"24"`
	Q25                 bool    `json:"25"`
	Q26                 bool    `json:"26"`
	Q27                 bool    `json:"27"`
	Q28                 bool    `json:"28"`
	Q29                 bool    `json:"29"`
	Q30                 bool    `json:"30"`
}

// MotionRequest carries the reduced demographic set plus the six model
// feature answers; the motion wizard asks ten questions but only these
// six go to the service.
type MotionRequest struct {
	Age                 int    `json:"age"`
	AgeAtDiagnosis      int    `json:"age_at_diagnosis"`
	Gender              string `json:"gender"`
	AppearanceInKinship string `json:"appearance_in_kinship"`
	Q02                 bool   `json:"02"`
	Q03                 bool   `json:"03"`
	Q09                 bool   `json:"09"`
	Q13                 bool   `json:"13"`
	Q17                 bool   `json:"17"`
	Q20                 bool   `json:"20"`
}

// ScreeningRequest has the same shape as MotionRequest but is a distinct
// type: the screening endpoint answers with a class code, not a
// probability, and the two contracts must not be merged.
type ScreeningRequest struct {
	Age                 int    `json:"age"`
	AgeAtDiagnosis      int    `json:"age_at_diagnosis"`
	Gender              string `json:"gender"`
	AppearanceInKinship string `json:"appearance_in_kinship"`
	Q02                 bool   `json:"02"`
	Q03                 bool   `json:"03"`
	Q09                 bool   `json:"09"`
	Q13                 bool   `json:"13"`
	Q17                 bool   `json:"17"`
	Q20                 bool   `json:"20"`
}

// SubjectRequest is the alternate by-identifier endpoint payload.
type SubjectRequest struct {
	SubjectID string `json:"subject_id"`
}

// requiredAnswers pulls the given ids out of the session and fails if
// any is missing, so an incomplete session can never reach the wire.
func requiredAnswers(s assessment.Session, ids []assessment.QuestionID) (map[assessment.QuestionID]bool, error) {
	out := make(map[assessment.QuestionID]bool, len(ids))
	for _, id := range ids {
		v, ok := s.Answers[id]
		if !ok {
			return nil, fmt.Errorf("assemble request: answer %q missing", id)
		}
		out[id] = v
	}
	return out, nil
}

func AssembleClinical(v *assessment.Variant, s assessment.Session) (ClinicalRequest, error) {
	ans, err := requiredAnswers(s, v.PayloadIDs)
	if err != nil {
		return ClinicalRequest{}, err
	}
	return ClinicalRequest{
		Age:                 s.Basic.Age,
		AgeAtDiagnosis:      s.Basic.AgeAtDiagnosis,
		Height:              s.Basic.HeightCM,
		Weight:              s.Basic.WeightKG,
		BMI:                 assessment.BMI(s.Basic.HeightCM, s.Basic.WeightKG),
		Gender:              s.Basic.Gender,
		Handedness:          s.Basic.Handedness,
		AppearanceInKinship: s.Basic.FamilyHistory,
		SubjectID:           s.Basic.SubjectID,
		Q01:                 ans["01"], Q02: ans["02"], Q03: ans["03"], Q04: ans["04"], Q05: ans["05"],
		Q06: ans["06"], Q07: ans["07"], Q08: ans["08"], Q09: ans["09"], Q10: ans["10"],
		Q11: ans["11"], Q12: ans["12"], Q13: ans["13"], Q14: ans["14"], Q15: ans["15"],
		Q16: ans["16"], Q17: ans["17"], Q18: ans["18"], Q19: ans["19"], Q20: ans["20"],
		Q21: ans["21"], Q22: ans["22"], Q23: ans["23"], Q24: ans["24"], Q25: ans["25"],
		Q26: ans["26"], Q27: ans["27"], Q28: ans["28"], Q29: ans["29"], Q30: ans["30"],
	}, nil
}

func AssembleMotion(v *assessment.Variant, s assessment.Session) (MotionRequest, error) {
	ans, err := requiredAnswers(s, v.PayloadIDs)
	if err != nil {
		return MotionRequest{}, err
	}
	return MotionRequest{
		Age:                 s.Basic.Age,
		AgeAtDiagnosis:      s.Basic.AgeAtDiagnosis,
		Gender:              s.Basic.Gender,
		AppearanceInKinship: s.Basic.FamilyHistory,
		Q02:                 ans["02"],
		Q03:                 ans["03"],
		Q09:                 ans["09"],
		Q13:                 ans["13"],
		Q17:                 ans["17"],
		Q20:                 ans["20"],
	}, nil
}

func AssembleScreening(v *assessment.Variant, s assessment.Session) (ScreeningRequest, error) {
	ans, err := requiredAnswers(s, v.PayloadIDs)
	if err != nil {
		return ScreeningRequest{}, err
	}
	return ScreeningRequest{
		Age:                 s.Basic.Age,
		AgeAtDiagnosis:      s.Basic.AgeAtDiagnosis,
		Gender:              s.Basic.Gender,
		AppearanceInKinship: s.Basic.FamilyHistory,
		Q02:                 ans["02"],
		Q03:                 ans["03"],
		Q09:                 ans["09"],
		Q13:                 ans["13"],
		Q17:                 ans["17"],
		Q20:                 ans["20"],
	}, nil
}
