package assessment

import (
	"fmt"
	"strings"
)

// Action is one user input applied to a Session. Field-setting actions
// only record data; Next is the only action that runs exit validation.
type Action interface {
	isAction()
}

type SetBasicInfo struct{ Info BasicInfo }

type SetConsent struct{ Given bool }

type SetHealthHistory struct{ History HealthHistory }

type SetMotionUploaded struct{ Uploaded bool }

// Answer records one questionnaire response.
type Answer struct {
	ID  QuestionID
	Yes bool
}

// MergeDefaults pre-fills looked-up answers. Merged values are defaults
// only: ids the user has already answered are left alone, and a later
// Answer overrides a merged value for good.
type MergeDefaults struct{ Answers map[QuestionID]bool }

type Next struct{}

type Back struct{}

// SkipMotion jumps from the motion-intro step straight to the
// questionnaire, bypassing the upload step.
type SkipMotion struct{}

// Restart unconditionally discards the session and returns to the
// first step.
type Restart struct{}

func (SetBasicInfo) isAction()      {}
func (SetConsent) isAction()        {}
func (SetHealthHistory) isAction()  {}
func (SetMotionUploaded) isAction() {}
func (Answer) isAction()            {}
func (MergeDefaults) isAction()     {}
func (Next) isAction()              {}
func (Back) isAction()              {}
func (SkipMotion) isAction()        {}
func (Restart) isAction()           {}

// Apply runs one action against a session and returns the resulting
// session. The input session is never mutated; on error it is returned
// unchanged so the caller re-renders the same step. Apply performs no
// I/O: lookup resolution and prediction calls belong to the hosting
// layer, which feeds their results back in as actions.
func Apply(v *Variant, s Session, a Action) (Session, error) {
	next := s.clone()

	switch act := a.(type) {
	case SetBasicInfo:
		next.Basic = act.Info
	case SetConsent:
		next.ConsentGiven = act.Given
	case SetHealthHistory:
		next.History = act.History
		if act.History.Conditions != nil {
			next.History.Conditions = make([]string, len(act.History.Conditions))
			copy(next.History.Conditions, act.History.Conditions)
		}
	case SetMotionUploaded:
		next.MotionUploaded = act.Uploaded
	case Answer:
		if !v.Bank.Contains(act.ID) {
			return s, refuse("question %q is not part of this assessment", act.ID)
		}
		next.Answers[act.ID] = act.Yes
	case MergeDefaults:
		for id, val := range act.Answers {
			if !v.Bank.Contains(id) {
				continue
			}
			if _, answered := next.Answers[id]; answered {
				continue
			}
			next.Answers[id] = val
		}
	case Next:
		if err := v.validateExit(next); err != nil {
			return s, err
		}
		if next.StepIndex >= len(v.Steps)-1 {
			return s, refuse("assessment is already complete")
		}
		next.StepIndex++
	case Back:
		if next.StepIndex > 0 {
			next.StepIndex--
		}
	case SkipMotion:
		if v.CurrentStep(next) != StepMotionIntro {
			return s, refuse("nothing to skip on step %q", v.CurrentStep(next))
		}
		next.StepIndex = v.stepIndex(StepQuestionnaire)
	case Restart:
		next = NewSession()
	default:
		return s, fmt.Errorf("unsupported action %T", a)
	}

	return next, nil
}

// validateExit checks the step-exit precondition for the session's
// current step. Steps without a rule always pass.
func (v *Variant) validateExit(s Session) error {
	switch v.CurrentStep(s) {
	case StepBasicInfo:
		return v.validateBasicInfo(s)
	case StepQuestionnaire:
		answered := 0
		for _, id := range v.Bank.IDs() {
			if _, ok := s.Answers[id]; ok {
				answered++
			}
		}
		if answered != v.Bank.Len() {
			return &RefusedError{
				Reason:   "please answer all questions before proceeding",
				Answered: answered,
				Total:    v.Bank.Len(),
			}
		}
	}
	return nil
}

func (v *Variant) validateBasicInfo(s Session) error {
	if v.RequireConsent && !s.ConsentGiven {
		return refuse("consent is required to continue")
	}

	var missing []string
	if s.Basic.Age < 18 || s.Basic.Age > 120 {
		missing = append(missing, "age")
	}
	if s.Basic.Gender == "" {
		missing = append(missing, "gender")
	}
	if s.Basic.FamilyHistory == "" {
		missing = append(missing, "family history")
	}
	if v.RequireBody {
		if s.Basic.HeightCM <= 0 {
			missing = append(missing, "height")
		}
		if s.Basic.WeightKG <= 0 {
			missing = append(missing, "weight")
		}
		if s.Basic.Handedness == "" {
			missing = append(missing, "handedness")
		}
	}
	if len(missing) > 0 {
		return refuse("basic information incomplete: %s", strings.Join(missing, ", "))
	}
	return nil
}
