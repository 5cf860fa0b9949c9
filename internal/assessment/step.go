package assessment

// Step is one screen of the assessment wizard. Not every variant uses
// every step; each variant declares its own ordered subset.
type Step int

const (
	StepWelcome Step = iota
	StepBasicInfo
	StepHealthHistory
	StepMotionIntro
	StepMotionUpload
	StepQuestionnaire
	StepResults
	StepClosing
)

func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepBasicInfo:
		return "basic_info"
	case StepHealthHistory:
		return "health_history"
	case StepMotionIntro:
		return "motion_intro"
	case StepMotionUpload:
		return "motion_upload"
	case StepQuestionnaire:
		return "questionnaire"
	case StepResults:
		return "results"
	case StepClosing:
		return "closing"
	default:
		return "unknown"
	}
}
