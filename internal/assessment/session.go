package assessment

// BasicInfo holds the demographic fields collected on the basic-info step.
// Which of them are mandatory depends on the variant.
type BasicInfo struct {
	Age            int
	AgeAtDiagnosis int
	HeightCM       float64
	WeightKG       float64
	Gender         string
	Handedness     string
	FamilyHistory  string
	SubjectID      int
}

// HealthHistory records the diagnosed-conditions checklist from the
// motion variant's health-history step.
type HealthHistory struct {
	HasConditions bool
	Conditions    []string
}

// Session is the full state of one assessment attempt. It is a value
// object: Apply never mutates the session it is given, and the hosting
// layer is responsible for persisting the returned value between user
// actions.
type Session struct {
	StepIndex      int
	Basic          BasicInfo
	ConsentGiven   bool
	History        HealthHistory
	MotionUploaded bool
	Answers        map[QuestionID]bool
}

func NewSession() Session {
	return Session{Answers: make(map[QuestionID]bool)}
}

func (s Session) clone() Session {
	out := s
	out.Answers = make(map[QuestionID]bool, len(s.Answers))
	for id, v := range s.Answers {
		out.Answers[id] = v
	}
	if s.History.Conditions != nil {
		out.History.Conditions = make([]string, len(s.History.Conditions))
		copy(out.History.Conditions, s.History.Conditions)
	}
	return out
}

// BMI computes body mass index from height in centimeters and weight in
// kilograms. Returns 0 when height is not set.
func BMI(heightCM, weightKG float64) float64 {
	if heightCM <= 0 {
		return 0
	}
	m := heightCM / 100
	return weightKG / (m * m)
}

func BMIBand(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}
