package assessment

import "fmt"

// Contract names the response shape the prediction service uses for a
// variant: a continuous risk probability or a discrete class code.
type Contract string

const (
	ContractProbability Contract = "probability"
	ContractClass       Contract = "class"
)

// Variant describes one of the three assessment wizards: its step
// sequence, question bank, which demographic fields are mandatory and
// which question ids end up in the prediction payload.
type Variant struct {
	Name           string
	Title          string
	Steps          []Step
	Bank           *Bank
	PayloadIDs     []QuestionID
	RequireConsent bool
	RequireBody    bool // height, weight and handedness are mandatory
	AllowLookup    bool
	Contract       Contract
}

// CurrentStep maps the session's step index onto the variant's sequence.
func (v *Variant) CurrentStep(s Session) Step {
	if s.StepIndex < 0 || s.StepIndex >= len(v.Steps) {
		return v.Steps[0]
	}
	return v.Steps[s.StepIndex]
}

func (v *Variant) stepIndex(step Step) int {
	for i, st := range v.Steps {
		if st == step {
			return i
		}
	}
	return -1
}

// featureIDs is the six-question feature set the trained model consumes;
// the motion and screening payloads carry exactly these.
var featureIDs = []QuestionID{"02", "03", "09", "13", "17", "20"}

var questionText = map[QuestionID]string{
	"01": "Do you have trouble getting up from a chair?",
	"02": "Has your handwriting become smaller or more cramped?",
	"03": "Do people have trouble understanding your speech?",
	"04": "Do you have trouble with buttons or shoelaces?",
	"05": "Do you drag your feet or take smaller steps when walking?",
	"06": "Do you have trouble with your balance?",
	"07": "Do you fall more often than you used to?",
	"08": "Do you have trouble turning in bed?",
	"09": "Do you have trouble with daily activities like bathing or dressing?",
	"10": "Do you have difficulty swallowing food or drink?",
	"11": "Do you drool during the day or at night?",
	"12": "Have you noticed a change in your voice?",
	"13": "Do you have trouble with fine motor tasks?",
	"14": "Do you have stiffness in your arms or legs?",
	"15": "Do you have tremor or shaking in your hands?",
	"16": "Do you have trouble with coordination?",
	"17": "Do you feel tired more often than usual?",
	"18": "Do you have trouble sleeping at night?",
	"19": "Do you have vivid dreams or nightmares?",
	"20": "Do you experience depression or anxiety?",
	"21": "Do you have trouble concentrating?",
	"22": "Do you have memory problems?",
	"23": "Do you have constipation?",
	"24": "Do you have a decreased sense of smell?",
	"25": "Do you have trouble controlling your bladder?",
	"26": "Do you have sexual problems?",
	"27": "Do you experience dizziness when standing up?",
	"28": "Do you have pain in your muscles or joints?",
	"29": "Do you sweat excessively?",
	"30": "Do you have restless legs at night?",
}

func bankOf(ids ...QuestionID) *Bank {
	qs := make([]Question, 0, len(ids))
	for _, id := range ids {
		qs = append(qs, Question{ID: id, Text: questionText[id]})
	}
	return NewBank(qs...)
}

// MotionConditions is the checklist offered on the health-history step.
var MotionConditions = []string{
	"Arthritis",
	"Essential Tremor",
	"Multiple Sclerosis",
	"Stroke",
	"Muscle weakness",
	"Joint problems",
	"Other neurological conditions",
}

// Clinical is the full 30-question assessment: no consent gate, full
// demographics including body measurements, probability response.
func Clinical() *Variant {
	ids := make([]QuestionID, 0, 30)
	for i := 1; i <= 30; i++ {
		ids = append(ids, QuestionID(fmt.Sprintf("%02d", i)))
	}
	return &Variant{
		Name:        "clinical",
		Title:       "Parkinson's Health Assessment",
		Steps:       []Step{StepBasicInfo, StepQuestionnaire, StepResults},
		Bank:        bankOf(ids...),
		PayloadIDs:  ids,
		RequireBody: true,
		Contract:    ContractProbability,
	}
}

// Motion is the guided motion-health screening: welcome and closing
// copy, consent gate, health history, optional motion-data upload with a
// skip path. Ten questions are asked; six feature ids go on the wire.
func Motion() *Variant {
	return &Variant{
		Name:  "motion",
		Title: "Motion Health Assessment",
		Steps: []Step{
			StepWelcome, StepBasicInfo, StepHealthHistory,
			StepMotionIntro, StepMotionUpload,
			StepQuestionnaire, StepResults, StepClosing,
		},
		Bank:           bankOf("01", "02", "03", "05", "06", "09", "13", "15", "17", "20"),
		PayloadIDs:     featureIDs,
		RequireConsent: true,
		Contract:       ContractProbability,
	}
}

// Screening is the short six-question wizard with dataset lookup
// pre-fill and a discrete class response.
func Screening() *Variant {
	return &Variant{
		Name:           "screening",
		Title:          "Neurological Screening",
		Steps:          []Step{StepWelcome, StepBasicInfo, StepQuestionnaire, StepResults},
		Bank:           bankOf(featureIDs...),
		PayloadIDs:     featureIDs,
		RequireConsent: true,
		AllowLookup:    true,
		Contract:       ContractClass,
	}
}

// Variants returns the registry of all three wizards keyed by name.
func Variants() map[string]*Variant {
	out := make(map[string]*Variant, 3)
	for _, v := range []*Variant{Clinical(), Motion(), Screening()} {
		out[v.Name] = v
	}
	return out
}
