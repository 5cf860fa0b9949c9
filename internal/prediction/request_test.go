package prediction

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/yahyarisas/spark-app/internal/assessment"
)

func completedScreeningSession() assessment.Session {
	s := assessment.NewSession()
	s.Basic = assessment.BasicInfo{Age: 65, Gender: "Male", FamilyHistory: "No"}
	for _, id := range []assessment.QuestionID{"02", "03", "09", "13", "17", "20"} {
		s.Answers[id] = false
	}
	return s
}

func TestAssembleScreeningRequiresEveryAnswer(t *testing.T) {
	v := assessment.Screening()
	s := completedScreeningSession()
	delete(s.Answers, "17")

	if _, err := AssembleScreening(v, s); err == nil {
		t.Fatal("expected assembly to fail with a missing answer")
	} else if !strings.Contains(err.Error(), `"17"`) {
		t.Fatalf("error should name the missing id, got %v", err)
	}
}

func TestAssembleScreeningWireKeys(t *testing.T) {
	v := assessment.Screening()
	s := completedScreeningSession()
	s.Answers["02"] = true

	req, err := AssembleScreening(v, s)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var wire map[string]any
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"age", "age_at_diagnosis", "gender", "appearance_in_kinship", "02", "03", "09", "13", "17", "20"} {
		if _, ok := wire[key]; !ok {
			t.Fatalf("payload missing key %q: %s", key, raw)
		}
	}
	if wire["02"] != true {
		t.Fatalf(`expected "02": true on the wire, got %v`, wire["02"])
	}
	if wire["age"] != float64(65) {
		t.Fatalf("expected age 65, got %v", wire["age"])
	}
}

func TestAssembleClinicalComputesBMI(t *testing.T) {
	v := assessment.Clinical()
	s := assessment.NewSession()
	s.Basic = assessment.BasicInfo{
		Age: 65, Gender: "Male", FamilyHistory: "No",
		HeightCM: 170, WeightKG: 70, Handedness: "Right",
	}
	for _, id := range v.PayloadIDs {
		s.Answers[id] = false
	}

	req, err := AssembleClinical(v, s)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if req.BMI < 24.0 || req.BMI > 24.5 {
		t.Fatalf("expected BMI ~24.2, got %.2f", req.BMI)
	}
	if req.Handedness != "Right" {
		t.Fatalf("expected handedness carried through, got %q", req.Handedness)
	}
}
