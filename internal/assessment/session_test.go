package assessment

import (
	"math"
	"testing"
)

func TestBMI(t *testing.T) {
	got := BMI(170, 70)
	if math.Abs(got-24.22) > 0.01 {
		t.Fatalf("BMI(170, 70) = %.2f, want ~24.22", got)
	}
	if BMI(0, 70) != 0 {
		t.Fatal("BMI with zero height should be 0")
	}
}

func TestBMIBand(t *testing.T) {
	cases := []struct {
		bmi  float64
		want string
	}{
		{17, "Underweight"},
		{22, "Normal"},
		{27, "Overweight"},
		{33, "Obese"},
		{0, ""},
	}
	for _, tc := range cases {
		if got := BMIBand(tc.bmi); got != tc.want {
			t.Fatalf("BMIBand(%.1f) = %q, want %q", tc.bmi, got, tc.want)
		}
	}
}
