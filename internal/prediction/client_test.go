package prediction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func testClient(url string) *Client {
	return NewClient(url, url, zerolog.Nop())
}

func fakeService(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestPredictRiskThreshold(t *testing.T) {
	srv := fakeService(t, http.StatusOK, `{"prediction": 0.82, "prob_class_0": 0.18, "prob_class_1": 0.82}`)
	defer srv.Close()

	out, err := testClient(srv.URL).PredictRisk(context.Background(), MotionRequest{Age: 65})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Label != LabelHighRisk {
		t.Fatalf("expected %q for 0.82, got %q", LabelHighRisk, out.Label)
	}
	if out.ProbClass1 == nil || *out.ProbClass1 != 0.82 {
		t.Fatalf("expected prob_class_1 passthrough, got %+v", out)
	}
}

func TestPredictRiskLow(t *testing.T) {
	srv := fakeService(t, http.StatusOK, `{"prediction": 0.1}`)
	defer srv.Close()

	out, err := testClient(srv.URL).PredictRisk(context.Background(), MotionRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Label != LabelLowRisk {
		t.Fatalf("expected %q, got %q", LabelLowRisk, out.Label)
	}
}

func TestPredictClassLabels(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"prediction": 0}`, LabelHealthy},
		{`{"prediction": 1}`, LabelParkinsons},
		{`{"prediction": 2}`, LabelOtherMotor},
	}
	for _, tc := range cases {
		srv := fakeService(t, http.StatusOK, tc.body)
		out, err := testClient(srv.URL).PredictClass(context.Background(), ScreeningRequest{})
		srv.Close()
		if err != nil {
			t.Fatalf("body %s: unexpected error: %v", tc.body, err)
		}
		if out.Label != tc.want {
			t.Fatalf("body %s: expected %q, got %q", tc.body, tc.want, out.Label)
		}
	}
}

func TestPredictClassRejectsUnknownCode(t *testing.T) {
	srv := fakeService(t, http.StatusOK, `{"prediction": 7}`)
	defer srv.Close()

	_, err := testClient(srv.URL).PredictClass(context.Background(), ScreeningRequest{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for unknown class, got %v", err)
	}
}

func TestPredictUnavailableOnServerError(t *testing.T) {
	srv := fakeService(t, http.StatusInternalServerError, `boom`)
	defer srv.Close()

	_, err := testClient(srv.URL).PredictRisk(context.Background(), MotionRequest{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on 500, got %v", err)
	}
}

func TestPredictUnavailableOnMissingField(t *testing.T) {
	srv := fakeService(t, http.StatusOK, `{"confidence": 0.9}`)
	defer srv.Close()

	_, err := testClient(srv.URL).PredictRisk(context.Background(), MotionRequest{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable without prediction field, got %v", err)
	}
}

func TestPredictUnavailableOnErrorField(t *testing.T) {
	srv := fakeService(t, http.StatusOK, `{"error": "model not loaded"}`)
	defer srv.Close()

	_, err := testClient(srv.URL).PredictRisk(context.Background(), MotionRequest{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on error response, got %v", err)
	}
}

func TestPredictUnavailableOnConnectionFailure(t *testing.T) {
	srv := fakeService(t, http.StatusOK, `{}`)
	srv.Close() // nothing listening anymore

	_, err := testClient(srv.URL).PredictRisk(context.Background(), MotionRequest{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on transport failure, got %v", err)
	}
}

func TestPredictClassBySubjectSendsIdentifier(t *testing.T) {
	var got SubjectRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode subject request: %v", err)
		}
		w.Write([]byte(`{"prediction": 1}`))
	}))
	defer srv.Close()

	out, err := testClient(srv.URL).PredictClassBySubject(context.Background(), "subj-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SubjectID != "subj-42" {
		t.Fatalf("expected subject_id on the wire, got %+v", got)
	}
	if out.Label != LabelParkinsons {
		t.Fatalf("expected %q, got %q", LabelParkinsons, out.Label)
	}
}
