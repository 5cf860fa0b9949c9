package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ErrUnavailable covers every way the prediction service can fail to
// produce a usable result: transport errors, non-2xx statuses and
// responses missing or mangling the prediction field. Callers treat all
// of them identically and re-render the current step.
var ErrUnavailable = errors.New("prediction service unavailable")

// Result labels, closed set.
const (
	LabelLowRisk    = "Low Risk"
	LabelHighRisk   = "High Risk"
	LabelHealthy    = "Healthy"
	LabelParkinsons = "Parkinson's Disease"
	LabelOtherMotor = "Other Motor Disease"
)

// Outcome is the translated service response shown on the results step.
type Outcome struct {
	Label       string   `json:"label"`
	Class       *int     `json:"class,omitempty"`
	Probability *float64 `json:"probability,omitempty"`
	ProbClass0  *float64 `json:"prob_class_0,omitempty"`
	ProbClass1  *float64 `json:"prob_class_1,omitempty"`
}

// Client is the HTTP client for the remote prediction service. One
// unary call per assessment, no retries; the transport timeout is the
// only deadline.
type Client struct {
	http       *http.Client
	predictURL string
	subjectURL string
	log        zerolog.Logger
}

func NewClient(predictURL, subjectURL string, log zerolog.Logger) *Client {
	return &Client{
		http:       &http.Client{Timeout: 15 * time.Second},
		predictURL: predictURL,
		subjectURL: subjectURL,
		log:        log,
	}
}

type wireResponse struct {
	Prediction *float64 `json:"prediction"`
	ProbClass0 *float64 `json:"prob_class_0"`
	ProbClass1 *float64 `json:"prob_class_1"`
	Err        string   `json:"error"`
}

func (c *Client) post(ctx context.Context, url string, payload any) (*wireResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("prediction request failed")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("prediction service returned non-OK status")
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if wire.Err != "" {
		return nil, fmt.Errorf("%w: service error: %s", ErrUnavailable, wire.Err)
	}
	if wire.Prediction == nil {
		return nil, fmt.Errorf("%w: response missing prediction", ErrUnavailable)
	}
	return &wire, nil
}

// PredictRisk calls the probability-contract endpoint: prediction is a
// score in [0,1] and anything above 0.5 counts as elevated risk.
func (c *Client) PredictRisk(ctx context.Context, payload any) (Outcome, error) {
	wire, err := c.post(ctx, c.predictURL, payload)
	if err != nil {
		return Outcome{}, err
	}

	label := LabelLowRisk
	if *wire.Prediction > 0.5 {
		label = LabelHighRisk
	}
	return Outcome{
		Label:       label,
		Probability: wire.Prediction,
		ProbClass0:  wire.ProbClass0,
		ProbClass1:  wire.ProbClass1,
	}, nil
}

// PredictClass calls the class-contract endpoint: prediction is a
// discrete code in {0,1,2}.
func (c *Client) PredictClass(ctx context.Context, payload any) (Outcome, error) {
	wire, err := c.post(ctx, c.predictURL, payload)
	if err != nil {
		return Outcome{}, err
	}
	return classOutcome(wire)
}

// PredictClassBySubject calls the alternate endpoint that takes only an
// opaque subject identifier; the response contract matches PredictClass.
func (c *Client) PredictClassBySubject(ctx context.Context, subjectID string) (Outcome, error) {
	wire, err := c.post(ctx, c.subjectURL, SubjectRequest{SubjectID: subjectID})
	if err != nil {
		return Outcome{}, err
	}
	return classOutcome(wire)
}

func classOutcome(wire *wireResponse) (Outcome, error) {
	code := int(*wire.Prediction)
	if float64(code) != *wire.Prediction || code < 0 || code > 2 {
		return Outcome{}, fmt.Errorf("%w: prediction %v is not a known class", ErrUnavailable, *wire.Prediction)
	}

	labels := [...]string{LabelHealthy, LabelParkinsons, LabelOtherMotor}
	return Outcome{
		Label:      labels[code],
		Class:      &code,
		ProbClass0: wire.ProbClass0,
		ProbClass1: wire.ProbClass1,
	}, nil
}
