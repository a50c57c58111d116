package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/premesh-10/HealthMateAI/internal/domain/triage"
)

// AnalyzeTimeout is the hard cancellation budget for one analysis request,
// measured from request start.
const AnalyzeTimeout = 30 * time.Second

// Session issues analysis requests against the inference endpoint. At most
// one request is in flight per session; a second submission while one is
// running is rejected rather than queued.
type Session struct {
	BaseURL    string
	HTTPClient *http.Client

	busy atomic.Bool
}

func NewSession(baseURL string, httpClient *http.Client) *Session {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Session{BaseURL: strings.TrimRight(baseURL, "/"), HTTPClient: httpClient}
}

// Analyze submits the symptom text and returns the raw inference result,
// untouched. Normalization is the caller's job. Empty input fails locally
// without a network attempt.
func (s *Session) Analyze(ctx context.Context, symptoms string) (*triage.RawResult, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return nil, ErrEmptySymptoms
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	ctx, cancel := context.WithTimeout(ctx, AnalyzeTimeout)
	defer cancel()

	body, _ := json.Marshal(map[string]string{"symptoms": symptoms})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/v1/symptom-check", bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Op: "analyze", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return nil, ErrTimeout
		case errors.Is(err, context.Canceled):
			return nil, ErrCancelled
		default:
			return nil, &NetworkError{Op: "analyze", Err: err}
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Detail: decodeDetail(resp)}
	}

	var raw triage.RawResult
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Detail: genericErrorDetail}
	}
	return &raw, nil
}

// decodeDetail parses the {"detail": ...} error body, falling back to a
// generic message when the body is unparsable.
func decodeDetail(resp *http.Response) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || strings.TrimSpace(body.Detail) == "" {
		return genericErrorDetail
	}
	return body.Detail
}
