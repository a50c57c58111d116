package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "http://healthmate.test"

func newMockedSession(t *testing.T) *Session {
	t.Helper()
	httpClient := &http.Client{}
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewSession(testBase, httpClient)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	s := newMockedSession(t)

	_, err := s.Analyze(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptySymptoms)
	assert.Zero(t, httpmock.GetTotalCallCount(), "no network attempt for empty input")
}

func TestAnalyzeSuccess(t *testing.T) {
	s := newMockedSession(t)
	httpmock.RegisterResponder(http.MethodPost, testBase+"/v1/symptom-check",
		httpmock.NewStringResponder(200, `{"conditions":[{"name":"Common Cold","confidence":0.72}],"disclaimer":"d"}`))

	raw, err := s.Analyze(context.Background(), "sore throat")
	require.NoError(t, err)
	require.Len(t, raw.Conditions, 1)
	assert.Equal(t, "Common Cold", raw.Conditions[0].Name)
}

func TestAnalyzeServiceError(t *testing.T) {
	s := newMockedSession(t)
	httpmock.RegisterResponder(http.MethodPost, testBase+"/v1/symptom-check",
		httpmock.NewStringResponder(500, `{"detail":"Triage inference failed: provider down"}`))

	_, err := s.Analyze(context.Background(), "sore throat")
	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 500, serr.StatusCode)
	assert.Equal(t, "Triage inference failed: provider down", serr.Detail)
}

func TestAnalyzeServiceErrorUnparsableBody(t *testing.T) {
	s := newMockedSession(t)
	httpmock.RegisterResponder(http.MethodPost, testBase+"/v1/symptom-check",
		httpmock.NewStringResponder(502, `<html>bad gateway</html>`))

	_, err := s.Analyze(context.Background(), "sore throat")
	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, genericErrorDetail, serr.Detail)
}

func TestAnalyzeTimeout(t *testing.T) {
	s := newMockedSession(t)
	httpmock.RegisterResponder(http.MethodPost, testBase+"/v1/symptom-check",
		httpmock.NewErrorResponder(context.DeadlineExceeded))

	_, err := s.Analyze(context.Background(), "sore throat")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestAnalyzeCancelled(t *testing.T) {
	s := newMockedSession(t)
	httpmock.RegisterResponder(http.MethodPost, testBase+"/v1/symptom-check",
		httpmock.NewErrorResponder(context.Canceled))

	_, err := s.Analyze(context.Background(), "sore throat")
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestAnalyzeNetworkError(t *testing.T) {
	s := newMockedSession(t)
	httpmock.RegisterResponder(http.MethodPost, testBase+"/v1/symptom-check",
		httpmock.NewErrorResponder(errors.New("connection refused")))

	_, err := s.Analyze(context.Background(), "sore throat")
	var nerr *NetworkError
	assert.ErrorAs(t, err, &nerr)
}

func TestAnalyzeSingleInFlight(t *testing.T) {
	s := newMockedSession(t)

	inFlight := make(chan struct{}, 2)
	release := make(chan struct{})
	httpmock.RegisterResponder(http.MethodPost, testBase+"/v1/symptom-check",
		func(req *http.Request) (*http.Response, error) {
			inFlight <- struct{}{}
			<-release
			return httpmock.NewStringResponse(200, `{"conditions":[],"disclaimer":"d"}`), nil
		})

	done := make(chan error, 1)
	go func() {
		_, err := s.Analyze(context.Background(), "first submission")
		done <- err
	}()

	// wait until the first request is actually in flight
	select {
	case <-inFlight:
	case <-time.After(time.Second):
		t.Fatal("first request never started")
	}

	_, err := s.Analyze(context.Background(), "second submission")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)

	// the session accepts a new submission once the first completed
	_, err = s.Analyze(context.Background(), "third submission")
	require.NoError(t, err)
}
