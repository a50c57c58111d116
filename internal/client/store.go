package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/premesh-10/HealthMateAI/internal/application"
	"github.com/premesh-10/HealthMateAI/internal/domain/history"
	"github.com/premesh-10/HealthMateAI/internal/domain/triage"
)

// CreateTimeout is the cancellation budget for one save request.
const CreateTimeout = 20 * time.Second

// ShadowCache is the local write-through cache the store maintains on
// successful creates.
type ShadowCache interface {
	Load() []CachedResult
	Prepend(CachedResult) error
}

// CredentialSource yields the bearer credential attached to deletes.
// Absence of a credential is not an error; the request is still attempted
// unauthenticated.
type CredentialSource interface {
	Token() (string, bool)
}

// FileCredentials reads a bearer token from local persisted state.
type FileCredentials struct {
	Path string
}

func (f FileCredentials) Token() (string, bool) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

// Store performs create, list, and delete against the remote record store.
type Store struct {
	BaseURL     string
	HTTPClient  *http.Client
	Cache       ShadowCache      // optional
	Credentials CredentialSource // optional
	Clock       application.Clock
}

func NewStore(baseURL string, httpClient *http.Client, cache ShadowCache, creds CredentialSource) *Store {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Store{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		HTTPClient:  httpClient,
		Cache:       cache,
		Credentials: creds,
		Clock:       application.SystemClock{},
	}
}

// Create persists one completed analysis. On success a shadow copy is
// prepended to the local cache; a cache write failure never fails the save
// because the server response is authoritative. On remote failure the
// cache is left untouched and the error is surfaced without retry.
func (s *Store) Create(ctx context.Context, symptoms string, result triage.RawResult, metadata map[string]any) (*history.AnalysisRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, CreateTimeout)
	defer cancel()

	payload, _ := json.Marshal(map[string]any{
		"symptoms": symptoms,
		"result":   result,
		"metadata": metadata,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/v1/results", bytes.NewReader(payload))
	if err != nil {
		return nil, &NetworkError{Op: "create", Err: err}
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
			return nil, &NetworkError{Op: "create", Err: err}
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Detail: decodeDetail(resp)}
	}

	var rec history.AnalysisRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Detail: genericErrorDetail}
	}

	if s.Cache != nil {
		// best effort; cache failures are silently ignored
		_ = s.Cache.Prepend(CachedResult{
			SavedAt:   s.Clock.Now(),
			Symptoms:  rec.Symptoms,
			Result:    rec.Result,
			BackendID: string(rec.ID),
			CreatedAt: rec.CreatedAt,
		})
	}
	return &rec, nil
}

// List fetches stored records with pagination. A cancelled call yields
// ErrCancelled, which callers treat as "superseded", not a user-facing
// failure. Any other failure carries a best-effort detail message.
func (s *Store) List(ctx context.Context, limit, skip int) ([]*history.AnalysisRecord, error) {
	u := fmt.Sprintf("%s/v1/history?limit=%d&skip=%d", s.BaseURL, limit, skip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &LoadError{Detail: err.Error()}
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, ErrCancelled
		}
		return nil, &LoadError{Detail: unwrapDetail(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &LoadError{Detail: decodeDetail(resp)}
	}

	var records []*history.AnalysisRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &LoadError{Detail: genericErrorDetail}
	}
	return records, nil
}

// Delete removes one record. The caller removes the entry from its view
// optimistically before this resolves; a failure here is reported but the
// optimistic removal is not rolled back.
func (s *Store) Delete(ctx context.Context, id history.RecordID) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.BaseURL+"/v1/results/"+string(id), nil)
	if err != nil {
		return &NetworkError{Op: "delete", Err: err}
	}
	if s.Credentials != nil {
		if token, ok := s.Credentials.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return ErrCancelled
		}
		return &NetworkError{Op: "delete", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServiceError{StatusCode: resp.StatusCode, Detail: decodeDetail(resp)}
	}
	return nil
}

// unwrapDetail strips the url.Error wrapper so load notices stay readable.
func unwrapDetail(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err.Error()
	}
	return err.Error()
}
