package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apphistory "github.com/premesh-10/HealthMateAI/internal/application/history"
	apptriage "github.com/premesh-10/HealthMateAI/internal/application/triage"
	domain "github.com/premesh-10/HealthMateAI/internal/domain/history"
	"github.com/premesh-10/HealthMateAI/internal/domain/inference"
	"github.com/premesh-10/HealthMateAI/internal/middleware"
)

// Archiver keeps a copy of exported artifacts in object storage.
type Archiver interface {
	Archive(ctx context.Context, key, csv string) (string, error)
}

type Router struct {
	triageSvc  *apptriage.Service
	historySvc *apphistory.Service
	archive    Archiver // optional
}

func NewRouter(triageSvc *apptriage.Service, historySvc *apphistory.Service, archive Archiver, apiKey string) http.Handler {
	r := &Router{triageSvc: triageSvc, historySvc: historySvc, archive: archive}
	mux := chi.NewRouter()

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/symptom-check", r.wrap(r.handleSymptomCheck))
		rt.Post("/results", r.wrap(r.handleSaveResult))
		rt.Get("/results/{id}", r.wrap(r.handleGetResult))
		rt.Get("/history", r.wrap(r.handleHistory))
		rt.Get("/history/export", r.wrap(r.handleExport))
		rt.With(middleware.BearerAuth(apiKey)).Delete("/results/{id}", r.wrap(r.handleDeleteResult))
		rt.With(middleware.BearerAuth(apiKey)).Get("/failures", r.wrap(r.handleFailures))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap converts handler errors into the {"detail": ...} error body the
// clients expect, mapping known error kinds to status codes.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				writeDetail(w, http.StatusNotFound, "Result not found")
			case errors.Is(err, inference.ErrQuotaExceeded):
				writeDetail(w, http.StatusTooManyRequests, "inference quota exceeded")
			case errors.Is(err, apptriage.ErrEmptySymptoms), errors.Is(err, apphistory.ErrEmptySymptoms):
				writeDetail(w, http.StatusBadRequest, err.Error())
			default:
				writeDetail(w, http.StatusInternalServerError, err.Error())
			}
		}
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// POST /v1/symptom-check
// Body: {"symptoms": "headache, sore throat, mild fever"}
func (r *Router) handleSymptomCheck(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Symptoms string `json:"symptoms"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return nil
	}
	if err := middleware.ValidateSymptoms(body.Symptoms); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return nil
	}

	middleware.IncrementChecks()
	result, err := r.triageSvc.Check(req.Context(), body.Symptoms)
	if err != nil {
		middleware.IncrementChecksFailed()
		if errors.Is(err, inference.ErrQuotaExceeded) {
			return err
		}
		return fmt.Errorf("Triage inference failed: %w", err)
	}

	return writeJSON(w, result)
}

// POST /v1/results
func (r *Router) handleSaveResult(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Symptoms string          `json:"symptoms"`
		Result   json.RawMessage `json:"result"`
		Metadata map[string]any  `json:"metadata"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return nil
	}

	cmd := apphistory.SaveCommand{Symptoms: body.Symptoms, Metadata: body.Metadata}
	if len(body.Result) > 0 {
		if err := json.Unmarshal(body.Result, &cmd.Result); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid result payload")
			return nil
		}
	}

	rec, err := r.historySvc.Save(req.Context(), cmd)
	if err != nil {
		return err
	}
	return writeJSON(w, rec)
}

// GET /v1/results/{id}
func (r *Router) handleGetResult(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateRecordID(id); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return nil
	}

	rec, err := r.historySvc.Get(req.Context(), domain.RecordID(id))
	if err != nil {
		return err
	}
	if rec == nil {
		writeDetail(w, http.StatusNotFound, "Result not found")
		return nil
	}
	return writeJSON(w, rec)
}

// GET /v1/history?limit=50&skip=0
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	skip, _ := strconv.Atoi(req.URL.Query().Get("skip"))

	records, err := r.historySvc.List(req.Context(), limit, skip)
	if err != nil {
		return err
	}
	if records == nil {
		records = []*domain.AnalysisRecord{}
	}
	return writeJSON(w, records)
}

// DELETE /v1/results/{id}
func (r *Router) handleDeleteResult(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateRecordID(id); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return nil
	}

	if err := r.historySvc.Delete(req.Context(), domain.RecordID(id)); err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"message": fmt.Sprintf("Result %s deleted successfully", id)})
}

// GET /v1/failures?limit=20
func (r *Router) handleFailures(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	failures, err := r.triageSvc.RecentFailures(req.Context(), limit)
	if err != nil {
		return err
	}
	if failures == nil {
		failures = []*domain.InferenceFailure{}
	}
	return writeJSON(w, failures)
}

// GET /v1/history/export?search=
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	csv, filename, err := r.historySvc.Export(req.Context(), req.URL.Query().Get("search"))
	if err != nil {
		if errors.Is(err, domain.ErrNothingToExport) {
			writeDetail(w, http.StatusNotFound, "nothing to export")
			return nil
		}
		return err
	}

	// archive a copy, best effort
	if r.archive != nil {
		if _, aerr := r.archive.Archive(req.Context(), filename, csv); aerr != nil {
			log.Printf("export archive failed: %v", aerr)
		}
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, err = w.Write([]byte(csv))
	return err
}
