package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	appanalytics "github.com/patriot1176/private-eye-sales-prospect/internal/application/analytics"
	appprospects "github.com/patriot1176/private-eye-sales-prospect/internal/application/prospects"
	domai "github.com/patriot1176/private-eye-sales-prospect/internal/domain/ai"
	domain "github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
	"github.com/patriot1176/private-eye-sales-prospect/internal/middleware"
)

type Router struct {
	prospectsSvc *appprospects.Service
	analyticsSvc *appanalytics.Service
}

func NewRouter(prospectsSvc *appprospects.Service, analyticsSvc *appanalytics.Service) http.Handler {
	r := &Router{prospectsSvc: prospectsSvc, analyticsSvc: analyticsSvc}
	mux := chi.NewRouter()

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/profiles/generate", r.wrap(r.handleGenerate))
		rt.Get("/profiles", r.wrap(r.handleLatest))
		rt.Get("/profiles/paged", r.wrap(r.handlePaginate))
		rt.Get("/profiles/{id}", r.wrap(r.handleGet))
		rt.Delete("/profiles/{id}", r.wrap(r.handleDelete))
		rt.Post("/profiles/{id}/regenerate", r.wrap(r.handleRegenerate))
		rt.Get("/analytics", r.wrap(r.handleAnalytics))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var verr domain.ValidationError
			if errors.As(err, &verr) {
				http.Error(w, verr.Error(), http.StatusBadRequest)
				return
			}
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			if errors.Is(err, domai.ErrQuotaExceeded) {
				http.Error(w, "generator quota exceeded", http.StatusTooManyRequests)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// generateRequest juga terima "prospectName" - alias lama dari payload UI
type generateRequest struct {
	TargetName        string `json:"targetName"`
	ProspectName      string `json:"prospectName"`
	CompanyName       string `json:"companyName"`
	AdditionalContext string `json:"additionalContext"`
}

// POST /v1/profiles/generate
// Body: {"targetName": "...", "companyName": "...", "additionalContext": "..."}
// ?async=1 queues the generation and returns 202 immediately.
func (r *Router) handleGenerate(w http.ResponseWriter, req *http.Request) error {
	var body generateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return domain.ValidationError("invalid request body")
	}
	if body.TargetName == "" {
		body.TargetName = body.ProspectName
	}

	if err := middleware.ValidateTargetName(body.TargetName); err != nil {
		return err
	}
	if err := middleware.ValidateCompanyName(body.CompanyName); err != nil {
		return err
	}
	if err := middleware.ValidateContext(body.AdditionalContext); err != nil {
		return err
	}

	cmd := appprospects.GenerateCommand{
		TargetName:        middleware.SanitizeString(body.TargetName),
		CompanyName:       middleware.SanitizeString(body.CompanyName),
		AdditionalContext: middleware.SanitizeString(body.AdditionalContext),
	}

	if req.URL.Query().Get("async") == "1" {
		placeholder, err := r.prospectsSvc.Begin(req.Context(), cmd)
		if err != nil {
			return err
		}

		// 🚀 Jalankan di background, biar jalan sampai selesai
		go func() {
			middleware.IncrementGenerationsRunning()
			defer middleware.DecrementGenerationsRunning()

			done, err := r.prospectsSvc.FinishUntilDone(placeholder)
			if err != nil {
				log.Printf("background generation error for profile=%s company=%s: %v",
					placeholder.ID, cmd.CompanyName, err)
				middleware.IncrementGenerationsFailed()
				return
			}
			middleware.IncrementProfiles()
			log.Printf("generation finished: profile=%s status=%s", done.ID, done.Status)
		}()

		// 🔙 langsung balikin respons ke client
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		return json.NewEncoder(w).Encode(map[string]any{
			"id":       placeholder.ID,
			"status":   "queued",
			"queuedAt": time.Now(),
		})
	}

	profile, err := r.prospectsSvc.Generate(req.Context(), cmd)
	if err != nil {
		middleware.IncrementGenerationsFailed()
		return err
	}
	middleware.IncrementProfiles()

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"profile": profile,
	})
}

// GET /v1/profiles?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.prospectsSvc.Latest(req.Context(), limit)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/profiles/paged?page=&page_size=&status=&q=
func (r *Router) handlePaginate(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))
	size = middleware.ValidatePageSize(size)

	filters := map[string]any{}
	if status := req.URL.Query().Get("status"); status != "" {
		if err := middleware.ValidateStatus(status); err != nil {
			return err
		}
		filters["status"] = status
	}
	if q := req.URL.Query().Get("q"); q != "" {
		filters["q"] = middleware.SanitizeString(q)
	}

	result, err := r.prospectsSvc.Paginate(req.Context(), page, size, filters)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(result)
}

// GET /v1/profiles/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateProfileID(id); err != nil {
		return err
	}

	profile, err := r.prospectsSvc.Get(req.Context(), domain.ProfileID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(profile)
}

// DELETE /v1/profiles/{id}
func (r *Router) handleDelete(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateProfileID(id); err != nil {
		return err
	}

	if err := r.prospectsSvc.Delete(req.Context(), domain.ProfileID(id)); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{
		"deleted": true,
		"id":      id,
	})
}

// POST /v1/profiles/{id}/regenerate
func (r *Router) handleRegenerate(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateProfileID(id); err != nil {
		return err
	}

	profile, err := r.prospectsSvc.Regenerate(req.Context(), domain.ProfileID(id))
	if err != nil {
		return err
	}
	middleware.IncrementProfiles()

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"profile": profile,
	})
}

// GET /v1/analytics
func (r *Router) handleAnalytics(w http.ResponseWriter, req *http.Request) error {
	report, err := r.analyticsSvc.Report(req.Context())
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(report)
}
