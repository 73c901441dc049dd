package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"

	"github.com/adpulse/ingestor/internal/ingest"
	"github.com/adpulse/ingestor/internal/models"
	"github.com/adpulse/ingestor/internal/repositories"
	"github.com/adpulse/ingestor/internal/summary"
)

// NewRouter wires the HTTP surface over the pipeline.
func NewRouter(log *slog.Logger, db *bun.DB, ing *ingest.Ingestor, engine *summary.Engine) http.Handler {
	mux := chi.NewRouter()
	mux.Use(RequestID)
	mux.Use(Logger(log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/api/ingest", handleIngest(ing))
	mux.Post("/api/summaries/rebuild", handleRebuild(engine))
	mux.Get("/api/brands", handleListBrands(db))
	mux.Get("/api/brands/{id}/summaries/creatives", handleCreativeSummaries(db))
	mux.Get("/api/brands/{id}/summaries/funnels", handleFunnelSummaries(db))

	return mux
}

type ingestBody struct {
	LibraryURL string `json:"library_url"`
	BusinessID int64  `json:"business_id"`
	Name       string `json:"name"`
	Source     string `json:"source"`
	Count      int    `json:"count"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Summarize  bool   `json:"summarize"`
}

func handleIngest(ing *ingest.Ingestor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ingestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}

		req := ingest.Request{
			LibraryURL: body.LibraryURL,
			BusinessID: body.BusinessID,
			Name:       body.Name,
			Source:     models.SourceTag(body.Source),
			Count:      body.Count,
			Summarize:  body.Summarize,
		}
		if body.StartDate != "" {
			t, err := time.Parse("2006-01-02", body.StartDate)
			if err != nil {
				http.Error(w, "bad start_date (YYYY-MM-DD)", http.StatusBadRequest)
				return
			}
			req.StartDate = t
		}
		if body.EndDate != "" {
			t, err := time.Parse("2006-01-02", body.EndDate)
			if err != nil {
				http.Error(w, "bad end_date (YYYY-MM-DD)", http.StatusBadRequest)
				return
			}
			req.EndDate = t
		}
		if err := req.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		res := ing.Ingest(r.Context(), req)
		status := http.StatusOK
		if !res.Success {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, res)
	}
}

func handleRebuild(engine *summary.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var brandID *int64
		if q := r.URL.Query().Get("brand_id"); q != "" {
			id, err := strconv.ParseInt(q, 10, 64)
			if err != nil {
				http.Error(w, "bad brand_id", http.StatusBadRequest)
				return
			}
			brandID = &id
		}

		counts, err := engine.Rebuild(r.Context(), brandID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, counts)
	}
}

func handleListBrands(db *bun.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brands, err := repositories.ListBrands(r.Context(), db)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, brands)
	}
}

func handleCreativeSummaries(db *bun.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "bad brand id", http.StatusBadRequest)
			return
		}
		rows, err := repositories.ListCreativeSummaries(r.Context(), db, id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func handleFunnelSummaries(db *bun.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "bad brand id", http.StatusBadRequest)
			return
		}
		rows, err := repositories.ListFunnelSummaries(r.Context(), db, id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
