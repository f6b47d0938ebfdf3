package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"codeberg.org/snonux/wordlens/internal/credential"
	"codeberg.org/snonux/wordlens/internal/processor"
	"codeberg.org/snonux/wordlens/internal/remote"
	"codeberg.org/snonux/wordlens/internal/translation"
)

// Config holds the router dependencies.
type Config struct {
	Translator *translation.Translator
	Store      credential.Store
	WordCount  int
	Logger     *slog.Logger

	// AllowedOrigins lists the browser origins that may call the API,
	// DefaultAllowedOrigins if empty.
	AllowedOrigins []string
}

// NewRouter wires all routes.
func NewRouter(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = DefaultAllowedOrigins
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(requestLogger(cfg.Logger))
	r.Use(allowExtension(cfg.AllowedOrigins, cfg.Logger))

	r.Get("/healthz", handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/process", handleProcess(cfg))
		r.Post("/words/{word}", handleWord(cfg))
		r.Get("/credential", handleGetCredential(cfg.Store))
		r.Put("/credential", handlePutCredential(cfg.Store))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok")) //nolint:errcheck
}

// --- POST /api/process ---

type processRequest struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

func handleProcess(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req processRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		count := cfg.WordCount
		if req.Count > 0 {
			count = req.Count
		}

		rec := processor.NewRecorder()
		proc := processor.NewProcessor(cfg.Translator, cfg.Store, rec, processor.Options{
			WordCount: count,
			Logger:    loggerFrom(r.Context(), cfg.Logger),
		})

		err := proc.Submit(r.Context(), req.Text)
		writeResult(w, rec.Result(), err)
	}
}

// --- POST /api/words/{word} ---

func handleWord(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		word := chi.URLParam(r, "word")

		key, err := credential.LoadAPIKey(r.Context(), cfg.Store)
		if err != nil {
			jsonError(w, "failed to load API key", http.StatusInternalServerError)
			return
		}
		if key == "" {
			writeResult(w, processor.Result{CredentialMissing: true}, remote.ErrMissingCredential)
			return
		}

		rec := processor.NewRecorder()
		proc := processor.NewProcessor(cfg.Translator, cfg.Store, rec, processor.Options{
			Logger: loggerFrom(r.Context(), cfg.Logger),
		})

		err = proc.SelectWord(r.Context(), word)
		writeResult(w, rec.Result(), err)
	}
}

func writeResult(w http.ResponseWriter, res processor.Result, err error) {
	status := http.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, processor.ErrEmptyText):
		status = http.StatusBadRequest
	case errors.Is(err, remote.ErrMissingCredential):
		status = http.StatusUnauthorized
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(res) //nolint:errcheck
}

// --- GET/PUT /api/credential ---

type credentialStatus struct {
	Configured bool   `json:"configured"`
	Masked     string `json:"masked,omitempty"`
}

func handleGetCredential(store credential.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := credential.LoadAPIKey(r.Context(), store)
		if err != nil {
			jsonError(w, "failed to load API key", http.StatusInternalServerError)
			return
		}
		jsonOK(w, credentialStatus{Configured: key != "", Masked: credential.Mask(key)})
	}
}

type putCredentialRequest struct {
	APIKey string `json:"api_key"`
}

func handlePutCredential(store credential.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req putCredentialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		err := credential.SaveAPIKey(r.Context(), store, req.APIKey)
		if errors.Is(err, credential.ErrEmptyAPIKey) {
			jsonError(w, credential.EmptyInputMessage, http.StatusBadRequest)
			return
		}
		if err != nil {
			jsonError(w, "failed to save API key", http.StatusInternalServerError)
			return
		}
		jsonOK(w, map[string]string{"message": credential.SavedMessage})
	}
}

// --- helpers ---

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg}) //nolint:errcheck
}
