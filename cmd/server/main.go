// Package main provides a local HTTP server for development and testing.
// It exposes the same recommendation flow as the Lambda functions, plus the
// catalog and weight endpoints used by the admin frontend.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"psp-advisor/internal/config"
	"psp-advisor/internal/handlers"
	"psp-advisor/internal/models"
	"psp-advisor/internal/services/database"
	"psp-advisor/internal/utils"
)

// Server holds all dependencies
type Server struct {
	deps     *handlers.Dependencies
	health   *handlers.HealthHandler
	settings *database.SettingsRepository
	config   *config.Config
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// WeightsResponse describes the effective scoring weights.
type WeightsResponse struct {
	Kind     models.WeightKind      `json:"kind"`
	Weights  models.ExtendedWeights `json:"weights"`
	Total    float64                `json:"total"`
	Editable bool                   `json:"editable"`
}

const maxBodyBytes = 1 << 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()
	logger := utils.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := handlers.NewDependencies(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", zap.Error(err))
	}
	defer deps.Close()

	server := &Server{
		deps:   deps,
		health: handlers.NewHealthHandler(deps.DB),
		config: cfg,
	}
	if deps.DB != nil {
		server.settings = database.NewSettingsRepository(deps.DB)
	}

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", server.healthHandler)
	mux.HandleFunc("/api/health", server.healthHandler)

	mux.HandleFunc("/api/recommendations", server.recommendHandler)
	mux.HandleFunc("/api/providers", server.providersHandler)
	mux.HandleFunc("/api/weights", server.weightsHandler)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", cfg.Port),
		Handler:           c.Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("PSP advisor API server listening",
		zap.String("addr", httpServer.Addr),
		zap.String("stage", cfg.Stage),
		zap.Bool("database", deps.DB != nil),
	)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := s.health.Check(r.Context())

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, Response{
		Success: status == http.StatusOK,
		Message: "PSP advisor API is running",
		Data:    health,
	})
}

func (s *Server) recommendHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: "Failed to read request body"})
		return
	}

	profile, err := utils.ParseProfile("request.json", body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: err.Error()})
		return
	}

	if locale := r.URL.Query().Get("locale"); locale != "" {
		profile.Locale = models.Locale(locale)
		if !profile.Locale.IsValid() {
			writeJSON(w, http.StatusBadRequest, Response{Error: models.ErrInvalidLocale.Error()})
			return
		}
	}

	run, err := s.deps.Service.Recommend(r.Context(), profile)
	if err != nil {
		utils.GetLogger().Error("Recommendation run failed", zap.Error(err))
		writeJSON(w, handlers.StatusForError(err), Response{Error: "Recommendations are temporarily unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("%d matching providers", len(run.Recommendations)),
		Data:    run,
	})
}

func (s *Server) providersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	catalog, err := s.deps.Service.Catalog(r.Context())
	if err != nil {
		utils.GetLogger().Error("Error fetching catalog", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, Response{Error: "Failed to fetch providers"})
		return
	}

	summaries := make([]models.ProviderSummary, 0, len(catalog))
	for _, p := range catalog {
		if p == nil {
			continue
		}
		summaries = append(summaries, p.ToSummary())
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    summaries,
	})
}

func (s *Server) weightsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cfg, err := s.deps.Service.Weights(r.Context())
		if err != nil {
			utils.GetLogger().Error("Error fetching weights", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, Response{Error: "Failed to fetch weights"})
			return
		}
		writeJSON(w, http.StatusOK, Response{Success: true, Data: s.describeWeights(cfg)})

	case http.MethodPut:
		if s.settings == nil {
			writeJSON(w, http.StatusServiceUnavailable, Response{Error: "Weights are read-only without a database"})
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Response{Error: "Failed to read request body"})
			return
		}

		cfg, err := models.ParseWeights(body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Response{Error: err.Error()})
			return
		}

		if err := s.settings.SaveWeights(r.Context(), cfg); err != nil {
			if errors.Is(err, models.ErrNegativeWeight) || errors.Is(err, models.ErrZeroWeights) {
				writeJSON(w, http.StatusBadRequest, Response{Error: err.Error()})
				return
			}
			utils.GetLogger().Error("Error saving weights", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Response{Error: "Failed to save weights"})
			return
		}

		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Weights updated",
			Data:    s.describeWeights(cfg),
		})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) describeWeights(cfg models.WeightConfig) WeightsResponse {
	extended := cfg.Extended()
	return WeightsResponse{
		Kind:     cfg.Kind(),
		Weights:  extended,
		Total:    extended.Sum(),
		Editable: s.settings != nil,
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
