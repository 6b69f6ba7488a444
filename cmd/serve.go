package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/summitlab/trailguide/internal/guide"
	"github.com/summitlab/trailguide/internal/model"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the guide API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Get("/api/guide", func(w http.ResponseWriter, req *http.Request) {
			query := req.URL.Query().Get("q")
			if query == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "q is required"})
				return
			}
			rec, err := env.Orchestrator.Search(req.Context(), query, nil)
			if err != nil {
				if eris.Is(err, guide.ErrGuideNotFound) {
					writeJSON(w, http.StatusNotFound, map[string]string{"error": "guide could not be found"})
					return
				}
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "search failed"})
				return
			}
			writeJSON(w, http.StatusOK, rec)
		})

		r.Put("/api/guide", func(w http.ResponseWriter, req *http.Request) {
			var rec model.TrailRecord
			if err := json.NewDecoder(req.Body).Decode(&rec); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid record body"})
				return
			}
			if err := env.Orchestrator.SaveEdit(req.Context(), &rec); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, rec)
		})

		r.Get("/api/plans", func(w http.ResponseWriter, req *http.Request) {
			recs, err := env.Plans.List(req.Context())
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list plans failed"})
				return
			}
			if recs == nil {
				recs = []model.TrailRecord{}
			}
			writeJSON(w, http.StatusOK, recs)
		})

		r.Post("/api/plans", func(w http.ResponseWriter, req *http.Request) {
			savePlan(w, req, env.Plans.Upsert)
		})

		r.Post("/api/plans/promote", func(w http.ResponseWriter, req *http.Request) {
			savePlan(w, req, env.Plans.PromoteFromGuide)
		})

		r.Delete("/api/plans/{name}", func(w http.ResponseWriter, req *http.Request) {
			name := chi.URLParam(req, "name")
			if err := env.Plans.Remove(req.Context(), name); err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "remove failed"})
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(sctx); err != nil {
				zap.L().Warn("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func savePlan(w http.ResponseWriter, req *http.Request, save func(context.Context, model.TrailRecord) error) {
	var rec model.TrailRecord
	if err := json.NewDecoder(req.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid record body"})
		return
	}
	if err := save(req.Context(), rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
