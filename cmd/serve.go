package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/osintworks/recon-cli/internal/engine"
	"github.com/osintworks/recon-cli/internal/model"
	"github.com/osintworks/recon-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the investigation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: buildRouter(ctx, env.Engine, env.Store),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(context.WithoutCancel(ctx))
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// investigationRequest is the POST /investigations payload.
type investigationRequest struct {
	Target             string   `json:"target"`
	Objective          string   `json:"objective"`
	PriorityData       []string `json:"priority_data"`
	Urgency            string   `json:"urgency"`
	SearchDepth        string   `json:"search_depth"`
	RiskTolerance      string   `json:"risk_tolerance"`
	CustomRequirements []string `json:"custom_requirements"`
}

// buildRouter wires the API routes. runCtx is the server lifetime context;
// investigations started over HTTP run against it so they outlive the
// request that created them.
func buildRouter(runCtx context.Context, eng *engine.Engine, st store.Store) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/investigations", func(w http.ResponseWriter, req *http.Request) {
		var body investigationRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if body.Target == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "target is required"})
			return
		}

		reqCtx := model.RequestContext{
			Objective:          body.Objective,
			PriorityData:       body.PriorityData,
			Urgency:            model.Urgency(body.Urgency),
			SearchDepth:        model.SearchDepth(body.SearchDepth),
			RiskTolerance:      model.RiskTolerance(body.RiskTolerance),
			CustomRequirements: body.CustomRequirements,
		}

		id, err := eng.Start(runCtx, body.Target, reqCtx)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]string{
			"id":     id,
			"status": string(model.StatusRunning),
		})
	})

	r.Get("/investigations", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, eng.List())
	})

	r.Get("/investigations/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")

		inv, err := eng.Get(id)
		if err != nil {
			// Not tracked in this process; fall back to the store.
			stored, serr := st.GetInvestigation(req.Context(), id)
			if serr != nil {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "investigation not found"})
				return
			}
			if results, rerr := st.GetResults(req.Context(), id); rerr == nil {
				stored.Results = results
			}
			inv = *stored
		}

		analysis, err := st.GetAnalysis(req.Context(), id)
		if err != nil {
			zap.L().Warn("serve: load analysis", zap.String("investigation_id", id), zap.Error(err))
		}

		writeJSON(w, http.StatusOK, engine.Outcome{Investigation: inv, Analysis: analysis})
	})

	r.Post("/investigations/{id}/cancel", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")

		if err := eng.Cancel(req.Context(), id); err != nil {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"id":     id,
			"status": string(model.StatusCancelled),
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("serve: encode response", zap.Error(err))
	}
}
