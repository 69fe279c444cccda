package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"mentorship-backend/internal/ai"
	"mentorship-backend/internal/analytics"
	"mentorship-backend/internal/assistant"
	"mentorship-backend/internal/config"
	"mentorship-backend/internal/db"
	"mentorship-backend/internal/logger"
	"mentorship-backend/internal/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mentorship-api",
		Short:         "AI assistant gateway for the mentorship app",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context())
			},
		},
		newRenderCmd(),
		newTasksCmd(),
	)
	return root
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	shutdownTracing := observability.InitOTel(ctx, log, cfg.OTel, cfg.Env)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	if cfg.AI.APIKey == "" {
		// requests will fail with a configuration error until the key is set
		if cfg.IsProduction() {
			log.Error("LOVABLE_API_KEY is not configured", "env", cfg.Env)
		} else {
			log.Warn("LOVABLE_API_KEY is not configured", "env", cfg.Env)
		}
	}

	recorder := analytics.NewRecorder(nil)
	if cfg.AnalyticsEnabled() {
		database, err := db.Connect(ctx, cfg.ConnString())
		if err != nil {
			log.Warn("analytics database unavailable, continuing without analytics", "error", err)
		} else {
			defer database.Close()
			if err := db.Migrate(ctx, database); err != nil {
				log.Warn("analytics migration failed", "error", err)
			}
			recorder = analytics.NewRecorder(database)
			log.Info("connected to analytics database", "host", cfg.DB.Host)
		}
	}

	client := ai.New(cfg.AI, log)
	handler := assistant.New(client, recorder, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("api server is running", "addr", srv.Addr, "model", client.Model)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(h *assistant.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("/ai-assistant", h.Assistant)
	mux.HandleFunc("/functions/v1/ai-assistant", h.Assistant)

	// The handler answers preflight itself so every response carries the
	// same header set.
	c := cors.New(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders:     []string{"authorization", "x-client-info", "apikey", "content-type"},
		OptionsPassthrough: true,
	})

	return c.Handler(mux)
}

func newRenderCmd() *cobra.Command {
	var (
		taskType string
		data     string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Compile and print the prompt pair for a task without calling the gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := ai.ParseFields(json.RawMessage(data))
			if err != nil {
				return err
			}
			pair, err := ai.Compile(ai.TaskType(taskType), fields)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(pair)
			}
			_, err = fmt.Fprintf(out, "--- system ---\n%s\n\n--- user ---\n%s\n", pair.System, pair.User)
			return err
		},
	}
	cmd.Flags().StringVarP(&taskType, "type", "t", "", "task type (see the tasks command)")
	cmd.Flags().StringVarP(&data, "data", "d", "{}", "task data as a JSON object")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the prompt pair as JSON")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List the supported task types",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range ai.TaskTypes() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), t); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
