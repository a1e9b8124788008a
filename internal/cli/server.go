package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitfinder-quiz-service/internal/app"
	"fitfinder-quiz-service/internal/config"
	"fitfinder-quiz-service/internal/domain"
	fileloader "fitfinder-quiz-service/internal/infra/file"
	"fitfinder-quiz-service/internal/infra/memory"
	pgloader "fitfinder-quiz-service/internal/infra/postgres"
	redisinfra "fitfinder-quiz-service/internal/infra/redis"
	transport "fitfinder-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)
	transitionTimeout := config.TTLDuration(cfg.Transition.Timeout, app.DefaultTransitionTimeout)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.DatasetLoader = memory.NewStaticDatasetLoader(sampleDatasets())
	switch {
	case pool != nil:
		loader = pgloader.NewDatasetLoader(pool)
	case cfg.Dataset.Dir != "":
		loader = fileloader.NewDatasetLoader(cfg.Dataset.Dir)
	}

	datasetTTL := config.TTLDuration(cfg.Dataset.TTL, 10*time.Minute)
	var datasets app.DatasetRepository
	if redisClient != nil {
		datasets = redisinfra.NewDatasetRepository(redisClient, loader, datasetTTL)
	} else {
		datasets = memory.NewDatasetRepository(loader, datasetTTL)
	}

	var store app.SessionRepository
	if redisClient != nil {
		store = redisinfra.NewSessionStore(redisClient, redisTTL, transitionTimeout)
	} else {
		store = memory.NewSessionStore(transitionTimeout)
	}
	service := app.NewQuizService(store, datasets)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleDatasets provides a minimal catalog so the service runs with no
// backing store configured; point dataset.dir or postgres.url at real data in
// production.
func sampleDatasets() map[string]domain.Dataset {
	return map[string]domain.Dataset{
		"shoes": {
			Shoes: []domain.Shoe{
				{ID: "aero", Name: "Aero Glide", Tagline: "Race-day speed"},
				{ID: "trail", Name: "Ridge Runner", Tagline: "Grip for rough ground"},
				{ID: "cushion", Name: "Cloud Nine", Tagline: "All-day comfort"},
			},
			Questions: []domain.Question{
				{
					ID:   0,
					Copy: "Where do you run most?",
					Answers: []domain.Answer{
						{Copy: "Roads and tracks", RatingIncrease: map[string]int{"aero": 2, "cushion": 1}, NextQuestion: domain.ContinueTo(1)},
						{Copy: "Trails and hills", RatingIncrease: map[string]int{"trail": 3}, NextQuestion: domain.ContinueTo(1)},
					},
				},
				{
					ID:   1,
					Copy: "What matters more?",
					Answers: []domain.Answer{
						{Copy: "Speed", RatingIncrease: map[string]int{"aero": 3}},
						{Copy: "Comfort", RatingIncrease: map[string]int{"cushion": 3}},
					},
				},
			},
		},
	}
}
