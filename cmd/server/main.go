package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"eco3/configs"
	"eco3/internal/events"
	"eco3/internal/httpx"
	"eco3/internal/middleware"
	"eco3/internal/migrate"
	"eco3/pkg/di"
	"eco3/pkg/kafka"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	svcName := os.Getenv("OTEL_SERVICE_NAME")
	if svcName == "" {
		svcName = "eco3-server"
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(svcName),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func App(cfg *configs.Config, c *di.Container) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
		}, http.StatusOK)
	})

	protect := func(pattern string, fn httpx.HandlerFunc) {
		authed := httpx.AuthMiddleware(c.Tokens, c.UserRepo)
		mux.Handle(pattern, authed(httpx.Wrap(fn)))
	}

	mux.Handle("POST /api/auth/register", httpx.Wrap(c.AuthHandler.Register))
	mux.Handle("POST /api/auth/login", httpx.Wrap(c.AuthHandler.Login))
	protect("GET /api/auth/verify", c.AuthHandler.Verify)

	mux.Handle("GET /api/users", httpx.Wrap(c.UserHandler.List))
	mux.Handle("GET /api/users/{id}", httpx.Wrap(c.UserHandler.GetByID))
	mux.Handle("POST /api/users", httpx.Wrap(c.UserHandler.Create))
	protect("PUT /api/users/{id}", c.UserHandler.Update)
	protect("DELETE /api/users/{id}", c.UserHandler.Delete)

	mux.Handle("GET /api/posts", httpx.Wrap(c.PostHandler.List))
	mux.Handle("GET /api/posts/{id}", httpx.Wrap(c.PostHandler.GetByID))
	protect("POST /api/posts", c.PostHandler.Create)
	protect("PUT /api/posts/{id}", c.PostHandler.Update)
	protect("DELETE /api/posts/{id}", c.PostHandler.Delete)

	mux.Handle("GET /api/comments", httpx.Wrap(c.CommentHandler.List))
	mux.Handle("GET /api/comments/{id}", httpx.Wrap(c.CommentHandler.GetByID))
	protect("POST /api/comments", c.CommentHandler.Create)
	protect("PUT /api/comments/{id}", c.CommentHandler.Update)
	protect("DELETE /api/comments/{id}", c.CommentHandler.Delete)

	mux.Handle("GET /api/likes", httpx.Wrap(c.LikeHandler.List))
	mux.Handle("GET /api/likes/{user_id}/{post_id}", httpx.Wrap(c.LikeHandler.Get))
	protect("POST /api/likes", c.LikeHandler.Create)
	protect("DELETE /api/likes/{user_id}/{post_id}", c.LikeHandler.Delete)

	protect("GET /api/notifications", c.NotificationHandler.List)
	protect("POST /api/notifications/{id}/read", c.NotificationHandler.MarkRead)

	mux.HandleFunc("GET /api/events", c.SSEHandler.Stream)

	if c.MediaHandler != nil {
		mux.Handle("GET /api/media/{key}", httpx.Wrap(c.MediaHandler.RedirectToSignedGet))
		protect("POST /api/media/upload", c.MediaHandler.Upload)
		protect("DELETE /api/media/{key}", c.MediaHandler.Delete)
	}

	mux.Handle("/", spaHandler(cfg.StaticDir))

	stack := middleware.Chain(
		middleware.CORS(cfg.CORSOrigin),
		middleware.Logging,
		middleware.Metrics,
	)
	return stack(mux)
}

// spaHandler serves static assets and falls back to index.html so
// client-side routes resolve after a hard reload.
func spaHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			httpx.WriteError(w, http.StatusNotFound, "endpoint not found", "NOT_FOUND")
			return
		}
		path := filepath.Join(dir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			if r.URL.Path != "/" {
				http.ServeFile(w, r, filepath.Join(dir, "index.html"))
				return
			}
		}
		fs.ServeHTTP(w, r)
	})
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := initOTEL(ctx)
	defer func() {
		c, cc := context.WithTimeout(context.Background(), 5*time.Second)
		defer cc()
		_ = shutdown(c)
	}()

	cfg := configs.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("ECO3_JWT_SECRET must be set")
	}

	container := di.BuildContainer(cfg)
	if err := migrate.AutoMigrateAll(container.DB); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if container.KafkaWriter != nil {
		defer container.KafkaWriter.Close()
	}

	if cfg.KafkaBrokerURL != "" {
		notify := events.NotifierFunc(func(ctx context.Context, userID uint, message string) error {
			_, err := container.Notifications.Create(ctx, userID, message)
			return err
		})
		cons := kafka.NewConsumer(cfg.KafkaBrokerURL, cfg.KafkaGroupID, cfg.KafkaTopic,
			events.NewActivityHandler(container.Board, notify))
		go func() {
			if err := cons.Run(ctx); err != nil {
				log.Printf("activity consumer stopped: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(App(cfg, container), "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		// no WriteTimeout: /api/events keeps a stream open per client
		IdleTimeout: 90 * time.Second,
	}

	go func() {
		log.Printf("eco3 server listening on %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Print("shutting down...")

	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
	cancel()
}
