package main

import (
	"context"
	"crypto/tls"
	"errors"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/username/fincast/backend/src/config"
	"github.com/username/fincast/backend/src/handlers"
	"github.com/username/fincast/backend/src/logger"
	"github.com/username/fincast/backend/src/parsers/csvfile"
	"github.com/username/fincast/backend/src/security/validation"
	"github.com/username/fincast/backend/src/services"
)

func proxyHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Forwarded-Proto") == "https" {
			r.URL.Scheme = "https"
			r.TLS = &tls.ConnectionState{}
		}
		next.ServeHTTP(w, r)
	})
}

func newAdvisor(ctx context.Context, cfg *config.AppConfig, retry services.RetryConfig) (services.Advisor, error) {
	switch cfg.AdviceProvider {
	case config.AdviceProviderGemini:
		advisor, err := services.NewGeminiAdvisor(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, retry)
		if err != nil {
			return nil, err
		}
		return advisor, nil
	case config.AdviceProviderHTTP:
		if cfg.AdviceAPIURL == "" {
			logger.L.Warn("ADVICE_API_URL is empty, advice requests will fail")
		}
		return services.NewHTTPAdvisor(cfg.AdviceAPIURL, cfg.AdviceTimeout, retry), nil
	default:
		return nil, errors.New("unknown ADVICE_PROVIDER: " + cfg.AdviceProvider)
	}
}

// upstreamBudget bounds how long one handler may wait on an upstream call including retries.
func upstreamBudget(timeout time.Duration, retry services.RetryConfig) time.Duration {
	return time.Duration(retry.MaxRetries+1)*timeout + time.Duration(retry.MaxRetries)*retry.MaxDelay
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	cfg := config.Cfg

	logger.L.Info("fincast backend server starting...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rowValidator, err := validation.NewRowValidatorForPolicy(cfg.CategoryPolicy, cfg.KnownCategories)
	if err != nil {
		logger.L.Error("Invalid category policy", "error", err)
		os.Exit(1)
	}

	retry := services.DefaultUpstreamRetryConfig.WithRetries(cfg.UpstreamMaxRetries)
	forecaster := services.NewForecastClient(cfg.ForecastAPIURL, cfg.ForecastRequestFormat, cfg.ForecastTimeout, retry)
	advisor, err := newAdvisor(ctx, cfg, retry)
	if err != nil {
		logger.L.Error("Failed to initialize advice provider", "provider", cfg.AdviceProvider, "error", err)
		os.Exit(1)
	}
	logger.L.Info("Upstream services configured",
		"forecastURL", cfg.ForecastAPIURL,
		"forecastFormat", cfg.ForecastRequestFormat,
		"adviceProvider", cfg.AdviceProvider,
		"maxRetries", retry.MaxRetries)

	sessionCache := cache.New(cfg.SessionTTL, services.SessionCleanupInterval)

	dashboardService := services.NewDashboardService(
		csvfile.NewParser(),
		rowValidator,
		forecaster,
		advisor,
		sessionCache,
		cfg.DefaultConfidence,
	)

	uploadHandler := handlers.NewUploadHandler(dashboardService, cfg.MaxUploadSizeBytes)
	sessionHandler := handlers.NewSessionHandler(dashboardService)
	adviceHandler := handlers.NewAdviceHandler(dashboardService)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "If-None-Match", "X-Requested-With"},
		ExposedHeaders:   []string{"ETag", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(proxyHeadersMiddleware)
	r.Use(corsHandler.Handler)
	r.Use(handlers.RateLimitMiddleware(limiter))

	handlers.RegisterRoutes(r, uploadHandler, sessionHandler, adviceHandler)

	writeTimeout := max(upstreamBudget(cfg.ForecastTimeout, retry), upstreamBudget(cfg.AdviceTimeout, retry)) + 15*time.Second

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.L.Info("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.L.Error("Graceful shutdown failed", "error", err)
		}
	}()

	logger.L.Info("Server starting", "address", serverAddr, "writeTimeout", writeTimeout.String())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
