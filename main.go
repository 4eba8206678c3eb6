package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"netbar/internal/config"
	"netbar/internal/controllers"
	"netbar/internal/middleware"
	"netbar/internal/models"
	"netbar/internal/routes"
	"netbar/internal/services"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	issueToken := flag.String("issue-token", "", "print a token for the named client and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}
	config.Normalize(cfg)

	secLog := middleware.NewSecurityLogger()

	var issuer *services.TokenIssuer
	if !cfg.Auth.Disabled {
		keyFile := cfg.Auth.SecretKeyFile
		if keyFile == "" {
			keyFile = services.DefaultSecretKeyFile()
		}
		issuer, err = services.NewTokenIssuer(cfg.Auth.SecretKey, keyFile, time.Duration(cfg.Auth.TokenExpiryHrs)*time.Hour)
		if err != nil {
			log.Fatalf("[AUTH] %v", err)
		}
	}

	if *issueToken != "" {
		if issuer == nil {
			log.Fatal("[AUTH] Authentication is disabled, no token to issue")
		}
		if !middleware.ValidateClientName(*issueToken) {
			log.Fatalf("[AUTH] Invalid client name %q", *issueToken)
		}
		token, err := issuer.GenerateToken(*issueToken)
		if err != nil {
			log.Fatalf("[AUTH] %v", err)
		}
		secLog.LogTokenGenerated(*issueToken)
		log.Printf("[AUTH] Token expires %s", issuer.TokenExpiry().Format(time.RFC3339))
		fmt.Println(token)
		return
	}

	settings := services.NewSettingsStore(cfg.Display, persistSettings(*configPath, cfg))

	stats := services.NewStatsCollector(time.Duration(cfg.Stats.IntervalMs)*time.Millisecond, cfg.Stats.DiskPath, nil)

	sampler, err := services.NewSampler(services.SamplerConfig{
		Interval:      time.Duration(cfg.Sampler.IntervalMs) * time.Millisecond,
		SampleTimeout: time.Duration(cfg.Sampler.SampleTimeoutMs) * time.Millisecond,
		Resolver:      services.NewRouteResolver(),
		Source:        services.NewCounterSource(nil),
		Settings:      settings,
		Stats:         stats,
	})
	if err != nil {
		log.Fatalf("[SAMPLER] %v", err)
	}

	updates, _ := sampler.Subscribe(4)
	hub := services.NewWebSocketHub(updates)
	go hub.Run()

	handler := &controllers.Handler{
		Sampler:  sampler,
		Stats:    stats,
		Settings: settings,
		Hub:      hub,
		Issuer:   issuer,
		SecLog:   secLog,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     middleware.OriginChecker(cfg.Server.AllowedOrigins),
		},
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)))

	api := r.Group("/")
	api.Use(middleware.AuthMiddleware(issuer, secLog))
	routes.RegisterTrafficRoutes(api, handler)
	routes.RegisterSettingsRoutes(api, handler)

	// /ws checks the token itself before upgrading
	routes.RegisterWebSocketRoutes(r, handler)

	stats.Start()
	sampler.Start()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("[SERVER] Listening on %s (auth: %v)", cfg.Server.Addr, issuer != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[SERVER] %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[SERVER] Shutting down")

	sampler.Stop()
	stats.Stop()
	hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[SERVER] Shutdown: %v", err)
	}
}

// persistSettings writes display settings back to the config file.
// Without a config file, settings live only in memory.
func persistSettings(path string, cfg *config.Config) func(models.Settings) error {
	if path == "" {
		return nil
	}
	return func(s models.Settings) error {
		next := *cfg
		next.Display = s
		return config.Save(path, &next)
	}
}
