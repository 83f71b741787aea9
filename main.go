package main

import (
	"log"

	"kyber-portal/pkg/client"
	"kyber-portal/pkg/config"
	"kyber-portal/pkg/form"
	"kyber-portal/pkg/handlers"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	strategy, _ := cfg.Strategy()
	redirectDelay, _ := cfg.RedirectDelay()
	timeout, _ := cfg.APITimeout()

	// Initialize API client
	api := client.New(cfg.API.BaseURL, client.WithTimeout(timeout))

	// Initialize form handler
	forms := form.New(strategy,
		form.WithAPI(api),
		form.WithRedirectDelay(redirectDelay),
		form.WithLoginPage(cfg.Submit.LoginPage),
		form.WithInFlightDedupe(cfg.Submit.DedupeInFlight),
	)

	// Setup Gin router
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	handlers.Setup(r, handlers.New(forms))

	// Start server
	addr := cfg.Addr()
	log.Printf("Starting account portal on http://%s", addr)
	if strategy == form.Remote {
		log.Printf("Submitting to backend at %s", api.BaseURL())
	} else {
		log.Printf("Local submission mode, backend is not contacted")
	}

	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
