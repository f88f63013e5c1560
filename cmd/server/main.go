// Package main is the entry point for the AI Remote server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"

	"airemote/internal/config"
	"airemote/internal/core"
	"airemote/internal/database"
	"airemote/internal/interp"
	"airemote/internal/metrics"
	"airemote/internal/planner"
	"airemote/internal/qrcode"
	"airemote/internal/router"
	"airemote/internal/screen"
	"airemote/internal/services"
	"airemote/internal/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	showVersion := flag.Bool("version", false, "show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Warning: Could not load config from %s: %v", *configPath, err)
		log.Println("Using default configuration...")
		cfg = config.Default()
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	grabber := screen.New()
	facts := metrics.CollectHost(ctx)
	size := grabber.DisplaySize(ctx)

	host := planner.HostContext{
		OS:           facts.OS,
		Platform:     facts.Platform,
		ScreenWidth:  size.Width,
		ScreenHeight: size.Height,
	}

	p, err := planner.NewGemini(ctx, cfg.LLM.GetAPIKey(), cfg.LLM.Model, host, 1)
	if err != nil {
		if errors.Is(err, planner.ErrNoAPIKey) {
			log.Println("")
			log.Println("╔══════════════════════════════════════════════════════════════════╗")
			log.Println("║  ERROR: No LLM API key configured!                                ║")
			log.Println("║                                                                    ║")
			log.Println("║  Set 'llm.api_key' in config.yaml or export GEMINI_API_KEY.       ║")
			log.Println("╚══════════════════════════════════════════════════════════════════╝")
			log.Println("")
			log.Fatalf("Application startup aborted: %v", err)
		}
		log.Fatalf("Failed to initialize planner: %v", err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("Error closing planner: %v", err)
		}
	}()

	historyService := services.NewHistoryService(db)

	c := core.New(p, interp.New(), grabber, historyService, core.Options{
		MaxSteps:  cfg.LLM.MaxSteps,
		StepDelay: cfg.LLM.GetStepDelay(),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	mobileURL := fmt.Sprintf("http://%s:%d%s/", reachableIP(cfg.Server.Host), cfg.Server.Port, cfg.Server.PathPrefix)

	qrPath := filepath.Join(filepath.Dir(cfg.Database.Path), "mobile-url.png")
	if written, err := qrcode.WriteURL(mobileURL, qrPath); err != nil {
		log.Printf("Warning: Could not write QR code: %v", err)
	} else {
		log.Printf("QR code for mobile access written to %s", written)
	}

	r := router.New(cfg, c, historyService)

	log.Printf("AI Remote %s starting on %s", version.Version, addr)
	log.Printf("Open on your phone: %s", mobileURL)

	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// reachableIP resolves the address phones on the LAN should dial. A bind
// host of 0.0.0.0 is not dialable, so probe the outbound interface.
func reachableIP(bindHost string) string {
	if bindHost != "" && bindHost != "0.0.0.0" && bindHost != "::" {
		return bindHost
	}

	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "localhost"
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
