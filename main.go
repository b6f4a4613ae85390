package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fragmede/shopauth/internal/api"
	"github.com/fragmede/shopauth/internal/auth"
	"github.com/fragmede/shopauth/internal/cache"
	"github.com/fragmede/shopauth/internal/config"
	"github.com/fragmede/shopauth/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		log.Fatalf("creating cache dir: %v", err)
	}

	logFile, err := tea.LogToFile(cfg.LogPath, "shopauth")
	if err != nil {
		log.Fatalf("opening log file: %v", err)
	}
	defer logFile.Close()

	db, err := cache.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("opening cache: %v", err)
	}
	defer db.Close()

	log.Printf("starting, api=%s", cfg.APIURL)
	client := api.NewClient(cfg.APIURL, cfg.RequestTimeout)
	session := auth.NewSession(db)

	app := ui.NewApp(cfg, client, db, session)
	p := tea.NewProgram(app, tea.WithAltScreen())
	app.SetProgram(p)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
