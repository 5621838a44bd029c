// Command emotion-insights runs the Emotion Insights web application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/emokit/emotion-insights/internal/hume"
	"github.com/emokit/emotion-insights/internal/insights"
	"github.com/emokit/emotion-insights/internal/results"
	"github.com/emokit/emotion-insights/internal/web"
	webfs "github.com/emokit/emotion-insights/web"
)

// defaultUploadsDir is where received audio clips are written.
const defaultUploadsDir = "audio_files"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Prosody analysis requires a Hume API key
	humeCfg, err := hume.LoadConfig()
	if err != nil {
		return fmt.Errorf("please set HUME_API_KEY (get one at https://platform.hume.ai)")
	}
	analyzer := hume.NewClient(humeCfg)

	// Insight generation is optional
	var generator insights.Generator
	insightCfg, err := insights.LoadConfig()
	switch {
	case err == nil:
		generator = insights.NewOpenAIGenerator(insightCfg)
	case errors.Is(err, insights.ErrMissingAPIKey):
		log.Println("OPENAI_API_KEY not set; insight generation disabled")
	default:
		return fmt.Errorf("loading insight config: %w", err)
	}

	// Recordings persist to PostgreSQL when DATABASE_URL is set, otherwise
	// they are kept in memory for the process lifetime.
	var store results.Store
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		pg, err := results.NewPGStore(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pg.Close()
		store = pg
	} else {
		log.Println("DATABASE_URL not set; recordings are kept in memory")
		store = results.NewMemoryStore()
	}

	// Create sub-filesystems for templates and static files
	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}

	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = web.DefaultAddr
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = defaultUploadsDir
	}

	// Create and start server
	server, err := web.NewServer(web.ServerConfig{
		Addr:        addr,
		UploadsDir:  uploadsDir,
		Store:       store,
		Analyzer:    analyzer,
		Insights:    generator,
		TemplatesFS: templates,
		StaticFS:    static,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}
