package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"asciidrop/internal/config"
	"asciidrop/internal/game"
)

func main() {
	configPath := flag.String("config", "", "TOML file overriding the preset")
	preset := flag.String("preset", config.PresetClassic, "preset to start from: classic or portfolio")
	term := flag.Bool("term", false, "draw in the terminal instead of a window")
	debug := flag.Bool("debug", false, "verbose logging and the debug panel")
	flag.Parse()

	// Assets are relative to the executable for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil && *configPath == "" {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg, err := config.Load(*configPath, *preset)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}
	if *debug {
		cfg.Debug = true
	}

	g := game.New(cfg, game.Options{Terminal: *term})
	if err := g.Run(); err != nil {
		log.Fatalf("Game: %v", err)
	}
}
