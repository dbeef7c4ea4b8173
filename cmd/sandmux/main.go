// Package main provides the entry point for sandmux.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/abdullathedruid/sandmux/internal/app"
	"github.com/abdullathedruid/sandmux/internal/config"
	"github.com/abdullathedruid/sandmux/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	baseURL := flag.String("url", "", "sandbox service base URL (overrides config)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("sandmux %s\n", version.Short())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}

	if err := cfg.EnsureDataDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data directory: %v\n", err)
		os.Exit(1)
	}

	application := app.New(cfg)
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
