package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// config is loaded from the environment, optionally seeded by a .env file
// in the working directory (spec.md §4.8).
type config struct {
	instrumentPath string
	sampleRate     int
	blockLength    int
	debug          bool
}

func loadConfig() config {
	if err := godotenv.Load(); err != nil {
		// No .env file is the common case outside development; proceed with
		// whatever is already in the process environment.
	}

	cfg := config{
		instrumentPath: "instrument.sfz",
		sampleRate:     44100,
		blockLength:    256,
		debug:          false,
	}

	if v := os.Getenv("SONARI_INSTRUMENT"); v != "" {
		cfg.instrumentPath = v
	}
	if v := os.Getenv("SONARI_SAMPLE_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.sampleRate = n
		}
	}
	if v := os.Getenv("SONARI_BLOCK_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.blockLength = n
		}
	}
	if v := os.Getenv("SONARI_DEBUG"); v == "1" || v == "true" {
		cfg.debug = true
	}

	return cfg
}
