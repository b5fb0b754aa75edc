// Package config reads runtime settings from the environment and an optional
// .env file. Variables already set in the environment win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultOutputDir is where frames are written when nothing else is configured
const DefaultOutputDir = "output"

// S3 holds the object storage settings used for publishing frames
type S3 struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
}

// Enabled reports whether enough is configured to attempt an upload
func (s S3) Enabled() bool {
	return s.Bucket != ""
}

// Config is the resolved runtime configuration
type Config struct {
	OutputDir string
	Workers   int // 0 means one per CPU
	S3        S3
}

// Load resolves the configuration. envFile may be empty or name a file that
// does not exist; either way only the process environment is used.
func Load(envFile string) (*Config, error) {
	fileEnv := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		if values != nil {
			fileEnv = values
		}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileEnv[key]
	}

	cfg := &Config{
		OutputDir: lookup("RAYTRACER_OUTPUT_DIR"),
		S3: S3{
			AccessKey: lookup("S3_ACCESS_KEY"),
			SecretKey: lookup("S3_SECRET_KEY"),
			Endpoint:  lookup("S3_ENDPOINT"),
			Region:    lookup("S3_REGION"),
			Bucket:    lookup("S3_BUCKET"),
		},
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.S3.Region == "" {
		cfg.S3.Region = "us-east-1"
	}

	if w := lookup("RAYTRACER_WORKERS"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("RAYTRACER_WORKERS must be a non-negative integer, got %q", w)
		}
		cfg.Workers = n
	}

	return cfg, nil
}
