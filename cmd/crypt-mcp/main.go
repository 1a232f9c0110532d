package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ironsheep/crypt-count-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Environment variables read at startup.
const (
	envMinCryptSize    = "CRYPT_MCP_MIN_CRYPT_SIZE"
	envDefectThreshold = "CRYPT_MCP_DEFECT_THRESHOLD"
	envWorkers         = "CRYPT_MCP_WORKERS"
	envMaskLevel       = "CRYPT_MCP_MASK_LEVEL"
	envLogLevel        = "CRYPT_MCP_LOG_LEVEL"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("crypt-count-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("crypt-count-mcp - MCP server for counting intestinal crypts in segmentation masks")
			fmt.Println()
			fmt.Println("Usage: crypt-count-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  CRYPT_MCP_MIN_CRYPT_SIZE=2000    Smallest crypt area in square pixels")
			fmt.Println("  CRYPT_MCP_DEFECT_THRESHOLD=10    Minimum concavity depth for a cut, in pixels")
			fmt.Println("  CRYPT_MCP_WORKERS=0              Blobs separated concurrently (0 = one per CPU)")
			fmt.Println("  CRYPT_MCP_MASK_LEVEL=1           Gray level at or above which a pixel is crypt")
			fmt.Println("  CRYPT_MCP_LOG_LEVEL=debug        Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := configFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	debug := os.Getenv(envLogLevel) == "debug"
	if debug {
		log.Printf("Crypt Count MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("min_crypt_size=%d defect_threshold=%v workers=%d level=%d",
			cfg.Params.MinCryptSize, cfg.Params.DefectThreshold, cfg.Workers, cfg.Level)
		cfg.Params.Logf = log.Printf
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("Server error: %v", err)
		}
	case <-ctx.Done():
		if debug {
			log.Printf("Shutting down")
		}
	}
}

// configFromEnv builds the server configuration from environment variables.
// Unset variables keep the defaults; a set but unparsable or out-of-range
// value is an error.
func configFromEnv(getenv func(string) string) (server.Config, error) {
	cfg := server.DefaultConfig()

	if v := getenv(envMinCryptSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("%s must be a positive integer, got %q", envMinCryptSize, v)
		}
		cfg.Params.MinCryptSize = n
	}
	if v := getenv(envDefectThreshold); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || !(f > 0) {
			return cfg, fmt.Errorf("%s must be a positive number, got %q", envDefectThreshold, v)
		}
		cfg.Params.DefectThreshold = f
	}
	if v := getenv(envWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("%s must be a non-negative integer, got %q", envWorkers, v)
		}
		cfg.Workers = n
	}
	if v := getenv(envMaskLevel); v != "" {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil || n == 0 {
			return cfg, fmt.Errorf("%s must be between 1 and 255, got %q", envMaskLevel, v)
		}
		cfg.Level = uint8(n)
	}

	return cfg, cfg.Params.Validate()
}
