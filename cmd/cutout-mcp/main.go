package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/cutout-mcp/internal/config"
	"github.com/ironsheep/cutout-mcp/internal/logger"
	"github.com/ironsheep/cutout-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("cutout-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("cutout-mcp - MCP server for background removal and image editing")
			fmt.Println()
			fmt.Println("Usage: cutout-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Configuration:")
			fmt.Printf("  %-28s YAML config file (default %s)\n", config.EnvConfigPath, config.DefaultPath)
			fmt.Printf("  %-28s debug, info, warn or error\n", config.EnvLogLevel)
			fmt.Printf("  %-28s console or json\n", config.EnvLogFormat)
			fmt.Println("  A .env file in the working directory is read first.")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cutout-mcp: %v\n", err)
		os.Exit(1)
	}

	// stdout is reserved for the protocol
	log := logger.New(cfg.Log, os.Stderr)
	log.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting")

	server.Version = Version
	srv := server.New(cfg, log)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
