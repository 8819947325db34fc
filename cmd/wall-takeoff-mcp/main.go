package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ironsheep/wall-takeoff-mcp/internal/config"
	"github.com/ironsheep/wall-takeoff-mcp/internal/detection"
	"github.com/ironsheep/wall-takeoff-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("wall-takeoff-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("wall-takeoff-mcp - MCP server for floor plan wall take-off")
			fmt.Println()
			fmt.Println("Usage: wall-takeoff-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Println("  WALL_MCP_LOG_LEVEL=debug     Enable debug logging")
			fmt.Println("  WALL_MCP_TUNING=<file.json>  Override detection thresholds")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// A missing .env file is fine
	_ = godotenv.Load()

	debug := os.Getenv("WALL_MCP_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Wall Take-off MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	tuningPath := os.Getenv("WALL_MCP_TUNING")
	cfg, err := config.Load(tuningPath)
	if err != nil {
		log.Fatalf("Tuning error: %v", err)
	}
	if debug && tuningPath != "" {
		log.Printf("Loaded tuning from %s", tuningPath)
	}

	var opts []detection.Option
	if debug {
		opts = append(opts, detection.WithLogf(log.Printf))
	}
	pipeline, err := detection.NewPipeline(cfg, opts...)
	if err != nil {
		log.Fatalf("Pipeline error: %v", err)
	}

	server.Version = Version
	srv := server.New(pipeline)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
