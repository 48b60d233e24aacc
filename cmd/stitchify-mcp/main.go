// Package main runs stitchify as an MCP server over stdio.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/stitchify/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const usage = `stitchify-mcp - cross-stitch charts over the Model Context Protocol

Usage: stitchify-mcp [--version | --help]

Requests are read from stdin and responses written to stdout, one JSON-RPC
message per line. Logs go to stderr.

Environment variables:
  STITCHIFY_LOG_LEVEL=debug    Enable debug logging
`

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("stitchify-mcp %s\n  Build time: %s\n  Git commit: %s\n", Version, BuildTime, GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Print(usage)
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown argument %q\n\n%s", os.Args[1], usage)
			os.Exit(2)
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("STITCHIFY_LOG_LEVEL") == "debug" {
		log.Printf("stitchify-mcp %s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if err := server.New(Version).Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
