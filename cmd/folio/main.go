package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/anoonan/folio/internal/config"
	"github.com/anoonan/folio/internal/logging"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"serve": true, "export": true, "tui": true, "mcp": true,
	"projects": true, "project": true, "experiences": true, "experience": true,
	"categories": true, "validate": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
    __       _ _
   / _| ___ | (_) ___
  | |_ / _ \| | |/ _ \
  |  _| (_) | | | (_) |
  |_|  \___/|_|_|\___/

  Portfolio site, terminal browser and MCP server

  Usage: folio <command> [options]
         folio serve
         folio --help

  MCP server mode requires piped input.`)
}

// loadConfig reads ~/.folio/config.json, the nearest repo .folio/config.json,
// a .env file in the working directory, and FOLIO_* variables, in that order.
func loadConfig() (*config.Config, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not determine home directory: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("could not determine working directory: %w", err)
	}

	cfg, err := config.LoadWithRepo(filepath.Join(homeDir, ".folio"), cwd)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before loading config
	if isHelpOrVersion() {
		app := newCLIApp(config.DefaultConfig(), logging.Discard())
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout carries JSON output and the MCP protocol.
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(cfg, logger)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'folio --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := runMCP(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
