package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/anoonan/folio/internal/config"
	"github.com/anoonan/folio/internal/content"
	"github.com/anoonan/folio/internal/errors"
	"github.com/anoonan/folio/internal/export"
	"github.com/anoonan/folio/internal/mcp"
	"github.com/anoonan/folio/internal/ops"
	"github.com/anoonan/folio/internal/tui"
	"github.com/anoonan/folio/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config, logger *slog.Logger) *cli.App {
	app := &cli.App{
		Name:    "folio",
		Usage:   "Content-driven portfolio site",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(cfg, logger),
			exportCmd(cfg),
			tuiCmd(cfg),
			mcpCmd(cfg, logger),
			projectsCmd(cfg),
			projectCmd(cfg),
			experiencesCmd(cfg),
			experienceCmd(cfg),
			categoriesCmd(cfg),
			validateCmd(cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// loadCatalog loads cfg.ContentPath, or the embedded document when it is empty.
func loadCatalog(cfg *config.Config) (*content.Catalog, error) {
	if cfg.ContentPath == "" {
		return content.Default()
	}
	return content.LoadFile(cfg.ContentPath)
}

// serveCmd creates the serve command.
func serveCmd(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the site over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Bind address (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			if bind := c.String("bind"); bind != "" {
				cfg.Bind = bind
			}
			if c.IsSet("port") {
				port := c.Int("port")
				if port <= 0 || port > 65535 {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("invalid port %d", port)))
				}
				cfg.Port = port
			}

			cat, err := loadCatalog(cfg)
			if err != nil {
				return outputError(err)
			}
			logWarnings(logger, cat)

			srv := web.NewServer(cat, cfg, logger, Version)
			if err := web.Run(c.Context, srv, logger); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// exportCmd creates the export command.
func exportCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the site as static HTML",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Required: true, Usage: "Output directory"},
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Write into a non-empty directory"},
		},
		Action: func(c *cli.Context) error {
			cat, err := loadCatalog(cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := export.Export(cat, cfg, export.ExportInput{
				Dir:     c.String("dir"),
				Force:   c.Bool("force"),
				Version: Version,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// tuiCmd creates the tui command.
func tuiCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse the portfolio in the terminal",
		Action: func(c *cli.Context) error {
			cat, err := loadCatalog(cfg)
			if err != nil {
				return outputError(err)
			}
			if err := tui.Run(cat); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server on stdio",
		Action: func(c *cli.Context) error {
			if err := runMCP(cfg, logger); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// runMCP loads the catalog and serves MCP on stdio.
func runMCP(cfg *config.Config, logger *slog.Logger) error {
	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		logger.Warn("unknown tools in disabled_tools", "tools", unknown)
	}
	if unknown := mcp.ValidateDisabledTypes(cfg.DisabledTypes); len(unknown) > 0 {
		logger.Warn("unknown types in disabled_types", "types", unknown)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	logWarnings(logger, cat)

	return mcp.Run(cat, cfg, Version)
}

// projectsCmd creates the projects command.
func projectsCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "projects",
		Usage: "List projects, optionally filtered by category",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category to match (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			cat, err := loadCatalog(cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.ListProjects(cat, ops.ListProjectsInput{
				Categories: c.StringSlice("category"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// projectCmd creates the project command.
func projectCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "project",
		Usage:     "Show a project with its content blocks",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id, err := parseID(c)
			if err != nil {
				return outputError(err)
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.GetProject(cat, ops.GetProjectInput{ID: id})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// experiencesCmd creates the experiences command.
func experiencesCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "experiences",
		Usage: "List experiences",
		Action: func(c *cli.Context) error {
			cat, err := loadCatalog(cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.ListExperiences(cat)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// experienceCmd creates the experience command.
func experienceCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "experience",
		Usage:     "Show an experience with its linked projects",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id, err := parseID(c)
			if err != nil {
				return outputError(err)
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.GetExperience(cat, ops.GetExperienceInput{ID: id})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// categoriesCmd creates the categories command.
func categoriesCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List the category vocabulary with project counts",
		Action: func(c *cli.Context) error {
			cat, err := loadCatalog(cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.ListCategories(cat)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// ValidateOutput is the result of the validate command.
type ValidateOutput struct {
	Source   string          `json:"source"`
	Valid    bool            `json:"valid"`
	Errors   []content.Issue `json:"errors"`
	Warnings []content.Issue `json:"warnings"`
}

// validateCmd creates the validate command.
func validateCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check a content document and report every problem",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Usage: "Content document (default: content_path, else the embedded document)"},
		},
		Action: func(c *cli.Context) error {
			source := c.String("file")
			if source == "" {
				source = cfg.ContentPath
			}

			var data []byte
			if source == "" {
				source = "embedded"
				data = content.DefaultSource()
			} else {
				var err error
				data, err = os.ReadFile(source)
				if err != nil {
					if stderrors.Is(err, os.ErrNotExist) {
						return outputError(errors.NewFileNotFound(source))
					}
					return outputError(errors.NewInternal(err))
				}
			}

			site, err := content.Parse(data)
			if err != nil {
				return outputError(errors.NewInvalidContent([]string{err.Error()}))
			}

			output := ValidateOutput{
				Source:   source,
				Errors:   []content.Issue{},
				Warnings: []content.Issue{},
			}
			for _, is := range content.Validate(*site) {
				if is.Severity == content.SeverityError {
					output.Errors = append(output.Errors, is)
				} else {
					output.Warnings = append(output.Warnings, is)
				}
			}
			output.Valid = len(output.Errors) == 0

			if err := outputJSON(output); err != nil {
				return err
			}
			if !output.Valid {
				return cli.Exit(fmt.Sprintf("[%s] %d problem(s) found", errors.ErrInvalidContent, len(output.Errors)), 1)
			}
			return nil
		},
	}
}

// Helper functions

// logWarnings reports non-fatal content issues.
func logWarnings(logger *slog.Logger, cat *content.Catalog) {
	for _, is := range cat.Warnings() {
		logger.Warn("content warning", "path", is.Path, "message", is.Message)
	}
}

// parseID reads the first positional argument as a non-negative id.
func parseID(c *cli.Context) (int, error) {
	if c.NArg() == 0 {
		return 0, errors.NewInvalidRequest("id is required")
	}
	id, err := strconv.Atoi(c.Args().First())
	if err != nil || id < 0 {
		return 0, errors.NewInvalidRequest(fmt.Sprintf("invalid id %q", c.Args().First()))
	}
	return id, nil
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var fErr *errors.FolioError
	if stderrors.As(err, &fErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", fErr.Code, fErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
