package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/ogrim/mimir/internal"
	"github.com/ogrim/mimir/internal/mcpserver"
	"github.com/ogrim/mimir/internal/repository"
	"github.com/ogrim/mimir/internal/snapshot"
	"github.com/ogrim/mimir/internal/wikiservice"
	pkgconfig "github.com/ogrim/mimir/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

// export loads the snapshot and writes a timestamped export document to the
// given file, or to stdout when no output path is given.
func export(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	repo := repository.New()
	svc := wikiservice.NewService(repo, cfg.Snapshot.Path)
	if _, ok := svc.ReloadFromDisk(ctx); !ok {
		fmt.Fprintf(os.Stderr, "no snapshot at %s, exporting an empty collection\n", cfg.Snapshot.Path)
	}

	data, err := svc.Export(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if out := cmd.String("output"); out != "" {
		return snapshot.WriteFile(out, data)
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}

// mcpServe runs the MCP server on stdio against the configured snapshot.
func mcpServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	repo := repository.New()
	svc := wikiservice.NewService(repo, cfg.Snapshot.Path)
	svc.ReloadFromDisk(ctx)

	return mcpserver.New(svc).ServeStdio()
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:   "mimir",
		Usage:  "Single-page wiki with an in-memory article collection and portable JSON snapshots",
		Action: serve,
		Flags:  []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "export",
				Usage:  "Write the collection as a snapshot document",
				Action: export,
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (stdout when omitted)",
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools over stdio for LLM integration",
				Action: mcpServe,
				Flags:  []cli.Flag{configFlag},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
