// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point of routegen. It loads configuration from
// the environment and runs one of the manifest, props, build, serve,
// migrate, import or history commands.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"routegen/internal/config"
)

// Global carries the state shared by every command.
type Global struct {
	Config *config.Config
	Out    io.Writer
}

// CLI is the command line of routegen. Site settings come from the
// environment; flags only override what a single invocation needs.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`
	Preview bool `help:"Route draft documents (overrides STACKBIT_PREVIEW)"`

	Manifest ManifestCmd `cmd:"" help:"Print the static paths of every route"`
	Props    PropsCmd    `cmd:"" help:"Print the render props of one route"`
	Build    BuildCmd    `cmd:"" help:"Write the manifest and per-route props to the output directory"`
	Serve    ServeCmd    `cmd:"" help:"Serve the manifest and props over HTTP"`
	Migrate  MigrateCmd  `cmd:"" help:"Apply database migrations"`
	Import   ImportCmd   `cmd:"" help:"Replace the stored content with a snapshot file"`
	History  HistoryCmd  `cmd:"" help:"List recent builds"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("routegen"),
		kong.Description("Static route resolution for content-driven sites."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cli.Preview {
		cfg.Preview = true
	}
	slog.Debug("configuration loaded",
		"env", cfg.Env,
		"source", cfg.ContentSource,
		"locales", cfg.Locales,
		"preview", cfg.Preview,
	)

	err = ctx.Run(&Global{Config: cfg, Out: os.Stdout})
	ctx.FatalIfErrorf(err)
}
