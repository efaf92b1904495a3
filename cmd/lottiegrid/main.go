/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"

	"lottiegrid/internal/config"
	"lottiegrid/internal/crash"
	applog "lottiegrid/internal/log"
	"lottiegrid/internal/ui"
	"lottiegrid/internal/version"
)

func usage() {
	fmt.Println("LottieGrid: segmented playback for lottie animation grids")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  lottiegrid version|-v|--version                          Show version")
	fmt.Println("  lottiegrid ui [<catalog>]                                 Launch the grid (build with -tags fyne)")
	fmt.Println("  lottiegrid check [<catalog>]                              Probe every asset for every theme")
	fmt.Println("  lottiegrid catalog [<out.yaml>]                           Write the active catalog as YAML")
	fmt.Println("  lottiegrid probe <asset>                                  Print frame rate and frame range of one asset")
	fmt.Println("  lottiegrid sheet [--preset screen|print] <out> [<catalog>]  Write a .png, .pdf or .svg catalog sheet")
	fmt.Println("  lottiegrid simulate [--hover 2s] [--light] <card> [<catalog>]  Play one card headless and print its timeline")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return
	}
	cmd := args[1]
	switch cmd {
	case "version", "--version", "-v":
		fmt.Println("LottieGrid")
		fmt.Println(version.String())
		return
	case "help", "-h", "--help":
		usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		// Not fatal: keep defaults so a broken user file does not block the CLI.
		l.Warn("config load failed; using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}
	applog.Init(loggingOptions(cfg))
	l = applog.WithComponent("cli")

	cc := &crash.Context{Command: cmd, Catalog: cfg.Catalog.Path, AssetRoot: cfg.Catalog.AssetRoot}
	defer crash.Recover(cc)

	rest := args[2:]
	switch cmd {
	case "ui":
		if len(rest) > 0 {
			cfg.Catalog.Path = rest[0]
			cc.Catalog = rest[0]
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			fail(l, "load catalog", err)
		}
		if err := ui.Run(cfg, cat); err != nil {
			fail(l, "ui", err)
		}
	case "check":
		if len(rest) > 0 {
			cfg.Catalog.Path = rest[0]
			cc.Catalog = rest[0]
		}
		failed, err := runCheck(os.Stdout, cfg)
		if err != nil {
			fail(l, "check", err)
		}
		if failed > 0 {
			os.Exit(1)
		}
	case "catalog":
		var out string
		if len(rest) > 0 {
			out = rest[0]
		}
		if err := runDump(os.Stdout, cfg, out); err != nil {
			fail(l, "catalog", err)
		}
	case "probe":
		if len(rest) < 1 {
			fmt.Println("probe requires <asset>")
			usage()
			os.Exit(2)
		}
		if err := runProbe(os.Stdout, rest[0]); err != nil {
			fail(l, "probe", err)
		}
	case "sheet":
		opts, err := parseSheetArgs(rest)
		if err != nil {
			fmt.Println(err)
			usage()
			os.Exit(2)
		}
		if opts.catalog != "" {
			cfg.Catalog.Path = opts.catalog
			cc.Catalog = opts.catalog
		}
		if err := runSheet(os.Stdout, cfg, opts); err != nil {
			fail(l, "sheet", err)
		}
	case "simulate":
		opts, err := parseSimulateArgs(rest)
		if err != nil {
			fmt.Println(err)
			usage()
			os.Exit(2)
		}
		if opts.catalog != "" {
			cfg.Catalog.Path = opts.catalog
			cc.Catalog = opts.catalog
		}
		if err := runSimulate(os.Stdout, cfg, opts); err != nil {
			fail(l, "simulate", err)
		}
	default:
		fmt.Println("unknown command:", cmd)
		usage()
		os.Exit(2)
	}
}

func loggingOptions(cfg config.AppConfig) applog.Options {
	return applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	}
}

func fail(l *slog.Logger, op string, err error) {
	l.Error(op+" failed", slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}
