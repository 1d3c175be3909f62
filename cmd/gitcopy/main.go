package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rojanmagar2001/gitcopy/internal/app"
	"github.com/rojanmagar2001/gitcopy/internal/domain"
	"github.com/rojanmagar2001/gitcopy/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if hint := remediation(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := app.DefaultConfig()
	var configFile string

	cmd := &cobra.Command{
		Use: "gitcopy -r <remote-url> -l <local-dir> [options]",

		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		SilenceErrors:         true,

		Short: "Copy an exposed .git directory and rebuild its source tree",
		Long: strings.TrimSpace(`
gitcopy walks the directory listing of a web-exposed version-control metadata
directory, downloads every file into <local-dir>/.git and then restores the
working tree there.
`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			run := cfg
			if configFile != "" {
				fromFile, err := app.LoadFile(configFile, app.DefaultConfig())
				if err != nil {
					return err
				}
				run = overrideChanged(cmd, fromFile, cfg)
			}
			return app.Run(cmd.Context(), run, stdout, stderr)
		},
	}

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.StringVarP(&cfg.RemoteURL, "remote", "r", "", "remote metadata directory, e.g. https://www.example.com/.git/")
	fs.StringVarP(&cfg.LocalDir, "local", "l", "", "absolute local directory to rebuild the source in")
	fs.StringVar(&configFile, "config", "", "YAML config file; flags given explicitly override it")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "parallel requests")
	fs.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "maximum directory depth below the root (0 = unlimited)")
	fs.StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User-Agent header")
	fs.StringVar(&cfg.Classifier, "classifier", cfg.Classifier, "entry classifier: content-type or trailing-slash")
	fs.StringVar(&cfg.Rebuilder, "rebuilder", cfg.Rebuilder, "rebuild backend: git or go-git")
	fs.BoolVar(&cfg.NoRebuild, "no-rebuild", cfg.NoRebuild, "only copy the metadata directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")

	return cmd
}

// overrideChanged copies every flag the user set explicitly from flags onto
// base.
func overrideChanged(cmd *cobra.Command, base, flags app.Config) app.Config {
	changed := cmd.Flags().Changed
	if changed("remote") {
		base.RemoteURL = flags.RemoteURL
	}
	if changed("local") {
		base.LocalDir = flags.LocalDir
	}
	if changed("timeout") {
		base.Timeout = flags.Timeout
	}
	if changed("concurrency") {
		base.Concurrency = flags.Concurrency
	}
	if changed("max-depth") {
		base.MaxDepth = flags.MaxDepth
	}
	if changed("user-agent") {
		base.UserAgent = flags.UserAgent
	}
	if changed("classifier") {
		base.Classifier = flags.Classifier
	}
	if changed("rebuilder") {
		base.Rebuilder = flags.Rebuilder
	}
	if changed("no-rebuild") {
		base.NoRebuild = flags.NoRebuild
	}
	if changed("log-level") {
		base.LogLevel = flags.LogLevel
	}
	if changed("log-format") {
		base.LogFormat = flags.LogFormat
	}
	return base
}

func remediation(err error) string {
	var tm *domain.ToolMissing
	if errors.As(err, &tm) {
		return fmt.Sprintf("hint: install %s and make sure it is on PATH, or rerun with --rebuilder go-git; the mirrored files were kept", tm.Tool)
	}
	if errors.Is(err, usecase.ErrNothingToMirror) {
		return "hint: servers that send files as application/octet-stream need --classifier trailing-slash"
	}
	return ""
}
