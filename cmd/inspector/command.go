package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"element-inspector/internal/di"
	"element-inspector/internal/infrastructure/env"
	"element-inspector/internal/usecase/inspect"
)

type options struct {
	URL        string
	Focus      string
	Headless   bool
	NoSandbox  bool
	ControlURL string
	Timeout    time.Duration
	MaxDepth   int
	Format     string
	LogLevel   string
}

type runFunc func(ctx context.Context, opts options) error

// newRootCommand собирает команду; значения по умолчанию берутся из окружения, флаги их перекрывают.
func newRootCommand(e *env.EnvService, run runFunc) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "inspector",
		Short: "Report accessibility facts of the focused element",
		Long: `inspector opens a page in Chrome and reports what the accessibility tree
exposes about the focused element: identity, state, attributes, relationships
and the ancestor chain up to the document.

Gestures (one per line on stdin):
  i  inspect the focused element
  a  advanced report with descendants
  p  toggle pass-through (forms) mode
  q  quit

Examples:
  inspector --url https://example.com --focus "#search"
  inspector --url file:///tmp/form.html --format html`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.MaxDepth < 0 {
				return fmt.Errorf("--max-depth must not be negative, got %d", opts.MaxDepth)
			}
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.URL, "url", e.GetString(env.KeyURL, ""), "page to open before the shell starts")
	flags.StringVar(&opts.Focus, "focus", e.GetString(env.KeyFocus, ""), "CSS selector or XPath (starting with /) of the element to focus")
	flags.BoolVar(&opts.Headless, "headless", e.GetBool(env.KeyHeadless, false), "run Chrome without a window")
	flags.BoolVar(&opts.NoSandbox, "no-sandbox", e.GetBool(env.KeyNoSandbox, false), "disable the Chrome sandbox (containers)")
	flags.StringVar(&opts.ControlURL, "control-url", e.GetString(env.KeyControlURL, ""), "attach to a running Chrome instead of launching one")
	flags.DurationVar(&opts.Timeout, "timeout", e.GetDuration(env.KeyTimeout, 10*time.Second), "per-query CDP timeout")
	flags.IntVar(&opts.MaxDepth, "max-depth", e.GetInt(env.KeyMaxDepth, inspect.DefaultConfig().MaxAncestorDepth), "maximum ancestor chain length")
	flags.StringVar(&opts.Format, "format", e.GetString(env.KeyReportFormat, "text"), "report format: text or html")
	flags.StringVar(&opts.LogLevel, "log-level", e.GetString(env.KeyLogLevel, "info"), "log level: debug, info, warn, error")

	return cmd
}

func runInspector(ctx context.Context, opts options) error {
	container, err := di.NewContainer(ctx, di.Config{
		Headless:   opts.Headless,
		NoSandbox:  opts.NoSandbox,
		ControlURL: opts.ControlURL,
		Timeout:    opts.Timeout,
		MaxDepth:   opts.MaxDepth,
		Format:     opts.Format,
		LogLevel:   opts.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer container.Close()

	if opts.URL != "" {
		if err := container.Browser.Navigate(ctx, opts.URL); err != nil {
			return fmt.Errorf("open %s: %w", opts.URL, err)
		}
		container.Logger.Info("Page opened", "url", container.Browser.CurrentURL())
	}
	if opts.Focus != "" {
		if err := container.Browser.Focus(ctx, opts.Focus); err != nil {
			return fmt.Errorf("focus %s: %w", opts.Focus, err)
		}
	}

	return container.Shell.Run(ctx)
}
