package di

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"element-inspector/internal/application/port/output"
	"element-inspector/internal/application/service"
	"element-inspector/internal/infrastructure/browser/rod"
	"element-inspector/internal/infrastructure/logger"
	"element-inspector/internal/infrastructure/userinteraction"
	"element-inspector/internal/usecase/inspect"
	"element-inspector/internal/usecase/trigger"
)

type Container struct {
	Browser   *rod.BrowserAdapter
	Logger    output.LoggerPort
	Presenter output.PresenterPort
	Inspector *inspect.UseCase
	Session   *trigger.Session
	Triggers  *service.TriggerRegistry
	Shell     *trigger.Shell
}

type Config struct {
	Headless   bool
	NoSandbox  bool
	ControlURL string
	Timeout    time.Duration

	MaxDepth int
	Format   string
	LogLevel string

	// Input: источник жестов; по умолчанию stdin.
	Input io.Reader
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	format, err := userinteraction.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	logCfg := logger.DefaultConfig()
	if cfg.LogLevel != "" {
		logCfg.Level = cfg.LogLevel
	}
	log, err := logger.NewLoggerAdapter(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.Headless
	browserCfg.NoSandbox = cfg.NoSandbox
	browserCfg.ControlURL = cfg.ControlURL
	if cfg.Timeout > 0 {
		browserCfg.Timeout = cfg.Timeout
	}
	browser, err := rod.NewBrowserAdapter(ctx, browserCfg)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}

	inspectCfg := inspect.DefaultConfig()
	if cfg.MaxDepth > 0 {
		inspectCfg.MaxAncestorDepth = cfg.MaxDepth
	}
	inspector := inspect.New(browser, log, inspectCfg)

	presenter := userinteraction.NewConsolePresenter(format)
	session := &trigger.Session{}

	triggers := service.NewTriggerRegistry()
	registerTriggers(triggers, browser, inspector, presenter, session, log)

	in := cfg.Input
	if in == nil {
		in = os.Stdin
	}

	return &Container{
		Browser:   browser,
		Logger:    log,
		Presenter: presenter,
		Inspector: inspector,
		Session:   session,
		Triggers:  triggers,
		Shell:     trigger.NewShell(triggers, presenter, log, in),
	}, nil
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func registerTriggers(
	registry *service.TriggerRegistry,
	host output.HostPort,
	inspector *inspect.UseCase,
	presenter output.PresenterPort,
	session *trigger.Session,
	log output.LoggerPort,
) {
	registry.Register(trigger.NewInspectCommand(host, inspector, presenter, session, log))
	registry.Register(trigger.NewAdvancedInspectCommand(host, inspector, presenter, session, log))
	registry.Register(trigger.NewPassThroughCommand(session, presenter))
	registry.Register(trigger.QuitCommand{})
}
