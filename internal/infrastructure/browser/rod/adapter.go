package rod

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"element-inspector/internal/application/port/output"
)

var (
	_ output.AccessibleTreePort = (*BrowserAdapter)(nil)
	_ output.HostPort           = (*BrowserAdapter)(nil)
)

var ErrInvalidURL = errors.New("invalid url")

const (
	defaultTimeout    = 10 * time.Second
	defaultSlowMotion = 0
)

type BrowserConfig struct {
	Headless   bool
	SlowMotion time.Duration
	Timeout    time.Duration
	NoSandbox  bool
	DevTools   bool
	// ControlURL подключает к уже запущенному браузеру вместо запуска нового.
	ControlURL string
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:   false,
		SlowMotion: defaultSlowMotion,
		Timeout:    defaultTimeout,
		NoSandbox:  false,
		DevTools:   false,
	}
}

// BrowserAdapter: хост для инспектора: одна вкладка Chrome, читаемая через CDP.
// Адаптер ничего не меняет в документе: только Accessibility/DOM запросы на чтение.
type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration

	mu     sync.Mutex
	closed bool
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	var l *launcher.Launcher
	controlURL := cfg.ControlURL
	if controlURL == "" {
		l = launcher.New().
			Headless(cfg.Headless).
			Devtools(cfg.DevTools).
			NoSandbox(cfg.NoSandbox)

		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().
		Context(ctx).
		ControlURL(controlURL).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		cleanupLauncher(l)
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		cleanupLauncher(l)
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if err := (proto.AccessibilityEnable{}).Call(page); err != nil {
		_ = browser.Close()
		cleanupLauncher(l)
		return nil, fmt.Errorf("failed to enable accessibility domain: %w", err)
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
	}, nil
}

func (b *BrowserAdapter) IsReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.closed && b.page != nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, rawURL string) error {
	if err := validateURL(rawURL); err != nil {
		return err
	}

	p, cancel := b.client(ctx)
	defer cancel()

	if err := p.Navigate(rawURL); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait load failed: %w", err)
	}
	return nil
}

// Focus ставит фокус на элемент по CSS-селектору или XPath, как это сделал бы пользователь с клавиатуры.
func (b *BrowserAdapter) Focus(ctx context.Context, selector string) error {
	p, cancel := b.client(ctx)
	defer cancel()

	var el *rod.Element
	var err error
	if strings.HasPrefix(selector, "/") {
		el, err = p.ElementX(selector)
	} else {
		el, err = p.Element(selector)
	}
	if err != nil {
		return fmt.Errorf("element not found: %s: %w", selector, err)
	}

	if err := el.Focus(); err != nil {
		return fmt.Errorf("focus failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) CurrentURL() string {
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (b *BrowserAdapter) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true

	if b.browser != nil {
		_ = b.browser.Close()
	}
	cleanupLauncher(b.launcher)
}

// client возвращает страницу, привязанную к ctx с таймаутом адаптера.
func (b *BrowserAdapter) client(ctx context.Context) (*rod.Page, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	return b.page.Context(ctx), cancel
}

func validateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("empty url: %w", ErrInvalidURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s: %w", err.Error(), ErrInvalidURL)
	}
	switch u.Scheme {
	case "http", "https", "file":
		return nil
	default:
		return fmt.Errorf("unsupported scheme %q: %w", u.Scheme, ErrInvalidURL)
	}
}

func cleanupLauncher(l *launcher.Launcher) {
	if l == nil {
		return
	}
	l.Kill()
	l.Cleanup()
}
