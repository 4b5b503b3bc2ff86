package trigger

import (
	"context"
	"errors"
	"sync"

	"element-inspector/internal/application/port/input"
	"element-inspector/internal/application/port/output"
	"element-inspector/internal/domain/entity"
)

// ErrQuit останавливает Shell без ошибки.
var ErrQuit = errors.New("quit requested")

var (
	_ input.Trigger = (*InspectCommand)(nil)
	_ input.Trigger = (*PassThroughCommand)(nil)
	_ input.Trigger = (*QuitCommand)(nil)
)

// Session хранит режим оболочки. В режиме pass-through (формы) инспекция недоступна.
type Session struct {
	mu          sync.Mutex
	passThrough bool
}

func (s *Session) PassThrough() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passThrough
}

func (s *Session) TogglePassThrough() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passThrough = !s.passThrough
	return s.passThrough
}

type InspectCommand struct {
	host      output.HostPort
	inspector input.Inspector
	presenter output.PresenterPort
	session   *Session
	logger    output.LoggerPort
	advanced  bool
}

func NewInspectCommand(host output.HostPort, inspector input.Inspector, presenter output.PresenterPort, session *Session, logger output.LoggerPort) *InspectCommand {
	return &InspectCommand{
		host:      host,
		inspector: inspector,
		presenter: presenter,
		session:   session,
		logger:    logger,
	}
}

func NewAdvancedInspectCommand(host output.HostPort, inspector input.Inspector, presenter output.PresenterPort, session *Session, logger output.LoggerPort) *InspectCommand {
	cmd := NewInspectCommand(host, inspector, presenter, session, logger)
	cmd.advanced = true
	return cmd
}

func (c *InspectCommand) Gesture() entity.Gesture {
	if c.advanced {
		return entity.GestureInspectAdvanced
	}
	return entity.GestureInspect
}

func (c *InspectCommand) Description() string {
	if c.advanced {
		return "Inspect the focused element and its descendants"
	}
	return "Inspect the focused element"
}

func (c *InspectCommand) Run(ctx context.Context) error {
	req := input.InspectRequest{Advanced: c.advanced}
	req.BrowseMode = c.browseMode(ctx)

	if req.BrowseMode {
		ref, ok, err := c.host.FocusedNode(ctx)
		if err != nil {
			c.logger.Warn("Focused node lookup failed", "error", err)
		}
		req.Focused, req.HasFocus = ref, ok && err == nil

		if u, err := c.host.DocumentURL(ctx); err == nil {
			req.DocumentURL = u
		} else {
			c.logger.Debug("Document URL not available", "error", err)
		}
	}

	report := c.inspector.Inspect(ctx, req)
	return c.presenter.Present(ctx, report)
}

func (c *InspectCommand) browseMode(ctx context.Context) bool {
	if c.session != nil && c.session.PassThrough() {
		return false
	}
	on, err := c.host.BrowseMode(ctx)
	if err != nil {
		c.logger.Warn("Browse mode check failed", "error", err)
		return false
	}
	return on
}

type PassThroughCommand struct {
	session   *Session
	presenter output.PresenterPort
}

func NewPassThroughCommand(session *Session, presenter output.PresenterPort) *PassThroughCommand {
	return &PassThroughCommand{session: session, presenter: presenter}
}

func (c *PassThroughCommand) Gesture() entity.Gesture { return entity.GesturePassThrough }

func (c *PassThroughCommand) Description() string {
	return "Toggle pass-through (forms) mode"
}

func (c *PassThroughCommand) Run(ctx context.Context) error {
	if c.session.TogglePassThrough() {
		c.presenter.Message(ctx, "Pass-through mode on")
	} else {
		c.presenter.Message(ctx, "Browse mode on")
	}
	return nil
}

type QuitCommand struct{}

func (QuitCommand) Gesture() entity.Gesture { return entity.GestureQuit }

func (QuitCommand) Description() string { return "Quit" }

func (QuitCommand) Run(ctx context.Context) error { return ErrQuit }
