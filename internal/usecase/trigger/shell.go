package trigger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"element-inspector/internal/application/port/input"
	"element-inspector/internal/application/port/output"
	"element-inspector/internal/domain/entity"
)

type Registry interface {
	Get(gesture entity.Gesture) (input.Trigger, bool)
	All() []input.Trigger
}

// Shell читает жесты построчно и передаёт их зарегистрированным командам.
type Shell struct {
	registry  Registry
	presenter output.PresenterPort
	logger    output.LoggerPort
	in        io.Reader
}

func NewShell(registry Registry, presenter output.PresenterPort, logger output.LoggerPort, in io.Reader) *Shell {
	return &Shell{
		registry:  registry,
		presenter: presenter,
		logger:    logger,
		in:        in,
	}
}

func (s *Shell) Help() string {
	var sb strings.Builder
	sb.WriteString("Commands:")
	for _, t := range s.registry.All() {
		fmt.Fprintf(&sb, "\n  %s  %s", t.Gesture(), t.Description())
	}
	return sb.String()
}

// Run returns nil on quit, end of input or cancellation of ctx.
func (s *Shell) Run(ctx context.Context) error {
	s.presenter.Message(ctx, s.Help())

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines, readErr := s.readLines(readCtx)
	for {
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			s.logger.Info("Shell stopped", "reason", ctx.Err().Error())
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			break
		}

		gesture := entity.Gesture(strings.ToLower(strings.TrimSpace(line)))
		if gesture == "" {
			continue
		}

		t, found := s.registry.Get(gesture)
		if !found {
			s.presenter.Message(ctx, fmt.Sprintf("Unknown command %q", gesture))
			continue
		}

		s.logger.Debug("Gesture dispatched", "gesture", gesture.String())
		if err := t.Run(ctx); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Error("Command failed", "gesture", gesture.String(), "error", err)
			s.presenter.Message(ctx, "Command failed; see log for details.")
		}
	}

	if err := <-readErr; err != nil {
		return fmt.Errorf("read gestures: %w", err)
	}
	return nil
}

// readLines читает вход в отдельной горутине: блокирующий Read не должен держать Run после отмены ctx.
// После отмены горутина выходит на следующей прочитанной строке или на конце входа.
func (s *Shell) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}
