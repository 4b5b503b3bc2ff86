package userinteraction

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"element-inspector/internal/application/port/output"
	"element-inspector/internal/domain/entity"
	"element-inspector/internal/infrastructure/render"
)

var _ output.PresenterPort = (*ConsolePresenter)(nil)

type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// ConsolePresenter: канал представления: печатает отчёт целиком одним блоком.
type ConsolePresenter struct {
	out    io.Writer
	format Format
}

func NewConsolePresenter(format Format) *ConsolePresenter {
	return NewConsolePresenterTo(os.Stdout, format)
}

func NewConsolePresenterTo(out io.Writer, format Format) *ConsolePresenter {
	return &ConsolePresenter{
		out:    out,
		format: format,
	}
}

func (p *ConsolePresenter) Present(ctx context.Context, report *entity.Report) error {
	if report == nil {
		report = entity.UnavailableReport(entity.MsgInternal)
	}

	var block string
	switch {
	case p.format == FormatHTML:
		block = render.HTML(report)
	case report.Unavailable:
		block = color.New(color.FgYellow).Sprint(report.Text())
	default:
		block = report.Text()
	}

	if _, err := io.WriteString(p.out, block); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (p *ConsolePresenter) Message(ctx context.Context, text string) {
	dim := color.New(color.Faint)
	dim.Fprintln(p.out, text)
}
