package inspect

import (
	"context"
	"fmt"
	"time"

	"element-inspector/internal/application/port/input"
	"element-inspector/internal/application/port/output"
	"element-inspector/internal/application/service"
	"element-inspector/internal/domain/entity"
)

var _ input.Inspector = (*UseCase)(nil)

type Config struct {
	MaxAncestorDepth   int
	MaxDescendants     int
	MaxDescendantDepth int
}

func DefaultConfig() Config {
	return Config{
		MaxAncestorDepth:   service.DefaultMaxAncestorDepth,
		MaxDescendants:     service.DefaultMaxDescendants,
		MaxDescendantDepth: service.DefaultMaxDescendantDepth,
	}
}

// UseCase: конвейер: чтение снимка, обход предков, политика, сборка отчёта.
type UseCase struct {
	reader    *service.SnapshotReader
	walker    *service.AncestorWalker
	assembler *service.ReportAssembler
	logger    output.LoggerPort
	cfg       Config
}

func New(tree output.AccessibleTreePort, logger output.LoggerPort, cfg Config) *UseCase {
	if cfg.MaxAncestorDepth <= 0 {
		cfg.MaxAncestorDepth = service.DefaultMaxAncestorDepth
	}
	if cfg.MaxDescendants <= 0 {
		cfg.MaxDescendants = service.DefaultMaxDescendants
	}
	if cfg.MaxDescendantDepth <= 0 {
		cfg.MaxDescendantDepth = service.DefaultMaxDescendantDepth
	}

	reader := service.NewSnapshotReader(tree, logger)
	return &UseCase{
		reader:    reader,
		walker:    service.NewAncestorWalker(tree, reader, logger),
		assembler: service.NewReportAssembler(),
		logger:    logger,
		cfg:       cfg,
	}
}

func (uc *UseCase) Inspect(ctx context.Context, req input.InspectRequest) (report *entity.Report) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			uc.logger.Error("Inspection panicked", "error", fmt.Sprint(rec))
			report = entity.UnavailableReport(entity.MsgInternal)
		}
	}()

	if !req.BrowseMode {
		uc.logger.Info("Inspection refused outside browse mode")
		return entity.UnavailableReport(entity.MsgNotBrowsing)
	}
	if !req.HasFocus || req.Focused == "" {
		uc.logger.Info("Inspection refused: no focused element")
		return entity.UnavailableReport(entity.MsgNoFocus)
	}

	log := uc.logger.WithField("node", req.Focused.String())

	focused := uc.reader.ReadFacts(ctx, req.Focused)
	ancestors := uc.walker.WalkAncestors(ctx, req.Focused, uc.cfg.MaxAncestorDepth)

	if req.Advanced {
		descendants, truncated := uc.walker.WalkDescendants(ctx, req.Focused, uc.cfg.MaxDescendants, uc.cfg.MaxDescendantDepth)
		report = uc.assembler.AssembleAdvanced(focused, ancestors, descendants, truncated)
		uc.assembler.AddDocument(report, req.DocumentURL)
		log.Debug("Advanced report assembled",
			"ancestors", len(ancestors),
			"descendants", len(descendants),
			"truncated", truncated,
			"duration_ms", time.Since(start).Milliseconds())
		return report
	}

	report = uc.assembler.Assemble(focused, ancestors)
	uc.assembler.AddDocument(report, req.DocumentURL)
	log.Debug("Report assembled",
		"ancestors", len(ancestors),
		"sections", len(report.Sections),
		"duration_ms", time.Since(start).Milliseconds())
	return report
}
