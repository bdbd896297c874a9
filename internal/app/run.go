package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/specialistvlad/factoryflow/internal/analysis"
	"github.com/specialistvlad/factoryflow/internal/ctxlog"
	"github.com/specialistvlad/factoryflow/internal/layout"
	"github.com/specialistvlad/factoryflow/internal/network"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/specialistvlad/factoryflow/internal/app"

// ErrUnresolvedNodes is returned after the report is written when
// FailOnUnresolved is set and some transport node received no purpose.
var ErrUnresolvedNodes = errors.New("layout has transport nodes with no purpose")

// Run analyses the configured layout and writes the report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "app.run")
	defer span.End()
	a.logger.Debug("App.Run method started.", "layout", a.config.LayoutPath)

	report, err := a.Analyse(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(
		attribute.Int("factoryflow.nodes", report.Nodes),
		attribute.Int("factoryflow.machines", report.Machines),
		attribute.Int("factoryflow.unresolved", len(report.Unresolved)),
	)

	if err := report.Encode(a.outW, a.config.Output); err != nil {
		return err
	}
	a.logger.Info("Analysis finished.",
		"nodes", report.Nodes, "machines", report.Machines,
		"assigned", len(report.Assignments), "unresolved", len(report.Unresolved))

	if a.config.FailOnUnresolved && len(report.Unresolved) > 0 {
		return fmt.Errorf("%w: %d node(s)", ErrUnresolvedNodes, len(report.Unresolved))
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// Analyse runs every stage up to the report without writing it.
func (a *App) Analyse(ctx context.Context) (*analysis.Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	var (
		bp     *layout.Blueprint
		grid   *layout.Grid
		nw     *network.Network
		report *analysis.Report
	)

	err := stage(ctx, "layout.decode", func(ctx context.Context) error {
		data, err := os.ReadFile(a.config.LayoutPath)
		if err != nil {
			return fmt.Errorf("failed to read layout: %w", err)
		}
		bp, err = layout.Decode(data)
		if err != nil {
			return fmt.Errorf("failed to decode layout %s: %w", a.config.LayoutPath, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = stage(ctx, "layout.grid", func(ctx context.Context) error {
		var err error
		grid, err = layout.NewGrid(ctx, bp, a.catalog)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to lay out %s: %w", a.config.LayoutPath, err)
	}

	err = stage(ctx, "network.build", func(ctx context.Context) error {
		nw = network.Build(ctx, grid)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = stage(ctx, "network.propagate", func(ctx context.Context) error {
		nw.CalculateBottleneck(ctx)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = stage(ctx, "analysis.report", func(ctx context.Context) error {
		var err error
		report, err = analysis.Analyse(ctx, nw)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to analyse %s: %w", a.config.LayoutPath, err)
	}

	report.Label = bp.Label
	if len(report.Loops) > 0 {
		ctxlog.FromContext(ctx).Info("Belt loops found.", "count", len(report.Loops))
	}
	return report, nil
}

// stage runs fn inside a child span named name.
func stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
