package app

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/example/ankistats/internal/config"
	"github.com/example/ankistats/internal/database"
	"github.com/example/ankistats/internal/export"
	"github.com/example/ankistats/internal/locator"
	"github.com/example/ankistats/pkg/models"
)

// App runs one export: locate the collection, extract daily counts, write the files
type App struct {
	cfg  *config.Config
	home string
	log  *zap.Logger
	out  *console
	now  func() time.Time
}

// New creates an App printing user-facing progress to out
func New(cfg *config.Config, home string, log *zap.Logger, out io.Writer) *App {
	return &App{
		cfg:  cfg,
		home: home,
		log:  log,
		out:  &console{w: out},
		now:  time.Now,
	}
}

// Run executes the pipeline once. The returned error wraps one of
// locator.ErrDatabaseNotFound, database.ErrDatabaseUnreadable or export.ErrWriteFailed.
func (a *App) Run(ctx context.Context) error {
	start := a.now()
	a.out.banner()

	path, err := a.locate()
	if err != nil {
		return err
	}

	counts, err := a.extract(ctx, path)
	if err != nil {
		return err
	}

	if err := a.write(counts); err != nil {
		return err
	}

	a.out.nextSteps(a.cfg.OutputPath)
	a.log.Info("export finished", zap.Duration("elapsed", a.now().Sub(start)))
	return nil
}

func (a *App) locate() (string, error) {
	candidates := a.cfg.Candidates(a.home)
	a.log.Debug("locating database",
		zap.String("configured", a.cfg.DatabasePath),
		zap.Strings("candidates", candidates),
	)

	path, err := locator.Locate(a.cfg.DatabasePath, candidates)
	if err != nil {
		a.log.Error("database not found", zap.Error(err))
		a.out.notFound(a.cfg.DatabasePath, candidates)
		return "", err
	}
	if path != a.cfg.DatabasePath {
		a.out.autoDetected(a.cfg.DatabasePath, path)
	}
	return path, nil
}

func (a *App) extract(ctx context.Context, path string) (models.DailyCounts, error) {
	a.out.reading(path)

	counts, err := database.ExtractDailyCounts(ctx, path, a.cfg.DateMode())
	if err != nil {
		a.log.Error("extraction failed", zap.String("path", path), zap.Error(err))
		a.out.failure("Database error", err)
		return nil, err
	}

	a.log.Info("extracted daily counts",
		zap.String("path", path),
		zap.String("timezone", string(a.cfg.DateMode())),
		zap.Int("days", len(counts)),
	)
	a.out.extracted(models.Summarize(counts))
	return counts, nil
}

func (a *App) write(counts models.DailyCounts) error {
	updated := a.now()

	res, err := export.WriteJSON(a.cfg.OutputPath, counts, updated)
	if err != nil {
		a.log.Error("write failed", zap.String("path", a.cfg.OutputPath), zap.Error(err))
		a.out.failure("Failed to save JSON file", err)
		return err
	}
	a.log.Info("wrote export", zap.String("path", res.Path), zap.Int64("bytes", res.Size))
	a.out.saved(res)

	if a.cfg.ReportPath == "" {
		return nil
	}
	res, err = export.WriteReport(a.cfg.ReportPath, counts, updated, export.DefaultReportConfig())
	if err != nil {
		a.log.Error("report write failed", zap.String("path", a.cfg.ReportPath), zap.Error(err))
		a.out.failure("Failed to save report", err)
		return err
	}
	a.log.Info("wrote report", zap.String("path", res.Path), zap.Int64("bytes", res.Size))
	a.out.saved(res)
	return nil
}

// ExitCode maps a Run result to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Describe names the failure class of err for diagnostics
func Describe(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, locator.ErrDatabaseNotFound):
		return "database not found"
	case errors.Is(err, database.ErrDatabaseUnreadable):
		return "database unreadable"
	case errors.Is(err, export.ErrWriteFailed):
		return "write failed"
	default:
		return "failed"
	}
}
