package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"titlesort/internal/fileutil"
	"titlesort/internal/logging"
	"titlesort/internal/services"
)

const stageName = "organizing"

// Options tunes a run.
type Options struct {
	// DryRun computes every verdict and destination without touching the
	// filesystem.
	DryRun bool
	// OnOutcome, when set, receives each outcome as soon as it is decided.
	OnOutcome func(Outcome)
}

// Organizer moves conforming files into per-title folders.
type Organizer struct {
	logger *slog.Logger
	opts   Options

	mkdirAll func(path string, perm os.FileMode) error
	moveFile func(src, dst string) error
}

// New constructs an organizer. A nil logger discards output.
func New(logger *slog.Logger, opts Options) *Organizer {
	return &Organizer{
		logger:   logging.NewComponentLogger(logger, "organizer"),
		opts:     opts,
		mkdirAll: os.MkdirAll,
		moveFile: fileutil.MoveFile,
	}
}

// run holds per-invocation state.
type run struct {
	target  string
	logger  *slog.Logger
	summary *Summary
	// plannedDirs and reserved stand in for filesystem changes during a dry run.
	plannedDirs map[string]bool
	reserved    map[string]bool
}

// Run organizes target. The returned error is non-nil only when the target is
// unusable (services.ErrInvalidTarget, nothing is touched) or ctx was
// cancelled between files; in the latter case the summary holds the outcomes
// decided so far.
func (o *Organizer) Run(ctx context.Context, target string) (*Summary, error) {
	abs, err := ValidateTarget(target)
	if err != nil {
		return nil, err
	}

	ctx = services.WithTarget(ctx, abs)
	logger := logging.WithContext(ctx, o.logger)

	candidates, err := Scan(abs)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidTarget, stageName, "list target", "failed to list directory", err)
	}

	summary := &Summary{
		Target:   abs,
		DryRun:   o.opts.DryRun,
		Eligible: len(candidates),
		Outcomes: make([]Outcome, 0, len(candidates)),
	}
	if id, ok := services.RunIDFromContext(ctx); ok {
		summary.RunID = id
	}
	r := &run{
		target:      abs,
		logger:      logger,
		summary:     summary,
		plannedDirs: map[string]bool{},
		reserved:    map[string]bool{},
	}

	logger.Info("starting organization",
		logging.Int("eligible", len(candidates)),
		logging.Bool("dry_run", o.opts.DryRun),
	)

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			logger.Warn("organization cancelled",
				logging.Int("processed", len(summary.Outcomes)),
				logging.Int("remaining", len(candidates)-len(summary.Outcomes)),
			)
			return summary, err
		}
		outcome := o.process(r, c)
		summary.record(outcome)
		o.report(r, outcome)
	}

	logger.Info("organization completed",
		logging.Int("eligible", summary.Eligible),
		logging.Int("moved", summary.Moved),
		logging.Int("skipped", summary.Skipped),
		logging.Int("errors", summary.Errors),
	)
	return summary, nil
}

// ValidateTarget resolves target to an absolute path and checks that it is an
// existing, readable directory. Failures carry services.ErrInvalidTarget.
func ValidateTarget(target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidTarget, stageName, "resolve target", target, err)
	}
	if err := fileutil.CheckReadableDir(abs); err != nil {
		return "", services.Wrap(services.ErrInvalidTarget, stageName, "validate target", "target must be an existing, readable directory", err)
	}
	return abs, nil
}

func (o *Organizer) process(r *run, c Candidate) Outcome {
	outcome := Outcome{File: c.Name, Source: c.Path, DryRun: o.opts.DryRun}

	key, ok := ExtractKey(c.Name)
	if !ok {
		outcome.Kind = OutcomeSkipped
		outcome.Reason = ReasonNonConforming
		return outcome
	}
	outcome.Key = key
	if !safeKey(key) {
		outcome.Kind = OutcomeSkipped
		outcome.Reason = ReasonUnsafeKey
		return outcome
	}

	destDir := filepath.Join(r.target, key)
	created, err := o.ensureDir(r, destDir)
	if err != nil {
		return failed(outcome, services.Wrap(services.ErrProvisioning, stageName, "create directory", key, err))
	}
	outcome.CreatedDir = created

	dest, err := ResolveDestination(destDir, c.Name, r.taken)
	if err != nil {
		return failed(outcome, services.Wrap(services.ErrMove, stageName, "resolve destination", c.Name, err))
	}

	if o.opts.DryRun {
		r.reserved[dest] = true
		outcome.Kind = OutcomeMoved
		outcome.Destination = dest
		return outcome
	}

	err = o.moveFile(c.Path, dest)
	if errors.Is(err, fileutil.ErrDestinationExists) {
		// Something claimed the slot after it was checked; pick the next one.
		dest, err = ResolveDestination(destDir, c.Name, r.taken)
		if err == nil {
			err = o.moveFile(c.Path, dest)
		}
	}
	if err != nil {
		return failed(outcome, services.Wrap(services.ErrMove, stageName, "move file", c.Name, err))
	}

	outcome.Kind = OutcomeMoved
	outcome.Destination = dest
	return outcome
}

// ensureDir makes sure dir is a real directory, creating it when absent. It
// reports whether this call created it.
func (o *Organizer) ensureDir(r *run, dir string) (bool, error) {
	info, err := os.Lstat(dir)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, fmt.Errorf("%s exists and is not a directory", dir)
	case !errors.Is(err, os.ErrNotExist):
		return false, err
	}

	if o.opts.DryRun {
		if r.plannedDirs[dir] {
			return false, nil
		}
		r.plannedDirs[dir] = true
		return true, nil
	}
	if err := o.mkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	return true, nil
}

func (r *run) taken(path string) (bool, error) {
	if r.reserved[path] {
		return true, nil
	}
	return fileutil.Exists(path)
}

func failed(outcome Outcome, err error) Outcome {
	outcome.Kind = OutcomeError
	outcome.Reason = err.Error()
	outcome.Err = err
	return outcome
}

func (o *Organizer) report(r *run, outcome Outcome) {
	logger := r.logger.With(logging.String("file", outcome.File))
	if outcome.CreatedDir {
		logger.Info("created directory", logging.String("key", outcome.Key), logging.Bool("dry_run", outcome.DryRun))
	}
	switch outcome.Kind {
	case OutcomeMoved:
		rel, err := filepath.Rel(r.target, outcome.Destination)
		if err != nil {
			rel = outcome.Destination
		}
		logger.Info("moved file", logging.String("destination", rel), logging.Bool("dry_run", outcome.DryRun))
	case OutcomeSkipped:
		logger.Info("skipped file", logging.String("reason", outcome.Reason))
	case OutcomeError:
		hint := "check permissions and free space in the target directory"
		if errors.Is(outcome.Err, services.ErrProvisioning) {
			hint = "remove or rename the conflicting entry in the target directory"
		}
		logging.WarnWithContext(logger, "failed to organize file", "organize_file_failed",
			logging.Error(outcome.Err),
			logging.String(logging.FieldErrorHint, hint),
		)
	}
	if o.opts.OnOutcome != nil {
		o.opts.OnOutcome(outcome)
	}
}
