package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"titlesort/internal/config"
	"titlesort/internal/logging"
	"titlesort/internal/organizer"
	"titlesort/internal/runlock"
	"titlesort/internal/services"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var outputFlag string
	var colorFlag string

	cmd := &cobra.Command{
		Use:     "organize <directory>",
		Aliases: []string{"run"},
		Short:   "Move numbered 《Title》 episode files into per-title folders",
		Long: `Organize moves every *.mp4 file directly inside <directory> whose name looks
like "12 - 《Title》anything.mp4" into <directory>/Title/, creating the folder
when needed. Existing files are never replaced: a clash becomes name_1.mp4,
name_2.mp4, and so on. Subfolders and other files are left alone.`,
		Args: checkedArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			format, err := resolveOutputFormat(outputFlag, cfg.Output.Format)
			if err != nil {
				return err
			}
			colorize, err := resolveColor(colorFlag, cfg.Output.Color, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			expanded, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve directory: %w", err)
			}
			target, err := organizer.ValidateTarget(expanded)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			runCtx := services.WithRunID(cmd.Context(), uuid.NewString())
			runCtx = services.WithTarget(runCtx, target)

			if !dryRun {
				lock, err := runlock.Acquire(cfg.Paths.LockDir, target)
				if err != nil {
					return err
				}
				defer func() {
					if err := lock.Release(); err != nil {
						logger.WarnContext(runCtx, "failed to release run lock", logging.Error(err), logging.String("lock", lock.Path()))
					}
				}()
			}

			report := newReportRenderer(cmd.OutOrStdout(), format, colorize)
			org := organizer.New(logger, organizer.Options{
				DryRun:    dryRun,
				OnOutcome: report.outcome,
			})

			summary, runErr := org.Run(runCtx, target)
			if summary != nil {
				if err := report.finish(summary); err != nil {
					return fmt.Errorf("render report: %w", err)
				}
			}
			if runErr != nil {
				return runErr
			}
			if summary.Errors > 0 {
				return fmt.Errorf("%d of %d files could not be organized", summary.Errors, summary.Eligible)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be moved without changing anything")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Report format: table, plain, json, or yaml (default from config)")
	cmd.Flags().StringVar(&colorFlag, "color", "", "Color mode: auto, always, or never (default from config)")
	return cmd
}

func resolveOutputFormat(flagValue, configured string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flagValue))
	if format == "" {
		return configured, nil
	}
	if !slices.Contains(config.ValidOutputFormats(), format) {
		return "", usageError(fmt.Errorf("--output: unsupported value %q (expected one of %v)", flagValue, config.ValidOutputFormats()))
	}
	return format, nil
}

func resolveColor(flagValue, configured string, out any) (bool, error) {
	mode := strings.ToLower(strings.TrimSpace(flagValue))
	if mode == "" {
		mode = configured
	}
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if strings.EqualFold(os.Getenv("TERM"), "dumb") {
			return false, nil
		}
		return shouldColorize(out), nil
	default:
		return false, usageError(fmt.Errorf("--color: unsupported value %q (expected auto, always, or never)", flagValue))
	}
}
