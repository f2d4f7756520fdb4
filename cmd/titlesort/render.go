package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"titlesort/internal/organizer"
)

type reportRenderer struct {
	out      io.Writer
	format   string
	colorize bool
	printer  *message.Printer
}

func newReportRenderer(out io.Writer, format string, colorize bool) *reportRenderer {
	if colorize {
		text.EnableColors()
	}
	return &reportRenderer{
		out:      out,
		format:   format,
		colorize: colorize,
		printer:  message.NewPrinter(reportLanguage()),
	}
}

// outcome streams plain-format lines as the organizer decides them; other
// formats render once the run finishes.
func (r *reportRenderer) outcome(o organizer.Outcome) {
	if r.format != "plain" {
		return
	}
	if o.CreatedDir {
		fmt.Fprintf(r.out, "%s %s\n", r.paint("created", text.FgCyan), o.Key)
	}
	fmt.Fprintf(r.out, "%s %s\n", r.paint(statusLabel(o), statusColor(o.Kind)), outcomeDetail(o))
}

func (r *reportRenderer) finish(s *organizer.Summary) error {
	switch r.format {
	case "json":
		return writeJSON(r.out, s)
	case "yaml":
		return writeYAML(r.out, s)
	case "table":
		if len(s.Outcomes) > 0 {
			fmt.Fprintln(r.out, r.outcomeTable(s))
		}
	}
	_, err := fmt.Fprintln(r.out, r.summaryLine(s))
	return err
}

func (r *reportRenderer) summaryLine(s *organizer.Summary) string {
	if s.Eligible == 0 {
		return fmt.Sprintf("No MP4 files found in %s", s.Target)
	}
	verb := "Organized"
	if s.DryRun {
		verb = "Dry run: would organize"
	}
	return r.printer.Sprintf("%s %d/%d files (%d skipped, %d failed, %d folders created)",
		verb, s.Moved, s.Eligible, s.Skipped, s.Errors, len(s.CreatedDirs()))
}

func (r *reportRenderer) outcomeTable(s *organizer.Summary) string {
	rows := make([][]string, 0, len(s.Outcomes))
	for i, o := range s.Outcomes {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.paint(statusLabel(o), statusColor(o.Kind)),
			o.File,
			outcomeTarget(o),
		})
	}
	return renderTable(
		[]string{"#", "Result", "File", "Destination / Reason"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	)
}

func (r *reportRenderer) paint(value string, color text.Color) string {
	if !r.colorize {
		return value
	}
	return color.Sprint(value)
}

func statusLabel(o organizer.Outcome) string {
	if o.Kind == organizer.OutcomeMoved && o.DryRun {
		return "would move"
	}
	return string(o.Kind)
}

func statusColor(kind organizer.OutcomeKind) text.Color {
	switch kind {
	case organizer.OutcomeMoved:
		return text.FgGreen
	case organizer.OutcomeSkipped:
		return text.FgYellow
	default:
		return text.FgRed
	}
}

func outcomeDetail(o organizer.Outcome) string {
	if o.Kind == organizer.OutcomeMoved {
		return o.File + " -> " + outcomeTarget(o)
	}
	return o.File + ": " + outcomeTarget(o)
}

// outcomeTarget is the destination relative to the organized directory, or
// the reason for skips and errors.
func outcomeTarget(o organizer.Outcome) string {
	if o.Kind != organizer.OutcomeMoved {
		return o.Reason
	}
	rel, err := filepath.Rel(filepath.Dir(o.Source), o.Destination)
	if err != nil {
		return o.Destination
	}
	return rel
}

// reportLanguage picks number formatting from LC_ALL / LANG, defaulting to English.
func reportLanguage() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_NUMERIC", "LANG"} {
		value := strings.TrimSpace(os.Getenv(key))
		if value == "" {
			continue
		}
		if i := strings.IndexAny(value, ".@"); i >= 0 {
			value = value[:i]
		}
		if tag, err := language.Parse(strings.ReplaceAll(value, "_", "-")); err == nil {
			return tag
		}
		break
	}
	return language.English
}

func shouldColorize(writer any) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
