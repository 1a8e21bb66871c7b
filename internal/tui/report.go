package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/sunset/pkg/sunset"
)

// RenderInventory writes every marker of each report, due or not, followed by
// a per-root summary line.
func RenderInventory(w io.Writer, th Theme, reports []sunset.ScanReport) error {
	for i, r := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, th.Title.Render(fmt.Sprintf("%s (version %s)", r.Root, r.CurrentVersion))); err != nil {
			return err
		}

		width := 0
		for _, m := range r.Markers {
			width = max(width, lipgloss.Width(m.ElementName))
		}

		due := 0
		for _, m := range r.Markers {
			state := th.Pending.Render(SymbolCheck + " pending")
			if m.Due {
				due++
				state = th.Due.Render(SymbolCross + " due    ")
			}
			line := fmt.Sprintf("  %s  %s  %s", state, pad(m.ElementName, width), m.ThresholdVersion)
			if note := markerNote(m.Reason, m.Replacement); note != "" {
				line += "  " + th.Muted.Render(note)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}

		for _, s := range r.Skipped {
			line := fmt.Sprintf("  %s skipped %s: %s", SymbolBullet, s.Artifact, s.Reason)
			if _, err := fmt.Fprintln(w, th.Warning.Render(line)); err != nil {
				return err
			}
		}

		summary := fmt.Sprintf("  %d unit(s), %d marker(s), %d due, %d skipped",
			r.UnitsLoaded, len(r.Markers), due, len(r.Skipped))
		if _, err := fmt.Fprintln(w, th.Muted.Render(summary)); err != nil {
			return err
		}
	}
	return nil
}

// RenderViolations writes one rendered violation per line under a header
// naming the current version. Used when violations must not fail the run.
func RenderViolations(w io.Writer, th Theme, currentVersion string, violations []sunset.Violation) error {
	header := fmt.Sprintf("%s %d element(s) should have been removed (current version: %s):",
		SymbolWarning, len(violations), currentVersion)
	if _, err := fmt.Fprintln(w, th.Warning.Render(header)); err != nil {
		return err
	}
	for _, v := range violations {
		if _, err := fmt.Fprintln(w, "  "+th.Due.Render(v.String())); err != nil {
			return err
		}
	}
	return nil
}

// RenderSuccess writes the line printed when no violation was found.
func RenderSuccess(w io.Writer, th Theme, currentVersion string, units int) error {
	line := fmt.Sprintf("%s No expired declarations (version %s, %d unit(s) checked)", SymbolCheck, currentVersion, units)
	_, err := fmt.Fprintln(w, th.Success.Render(line))
	return err
}

func markerNote(reason, replacement string) string {
	switch {
	case reason != "" && replacement != "":
		return reason + " -> " + replacement
	case replacement != "":
		return "-> " + replacement
	default:
		return reason
	}
}

func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
