package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"diptych/internal/preflight"
)

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "OK"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ansiGreen
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

// preflightLines renders one status line per check plus a trailing summary
// when any check failed.
func preflightLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results)+1)
	for _, result := range results {
		kind := statusOK
		detail := result.Detail
		if !result.Passed {
			kind = statusError
			if detail == "" {
				detail = "check failed"
			}
		}
		lines = append(lines, renderStatusLine(result.Name, kind, detail, colorize))
	}
	if failed := preflight.Failed(results); len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for _, result := range failed {
			names = append(names, result.Name)
		}
		lines = append(lines, renderStatusLine("Failed checks", statusError,
			fmt.Sprintf("%s (fix these before running diptych)", strings.Join(names, ", ")), colorize))
	}
	return lines
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
