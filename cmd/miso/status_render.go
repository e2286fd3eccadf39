package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
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

var greetingLines = []string{
	"MISO (Mixture of Isoforms model)",
	"Probabilistic analysis of RNA-Seq data to detect differential isoforms",
	"Use --help argument to view options.",
}

func renderGreeting(colorize bool) []string {
	lines := make([]string, len(greetingLines))
	copy(lines, greetingLines)
	if colorize {
		lines[0] = ansiBlue + lines[0] + ansiReset
	}
	return lines
}

func writeGreeting(out io.Writer, showVersion bool) {
	for _, line := range renderGreeting(shouldColorize(out)) {
		fmt.Fprintln(out, line)
	}
	if showVersion {
		fmt.Fprintf(out, "MISO version %s\n", version)
	}
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		return statusKindColor(kind) + base + ansiReset
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	default:
		return ansiRed
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
