package main

import (
	"fmt"

	"strikearr/internal/preflight"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

const (
	statusLabelWidth = 24
	statusIndent     = "  "
)

func renderCheckLine(result preflight.Result, colorize bool) string {
	status, color := "OK", ansiGreen
	if !result.Passed {
		status, color = "FAIL", ansiRed
	}
	statusText := fmt.Sprintf("[%s]", status)
	if result.Detail != "" {
		statusText = fmt.Sprintf("[%s] %s", status, result.Detail)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, result.Name+":", statusText)
	if colorize {
		return color + base + ansiReset
	}
	return base
}
