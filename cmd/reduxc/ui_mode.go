package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto  uiMode = "auto"
	uiModeTUI   uiMode = "tui"
	uiModePlain uiMode = "plain"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "tui", "on":
		return uiModeTUI, nil
	case "plain", "off":
		return uiModePlain, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|tui|plain)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeTUI:
		return true
	case uiModePlain:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
