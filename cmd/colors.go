package cmd

import (
	"strings"

	"github.com/fatih/color"

	"github.com/dorkx-sec/dorkx-cli/internal/risk"
)

var (
	colorSuccess  = color.New(color.FgGreen).SprintFunc()
	colorInfo     = color.New(color.FgCyan).SprintFunc()
	colorWarn     = color.New(color.FgYellow).SprintFunc()
	colorError    = color.New(color.FgRed).SprintFunc()
	colorCritical = color.New(color.FgRed, color.Bold).SprintFunc()
)

func formatTierWithColor(tier risk.Tier) string {
	label := tier.Label()
	switch tier {
	case risk.TierCritical:
		return colorCritical(label)
	case risk.TierHigh:
		return colorError(label)
	case risk.TierMedium:
		return colorWarn(label)
	case risk.TierLow:
		return colorSuccess(label)
	default:
		return colorInfo(label)
	}
}

func formatStatusWithColor(status string) string {
	switch strings.ToLower(status) {
	case "completed", "ok", "success":
		return colorSuccess(status)
	case "failed", "aborted", "error":
		return colorError(status)
	case "running", "executing":
		return colorInfo(status)
	default:
		return status
	}
}
