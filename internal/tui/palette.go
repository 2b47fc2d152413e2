package tui

import "github.com/charmbracelet/lipgloss"

// Colors adapt to the terminal background.
var (
	ColorInk       = lipgloss.AdaptiveColor{Light: "#2E3440", Dark: "#ECEFF4"}
	ColorDim       = lipgloss.AdaptiveColor{Light: "#6B7385", Dark: "#8891A3"}
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#2B6F8A", Dark: "#8FBCBB"}
	ColorAccentAlt = lipgloss.AdaptiveColor{Light: "#3B5A8C", Dark: "#88A6CF"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#4C7A2E", Dark: "#A3BE8C"}
	ColorWarn      = lipgloss.AdaptiveColor{Light: "#8A6A12", Dark: "#EBCB8B"}
	ColorFail      = lipgloss.AdaptiveColor{Light: "#A3303B", Dark: "#D08770"}
)
