package tela

import (
	"os"
	"strings"
)

// trueColorEnvVars identify terminal emulators known to support 24-bit
// color even when TERM doesn't say so.
var trueColorEnvVars = []string{
	"WT_SESSION",       // Windows Terminal
	"ITERM_SESSION_ID", // iTerm2
	"KITTY_WINDOW_ID",  // Kitty
	"KONSOLE_VERSION",  // Konsole
	"VTE_VERSION",      // VTE-based (GNOME Terminal, Tilix)
	"ALACRITTY_WINDOW_ID",
}

// syncUpdateEnvVars identify emulators known to honor synchronized
// update blocks (mode 2026).
var syncUpdateEnvVars = []string{
	"ITERM_SESSION_ID",
	"KITTY_WINDOW_ID",
	"ALACRITTY_WINDOW_ID",
	"WEZTERM_EXECUTABLE",
}

// DetectCapabilities determines terminal capabilities from environment
// variables. Returns conservative defaults when detection fails.
func DetectCapabilities() Capabilities {
	caps := Capabilities{
		Colors:    Color16, // Safe default for most terminals
		Unicode:   true,    // Assume modern terminal
		AltScreen: true,
		Mouse:     true,
	}

	for _, v := range syncUpdateEnvVars {
		if os.Getenv(v) != "" {
			caps.SyncUpdate = true
			break
		}
	}

	// Explicit true color indicators override everything else.
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		caps.Colors = ColorTrue
		caps.TrueColor = true
	}
	for _, v := range trueColorEnvVars {
		if os.Getenv(v) != "" {
			caps.Colors = ColorTrue
			caps.TrueColor = true
			break
		}
	}
	if caps.TrueColor {
		return caps
	}

	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case term == "dumb":
		caps.Colors = ColorNone
		caps.Unicode = false
		caps.AltScreen = false
		caps.Mouse = false
	case strings.Contains(term, "truecolor"):
		caps.Colors = ColorTrue
		caps.TrueColor = true
	case strings.Contains(term, "256color"):
		caps.Colors = Color256
	}

	return caps
}

// SupportsColor returns true if the terminal supports the given color type.
func (c Capabilities) SupportsColor(color Color) bool {
	switch color.Type() {
	case ColorDefault:
		return true
	case ColorANSI:
		return c.Colors >= Color16
	case ColorRGB:
		return c.TrueColor
	}
	return false
}

// EffectiveColor returns the color to use given the terminal's capabilities.
// RGB colors are approximated to the ANSI palette where true color is
// unavailable; unsupported colors degrade to the terminal default.
func (c Capabilities) EffectiveColor(color Color) Color {
	if c.SupportsColor(color) {
		return color
	}

	switch color.Type() {
	case ColorRGB:
		if c.Colors >= Color16 {
			return color.ToANSI()
		}
		return DefaultColor()
	case ColorANSI:
		if c.Colors < Color16 {
			return DefaultColor()
		}
		return color
	default:
		return color
	}
}

// String returns a human-readable description of the capabilities.
func (c Capabilities) String() string {
	var parts []string

	switch c.Colors {
	case ColorNone:
		parts = append(parts, "no-color")
	case Color16:
		parts = append(parts, "16-color")
	case Color256:
		parts = append(parts, "256-color")
	case ColorTrue:
		parts = append(parts, "true-color")
	}

	if c.Unicode {
		parts = append(parts, "unicode")
	} else {
		parts = append(parts, "ascii")
	}
	if c.AltScreen {
		parts = append(parts, "altscreen")
	}
	if c.Mouse {
		parts = append(parts, "mouse")
	}
	if c.SyncUpdate {
		parts = append(parts, "sync-update")
	}

	return strings.Join(parts, ", ")
}
