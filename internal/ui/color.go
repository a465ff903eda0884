// Package ui holds theme-aware terminal color helpers.
package ui

import (
	"github.com/pterm/pterm"
)

var darkTheme bool

// SetDarkTheme selects the bright color variants for dark terminals.
func SetDarkTheme(enabled bool) {
	darkTheme = enabled
}

func Green(a any) string {
	if darkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Magenta(a any) string {
	if darkTheme {
		return pterm.LightMagenta(a)
	}

	return pterm.Magenta(a)
}

func Blue(a any) string {
	if darkTheme {
		return pterm.LightBlue(a)
	}

	return pterm.Blue(a)
}

func Red(a any) string {
	if darkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

func Highlight(a any) string {
	if darkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Black(a)
}
