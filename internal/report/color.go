package report

import (
	"fmt"
	"io"
	"os"

	"github.com/funvibe/overload/internal/config"

	"github.com/mattn/go-isatty"
)

// ColorMode selects when ANSI colors are emitted.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode parses auto, always or never. The empty string is auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// useColor resolves mode for the given writer.
func useColor(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv(config.NoColorEnv); ok {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	// Not a terminal
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// =============================================================================
// ANSI escape code helpers
// =============================================================================

const (
	fgRed   = 31
	fgGreen = 32
	fgCyan  = 36
)

func (p *Printer) ansiWrap(code, resetCode, s string) string {
	if !p.color {
		return s
	}
	return code + s + resetCode
}

func (p *Printer) fg(colorCode int, s string) string {
	return p.ansiWrap(fmt.Sprintf("\033[%dm", colorCode), "\033[39m", s)
}

func (p *Printer) bold(s string) string {
	return p.ansiWrap("\033[1m", "\033[22m", s)
}

func (p *Printer) dim(s string) string {
	return p.ansiWrap("\033[2m", "\033[22m", s)
}
