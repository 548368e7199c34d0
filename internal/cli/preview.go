package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/jmylchreest/undertone/pkg/colour"
)

// ANSI escape codes for 24-bit terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	swatchWidth  = 6
)

var ansiPattern = regexp.MustCompile("\033\\[[0-9;]*m")

// previewMode controls whether colour swatches are printed.
type previewMode string

const (
	previewAuto   previewMode = "auto"
	previewAlways previewMode = "always"
	previewNever  previewMode = "never"
)

func previewModes() []string {
	return []string{string(previewAuto), string(previewAlways), string(previewNever)}
}

// enabled resolves the mode for w. Auto previews only when w is a terminal.
func (m previewMode) enabled(w io.Writer) bool {
	switch m {
	case previewAlways:
		return true
	case previewNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}

// swatch returns a solid block of c, width cells wide.
func swatch(c colour.RGB, width int) string {
	if width <= 0 {
		width = swatchWidth
	}
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix) +
		strings.Repeat(" ", width) + ansiReset
}

// swatchWithText returns a block of c with text centred over it in black or
// white, whichever contrasts more.
func swatchWithText(c colour.RGB, text string, width int) string {
	if width <= 0 {
		width = swatchWidth
	}

	fg := colour.RGB{R: 255, G: 255, B: 255}
	black := colour.RGB{}
	if colour.ContrastRatio(c, black) > colour.ContrastRatio(c, fg) {
		fg = black
	}

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		display = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix) +
		fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix) +
		display + ansiReset
}

// visibleWidth returns the printed width of s, ignoring ANSI escape codes.
func visibleWidth(s string) int {
	return utf8.RuneCountInString(ansiPattern.ReplaceAllString(s, ""))
}
