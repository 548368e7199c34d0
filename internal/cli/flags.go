package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/undertone/pkg/colour"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

// enumValue is a string flag restricted to a fixed set of values.
type enumValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(def string, allowed ...string) *enumValue {
	return &enumValue{value: def, allowed: allowed}
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !slices.Contains(e.allowed, s) {
		return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
	}
	e.value = s
	return nil
}

func (e *enumValue) Type() string { return "string" }

// addFormatFlag registers --format/-f on fs.
func addFormatFlag(fs *pflag.FlagSet) *enumValue {
	v := newEnumValue(formatText, formatText, formatJSON)
	fs.VarP(v, "format", "f", "output format (text, json)")
	return v
}

// addPreviewFlag registers --preview on fs. A bare --preview means always.
func addPreviewFlag(fs *pflag.FlagSet) *enumValue {
	v := newEnumValue(string(previewAuto), previewModes()...)
	fs.Var(v, "preview", "show colour swatches (auto, always, never)")
	fs.Lookup("preview").NoOptDefVal = string(previewAlways)
	return v
}

// parseColour parses a colour given as hex ("#e69664", "e96") or as
// comma-separated channels ("230,150,100").
func parseColour(s string) (colour.RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ",") {
		c, err := colour.HexToRGB(s)
		if err != nil {
			return colour.RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		return c, nil
	}

	s = strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")")
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return colour.RGB{}, fmt.Errorf("invalid colour %q: expected r,g,b", s)
	}

	var ch [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return colour.RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		if v < 0 || v > 255 {
			return colour.RGB{}, fmt.Errorf("invalid colour %q: channel %d out of range 0-255", s, v)
		}
		ch[i] = v
	}
	return colour.NewRGB(ch[0], ch[1], ch[2]), nil
}
