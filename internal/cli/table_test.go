package cli

import (
	"strings"
	"testing"

	"github.com/jmylchreest/undertone/pkg/colour"
)

func TestNewTable(t *testing.T) {
	table := NewTable([]string{"Tone", "Season", "Subtype"})

	if table == nil {
		t.Fatal("NewTable returned nil")
	}
	if len(table.headers) != 3 {
		t.Errorf("Expected 3 headers, got %d", len(table.headers))
	}
	if table.padding != 2 {
		t.Errorf("Expected padding of 2, got %d", table.padding)
	}
}

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"Tone", "Season"})

	table.AddRow([]string{"true-spring", "spring"})
	table.AddRow([]string{"deep-winter"})
	table.AddRow([]string{"soft-autumn", "autumn", "extra"})

	if len(table.rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(table.rows))
	}
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("Expected short row to be padded, got %q", table.rows[1])
	}
	if len(table.rows[2]) != 2 {
		t.Errorf("Expected long row to be truncated to 2 columns, got %d", len(table.rows[2]))
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"Tone", "Season", "Hex"})
	table.AddRow([]string{"light-spring", "spring", "#f0c08f"})
	table.AddRow([]string{"true-winter", "winter", "#3a5a9a"})

	output := table.Render()
	for _, want := range []string{"Tone", "Season", "Hex", "light-spring", "winter", "#3a5a9a"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output should contain %q", want)
		}
	}

	lines := strings.Split(output, "\n")
	if len(lines) < 4 {
		t.Fatalf("Expected at least 4 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "---") {
		t.Errorf("Expected separator line with dashes, got: %q", lines[1])
	}
	if len(lines[1]) != len(lines[0]) {
		t.Errorf("Separator length (%d) should match header length (%d)", len(lines[1]), len(lines[0]))
	}
}

func TestTableRenderEmpty(t *testing.T) {
	table := &Table{headers: []string{}, padding: 2}
	if output := table.Render(); output != "" {
		t.Errorf("Expected empty string for empty table, got: %q", output)
	}

	output := NewTable([]string{"Name", "Deadband"}).Render()
	if !strings.Contains(output, "Deadband") {
		t.Error("Output should contain headers even without rows")
	}
}

func TestTableIgnoresANSIWidth(t *testing.T) {
	table := NewTable([]string{"Swatch", "Hex"})
	table.AddRow([]string{swatch(colour.RGB{R: 230, G: 150, B: 100}, 4), "#e69664"})
	table.AddRow([]string{"plain", "#000000"})

	lines := strings.Split(table.Render(), "\n")
	// Swatch column is as wide as its header (6), so the hex column starts at 8.
	for i, line := range lines[2:4] {
		plain := ansiPattern.ReplaceAllString(line, "")
		if idx := strings.Index(plain, "#"); idx != 8 {
			t.Errorf("row %d: hex column at %d, want 8 (%q)", i, idx, plain)
		}
	}
}

func TestTableWrapsLongCells(t *testing.T) {
	table := NewTable([]string{"Name", "Description"})
	table.SetColumnMaxWidth(1, 20)
	table.AddRow([]string{"skin-light", "Light skin: undertone boundary raised to the typical b* of fair skin"})

	lines := strings.Split(strings.TrimRight(table.Render(), "\n"), "\n")
	if len(lines) < 4 {
		t.Fatalf("Expected wrapped description over several lines, got %d lines", len(lines))
	}
	for _, line := range lines[2:] {
		if len(strings.TrimRight(line, " ")) > len("skin-light")+2+20 {
			t.Errorf("line exceeds wrapped width: %q", line)
		}
	}
}

func TestTableAlignRight(t *testing.T) {
	table := NewTable([]string{"Tone", "b"})
	table.AlignRight(1)
	table.AddRow([]string{"true-winter", "-38"})
	table.AddRow([]string{"light-spring", "30"})

	lines := strings.Split(table.Render(), "\n")
	if lines[0] != "Tone            b" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[2], " -38") || !strings.HasSuffix(lines[3], "  30") {
		t.Errorf("numbers not right-aligned:\n%s\n%s", lines[2], lines[3])
	}
}

func TestPadLeft(t *testing.T) {
	if got := padLeft("7", 3); got != "  7" {
		t.Errorf("padLeft(7, 3) = %q, want %q", got, "  7")
	}
	if got := padLeft("1234", 3); got != "1234" {
		t.Errorf("padLeft(1234, 3) = %q, want unchanged", got)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"},
		{"", 5, "     "},
		{ansiFgPrefix + "1;2;3" + ansiSuffix + "ab" + ansiReset, 4, ansiFgPrefix + "1;2;3" + ansiSuffix + "ab" + ansiReset + "  "},
	}

	for _, tt := range tests {
		result := padRight(tt.input, tt.width)
		if result != tt.expected {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, result, tt.expected)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{text: "short", width: 10, want: []string{"short"}},
		{text: "warm golden undertone", width: 11, want: []string{"warm golden", "undertone"}},
		{text: "abcdefghij", width: 4, want: []string{"abcd", "efgh", "ij"}},
		{text: "anything", width: 0, want: []string{"anything"}},
		{text: "a bcdefgh", width: 4, want: []string{"a", "bcde", "fgh"}},
		{text: "teinte chaude légère", width: 8, want: []string{"teinte", "chaude", "légère"}},
	}

	for _, tt := range tests {
		got := wrapText(tt.text, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
