package domain

import "testing"

func TestClassifyChannelName(t *testing.T) {
	tests := []struct {
		name     string
		channel  string
		expected Tag
	}{
		// Glyphs
		{"positive glyph", "🟢 order-status", TagWorking},
		{"alert glyph", "🔴 order-status", TagDown},
		{"in-progress glyph", "🟠 order-status", TagUpdating},
		// Glyph precedence over keywords
		{"positive glyph beats test keyword", "🟢 test-channel", TagWorking},
		{"alert glyph beats work keyword", "🔴 working-fine", TagDown},
		{"in-progress glyph beats update keyword", "🟠 update-soon", TagUpdating},
		// Keywords
		{"work keyword", "everything-works", TagWorking},
		{"keyword test", "test-environment", TagDown},
		{"update keyword", "pending-update", TagUpdating},
		{"keyword case-insensitive", "WORKING-GREAT", TagWorking},
		// Fallback
		{"no glyph no keyword", "general-chat", TagUnknown},
		{"empty name", "", TagUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyChannelName(tt.channel)
			if got != tt.expected {
				t.Errorf("ClassifyChannelName(%q) = %q, want %q", tt.channel, got, tt.expected)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"🟢 order-status", "order-status"},
		{"Order-Status", "order-status"},
		{"  spaced  ", "spaced"},
		{"🔴🟠 Mixed Glyphs", "mixed glyphs"},
		{"🛠️ tools", "tools"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeTitle(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		input    string
		expected Tag
	}{
		{"working", TagWorking},
		{"down", TagDown},
		{"updating", TagUpdating},
		{"unknown", TagUnknown},
		{"invalid", ""},
		{"", ""},
		{"WORKING", ""}, // case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseTag(tt.input)
			if got != tt.expected {
				t.Errorf("ParseTag(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
