package domain

import "strings"

// Tag is the inferred operational status of a product channel.
type Tag string

const (
	TagWorking  Tag = "working"
	TagDown     Tag = "down"
	TagUpdating Tag = "updating"
	TagUnknown  Tag = "unknown"
)

// Status glyphs the bot team puts in channel names.
const (
	glyphPositive   = "\U0001F7E2" // 🟢
	glyphAlert      = "\U0001F534" // 🔴
	glyphInProgress = "\U0001F7E0" // 🟠
)

// IsValid reports whether t is one of the known tags.
func (t Tag) IsValid() bool {
	switch t {
	case TagWorking, TagDown, TagUpdating, TagUnknown:
		return true
	}
	return false
}

func (t Tag) String() string {
	return string(t)
}

// ParseTag returns the tag matching s, or empty for anything else.
func ParseTag(s string) Tag {
	t := Tag(s)
	if t.IsValid() {
		return t
	}
	return ""
}

// ClassifyChannelName maps a channel display name to a status tag.
// Glyphs take precedence over keywords; the first match wins.
func ClassifyChannelName(name string) Tag {
	switch {
	case strings.Contains(name, glyphPositive):
		return TagWorking
	case strings.Contains(name, glyphAlert):
		return TagDown
	case strings.Contains(name, glyphInProgress):
		return TagUpdating
	}

	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "work"):
		return TagWorking
	case strings.Contains(lower, "test"):
		return TagDown
	case strings.Contains(lower, "update"):
		return TagUpdating
	}

	return TagUnknown
}

// NormalizeTitle strips pictographic glyphs from a channel name, trims
// surrounding whitespace and lowercases the rest. The result is the key
// used for title-based mapping lookups.
func NormalizeTitle(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if isGlyph(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(strings.TrimSpace(b.String()))
}

func isGlyph(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // emoji and symbol planes
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // arrows, geometric shapes
		return true
	case r == 0xFE0F || r == 0x200D: // variation selector, ZWJ
		return true
	}
	return false
}
