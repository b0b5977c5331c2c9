package control

import (
	"strconv"
	"strings"
	"unicode"
)

// ChannelKind identifies which slot array a reading belongs to.
type ChannelKind int

const (
	Fill ChannelKind = iota
	Net
)

// String returns the wire prefix used in control tags.
func (k ChannelKind) String() string {
	switch k {
	case Fill:
		return "PESO FILL"
	case Net:
		return "PESO NETO"
	default:
		return "UNKNOWN"
	}
}

// Tag is a parsed channel tag. Slot is 1-based; zero means the tag carried
// no slot number (legacy form).
type Tag struct {
	Kind     ChannelKind
	Slot     int
	HasSlot  bool
	Original string
}

// prefixes must stay ordered longest first.
var prefixes = []struct {
	text string
	kind ChannelKind
}{
	{"PESO FILL", Fill},
	{"PESO NETO", Net},
}

// ParseTag extracts the channel kind and optional slot from a tag such as
// "PESO FILL 3" or "PESO NETO". Matching is case-sensitive and the prefix
// must be followed by whitespace or the end of the string. A remainder made
// of decimal digits is an explicit slot; any other remainder is treated as
// the legacy un-slotted form.
func ParseTag(tag string) (Tag, bool) {
	for _, p := range prefixes {
		if !strings.HasPrefix(tag, p.text) {
			continue
		}
		rest := tag[len(p.text):]
		if rest != "" && !unicode.IsSpace(rune(rest[0])) {
			continue
		}

		parsed := Tag{Kind: p.kind, Original: tag}
		rest = strings.TrimSpace(rest)
		if rest != "" && isDigits(rest) {
			n, err := strconv.Atoi(rest)
			if err != nil {
				// overflows int; cannot address any slot
				n = -1
			}
			parsed.Slot = n
			parsed.HasSlot = true
		}
		return parsed, true
	}
	return Tag{}, false
}

// FormatTag renders the wire form of a tag. A slot below 1 yields the
// legacy form without a number.
func FormatTag(kind ChannelKind, slot int) string {
	if slot < 1 {
		return kind.String()
	}
	return kind.String() + " " + strconv.Itoa(slot)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
