// FILE: lixenwraith/filelog/sanitizer/sanitizer.go
// Package sanitizer provides a fluent and composable interface for sanitizing
// strings before they are flattened into a log line, based on configurable
// rules using bitwise filter flags and transforms.
package sanitizer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Filter flags for character matching
const (
	FilterNonPrintable uint64 = 1 << iota // Matches runes not classified as printable by strconv.IsPrint
	FilterControl                         // Matches control characters (unicode.IsControl)
	FilterLineBreak                       // Matches '\n' and '\r'
	FilterDelimiter                       // Matches the '|' field delimiter of the default line format
)

// Transform flags for character transformation
const (
	TransformStrip      uint64 = 1 << iota // Removes the character
	TransformHexEncode                     // Encodes the character's UTF-8 bytes as "<XXYY>"
	TransformJSONEscape                    // Escapes the character with JSON-style backslashes (e.g., '\n', '\u0000')
	TransformSpace                         // Replaces the character with a single space
)

// PolicyPreset defines pre-configured sanitization policies
type PolicyPreset string

const (
	PolicyRaw   PolicyPreset = "raw"   // Raw is a no-op (passthrough)
	PolicyLine  PolicyPreset = "line"  // Keeps a record on one physical line by escaping control characters
	PolicyHex   PolicyPreset = "hex"   // Hex-encodes everything that is not printable
	PolicyField PolicyPreset = "field" // Line policy plus delimiter stripping, for pipe-delimited fields
)

// rule represents a single sanitization rule
type rule struct {
	filter    uint64
	transform uint64
}

// policyRules contains pre-configured rules for each policy
var policyRules = map[PolicyPreset][]rule{
	PolicyRaw:  {},
	PolicyLine: {{filter: FilterControl, transform: TransformJSONEscape}},
	PolicyHex:  {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyField: {
		{filter: FilterDelimiter, transform: TransformSpace},
		{filter: FilterControl, transform: TransformJSONEscape},
	},
}

// filterOrder fixes the evaluation order of filter flags inside a single rule
var filterOrder = []uint64{FilterNonPrintable, FilterControl, FilterLineBreak, FilterDelimiter}

// filterCheckers maps individual filter flags to their check functions
var filterCheckers = map[uint64]func(rune) bool{
	FilterNonPrintable: func(r rune) bool { return !strconv.IsPrint(r) },
	FilterControl:      unicode.IsControl,
	FilterLineBreak:    func(r rune) bool { return r == '\n' || r == '\r' },
	FilterDelimiter:    func(r rune) bool { return r == '|' },
}

// Sanitizer provides chainable text sanitization.
// A Sanitizer may be shared between goroutines once its rules are set.
type Sanitizer struct {
	rules []rule
	mu    sync.Mutex
	buf   []byte
}

// New creates a new Sanitizer instance
func New() *Sanitizer {
	return &Sanitizer{
		rules: []rule{},
		buf:   make([]byte, 0, 256),
	}
}

// Rule adds a custom rule to the sanitizer (appended, earliest rule applies first)
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy applies a pre-configured policy to the sanitizer (appended)
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize applies all configured rules to the input string
func (s *Sanitizer) Sanitize(data string) string {
	if len(s.rules) == 0 {
		return data
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = s.buf[:0]
	for _, r := range data {
		matched := false
		// First matching rule wins
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				applyTransform(&s.buf, r, rl.transform)
				matched = true
				break
			}
		}
		if !matched {
			s.buf = utf8.AppendRune(s.buf, r)
		}
	}

	return string(s.buf)
}

// ParsePolicy maps a policy name to its preset
func ParsePolicy(name string) (PolicyPreset, error) {
	p := PolicyPreset(name)
	if _, ok := policyRules[p]; !ok {
		return "", fmt.Errorf("sanitizer: unknown policy '%s' (use raw, line, hex, or field)", name)
	}
	return p, nil
}

// matchesFilter checks if a rune matches any filter in the mask
func matchesFilter(r rune, filterMask uint64) bool {
	for _, flag := range filterOrder {
		if (filterMask&flag) != 0 && filterCheckers[flag](r) {
			return true
		}
	}
	return false
}

// applyTransform applies the specified transform to the buffer
func applyTransform(buf *[]byte, r rune, transformMask uint64) {
	switch {
	case (transformMask & TransformStrip) != 0:
		// Do nothing (strip)

	case (transformMask & TransformSpace) != 0:
		*buf = append(*buf, ' ')

	case (transformMask & TransformHexEncode) != 0:
		var runeBytes [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeBytes[:], r)
		*buf = append(*buf, '<')
		*buf = append(*buf, hex.EncodeToString(runeBytes[:n])...)
		*buf = append(*buf, '>')

	case (transformMask & TransformJSONEscape) != 0:
		AppendEscaped(buf, r)
	}
}

// AppendEscaped appends r using JSON-style escaping for control characters,
// quotes and backslashes. Other runes are appended unchanged.
func AppendEscaped(buf *[]byte, r rune) {
	switch r {
	case '\n':
		*buf = append(*buf, '\\', 'n')
	case '\r':
		*buf = append(*buf, '\\', 'r')
	case '\t':
		*buf = append(*buf, '\\', 't')
	case '\b':
		*buf = append(*buf, '\\', 'b')
	case '\f':
		*buf = append(*buf, '\\', 'f')
	case '"':
		*buf = append(*buf, '\\', '"')
	case '\\':
		*buf = append(*buf, '\\', '\\')
	default:
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			*buf = append(*buf, fmt.Sprintf("\\u%04x", r)...)
		} else {
			*buf = utf8.AppendRune(*buf, r)
		}
	}
}
