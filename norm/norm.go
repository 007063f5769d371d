// Package norm provides encoding-safe text cleanup for extracted page
// content. Every extraction strategy routes message text through it so
// that broken encodings, control characters, and HTML entities never
// reach the output.
package norm

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	xnorm "golang.org/x/text/unicode/norm"
)

var (
	// Exotic Unicode space characters that should become plain spaces.
	unicodeSpaces = regexp.MustCompile(`[\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}]`)
	spaceRuns     = regexp.MustCompile(`[ \t]+`)
	newlineRuns   = regexp.MustCompile(`\n+`)
)

// zeroWidth maps invisible characters to their replacements.
var zeroWidth = strings.NewReplacer(
	"\u200b", "", // zero-width space
	"\u200c", "", // zero-width non-joiner
	"\u200d", "", // zero-width joiner
	"\ufeff", "", // byte order mark
	"\u00a0", " ", // non-breaking space
)

// Bytes decodes raw bytes to a string using a fallback chain: UTF-8
// (with BOM stripping), then Latin-1. It never fails; Latin-1 maps
// every byte, so any input decodes to something.
func Bytes(data []byte) string {
	if utf8.Valid(data) {
		out, _, err := transform.Bytes(xunicode.UTF8BOM.NewDecoder(), data)
		if err == nil {
			return string(out)
		}
		return string(data)
	}

	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return string(out)
}

// Text normalizes a string for output: NFC-composes characters, strips
// control and zero-width characters, normalizes whitespace (single
// newlines preserved), and decodes HTML entities. The result is always
// valid UTF-8.
func Text(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ReplaceAll(s, "�", "")
	s = xnorm.NFC.String(s)
	s = zeroWidth.Replace(s)
	s = stripControl(s)
	s = normalizeWhitespace(s)
	s = html.UnescapeString(s)
	s = strings.ToValidUTF8(s, "")

	return strings.TrimSpace(s)
}

// Inline is Text with all whitespace collapsed to single spaces,
// suitable for one-line message content.
func Inline(s string) string {
	return strings.Join(strings.Fields(Text(s)), " ")
}

// ValidContent reports whether text looks like real message content
// rather than garbled bytes: it must be non-empty, contain fewer than
// 30% control characters, and at least 70% printable characters.
func ValidContent(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}

	total, control, printable := 0, 0, 0
	for _, r := range s {
		total++
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			control++
		}
		if unicode.IsGraphic(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}

	if float64(control)/float64(total) > 0.3 {
		return false
	}
	if float64(printable)/float64(total) < 0.7 {
		return false
	}
	return true
}

// stripControl removes control characters except common whitespace.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// normalizeWhitespace converts exotic spaces to plain ones, CRLF/CR to
// LF, and collapses runs of spaces and newlines.
func normalizeWhitespace(s string) string {
	s = unicodeSpaces.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n")
	return s
}
