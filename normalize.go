package filings

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	scriptBlockPattern = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	styleBlockPattern  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`)
	lineBreakPattern   = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockClosePattern  = regexp.MustCompile(`(?i)</(?:p|div)\s*>`)
	anyTagPattern      = regexp.MustCompile(`<[^>]+>`)
	numericEntity      = regexp.MustCompile(`&#(?:(\d+)|[xX]([0-9a-fA-F]+));`)
	multiSpacePattern  = regexp.MustCompile(` {2,}`)
	spaceAroundNewline = regexp.MustCompile(` *\n *`)
	manyNewlines       = regexp.MustCompile(`\n{3,}`)
)

// NormalizeHTML turns filing markup into plain text suitable for section
// isolation. It never fails; empty or non-HTML input yields a (possibly
// empty) string.
//
// Steps, in order:
//   - <script> and <style> blocks are removed with their content
//   - HTML entities (&nbsp; &amp; &quot; decimal and hex character references
//     and the typographic entities common in SEC filings) are decoded
//   - <br> becomes a newline, </p> and </div> become paragraph breaks
//   - all remaining tags are stripped, then escaped < and > are restored so
//     "&lt;" in prose never reads as markup
//   - tabs become spaces, runs of spaces collapse to one, 3+ newlines
//     collapse to exactly two, and the result is trimmed
//
// The inline-XBRL extractor must be given the original markup instead; this
// output has no tags left.
func NormalizeHTML(html string) string {
	if html == "" {
		return ""
	}
	text := html

	// 1. Non-content blocks
	text = scriptBlockPattern.ReplaceAllString(text, "")
	text = styleBlockPattern.ReplaceAllString(text, "")

	// 2. Entities
	text = normalizeHTMLEntities(text)

	// 3. Structural boundaries
	text = lineBreakPattern.ReplaceAllString(text, "\n")
	text = blockClosePattern.ReplaceAllString(text, "\n\n")

	// 4. Remaining markup
	text = anyTagPattern.ReplaceAllString(text, "")
	text = escapedBrackets.Replace(text)

	// 5. Whitespace
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = normalizeWhitespace(text)
	text = removeInvisibleChars(text)
	text = strings.ReplaceAll(text, "\t", " ")
	text = multiSpacePattern.ReplaceAllString(text, " ")
	text = spaceAroundNewline.ReplaceAllString(text, "\n")
	text = manyNewlines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// Escaped angle brackets are held in private-use runes until tags are gone.
const (
	ltPlaceholder = "\uE000"
	gtPlaceholder = "\uE001"
)

var escapedBrackets = strings.NewReplacer(ltPlaceholder, "<", gtPlaceholder, ">")

// entityReplacements holds named entities found in SEC filings.
// &amp; is decoded last so "&amp;lt;" yields the literal "&lt;".
var entityReplacements = []struct {
	entity      string
	replacement string
}{
	{"&nbsp;", " "},
	{"&lt;", ltPlaceholder},
	{"&gt;", gtPlaceholder},
	{"&quot;", "\""},
	{"&apos;", "'"},
	{"&mdash;", "—"},
	{"&ndash;", "–"},
	{"&ldquo;", "“"},
	{"&rdquo;", "”"},
	{"&lsquo;", "‘"},
	{"&rsquo;", "’"},
	{"&hellip;", "..."},
	{"&bull;", "•"},
	{"&trade;", "™"},
	{"&reg;", "®"},
	{"&copy;", "©"},
	{"&sect;", "§"},
	{"&para;", "¶"},
	{"&amp;", "&"},
}

// normalizeHTMLEntities converts common HTML entities to their Unicode equivalents
func normalizeHTMLEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}

	// Numeric entities first (&#39; &#160; &#8217; &#x2019; ...)
	text = numericEntity.ReplaceAllStringFunc(text, func(match string) string {
		m := numericEntity.FindStringSubmatch(match)
		var code int64
		var err error
		if m[1] != "" {
			code, err = strconv.ParseInt(m[1], 10, 32)
		} else {
			code, err = strconv.ParseInt(m[2], 16, 32)
		}
		if err != nil {
			return match
		}
		return decodeCodePoint(match, code)
	})

	for _, r := range entityReplacements {
		text = strings.ReplaceAll(text, r.entity, r.replacement)
	}
	return text
}

// decodeCodePoint maps a character reference to text. Curly quotes fold to
// their ASCII forms so heading patterns only need to handle one apostrophe.
func decodeCodePoint(match string, code int64) string {
	switch code {
	case 60:
		return ltPlaceholder
	case 62:
		return gtPlaceholder
	case 160:
		return " "
	case 8211:
		return "–"
	case 8212:
		return "—"
	case 8220, 8221:
		return "\""
	case 8216, 8217:
		return "'"
	}
	if code > 0 && code < 0x110000 {
		return string(rune(code))
	}
	return match
}

// normalizeWhitespace converts various Unicode whitespace characters to regular spaces
func normalizeWhitespace(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch r {
		case '\u00A0', '\u202F', '\u205F', '\u3000':
			result.WriteRune(' ')
		case '\u2000', '\u2001', '\u2002', '\u2003', '\u2004', '\u2005',
			'\u2006', '\u2007', '\u2008', '\u2009', '\u200A':
			result.WriteRune(' ')
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// removeInvisibleChars removes zero-width and other invisible characters
func removeInvisibleChars(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch r {
		case '\u200B', '\u200C', '\u200D', '\uFEFF', '\u180E':
			continue
		}
		if unicode.Is(unicode.Cf, r) {
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}
