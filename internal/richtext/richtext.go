package richtext

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"contentpicker/internal/domain"
)

// URLDisplayLimit is the width URLs are truncated to in result lists
const URLDisplayLimit = 55

const ellipsis = "…"

// StripMarkup returns the text content of an HTML fragment with entities decoded
func StripMarkup(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a truncated fragment, keep what was read
			return DecodeEntities(b.String())
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			if name, _ := z.TagName(); isRawText(name) {
				skip++
			} else if string(name) == "br" {
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isRawText(name) && skip > 0 {
				skip--
			}
		case html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				b.WriteByte(' ')
			}
		}
	}
}

func isRawText(name []byte) bool {
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}

// DecodeEntities decodes HTML character references
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(s)
}

// Span is a run of text, highlighted when it matched the search term
type Span struct {
	Text  string
	Match bool
}

// Highlight splits text around every case-insensitive occurrence of term
func Highlight(text, term string) []Span {
	term = strings.TrimSpace(term)
	if term == "" || text == "" {
		return []Span{{Text: text}}
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
	if err != nil {
		return []Span{{Text: text}}
	}

	var spans []Span
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: text[last:loc[0]]})
		}
		spans = append(spans, Span{Text: text[loc[0]:loc[1]], Match: true})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	if len(spans) == 0 {
		spans = []Span{{Text: text}}
	}
	return spans
}

var protocolPrefix = regexp.MustCompile(`^(?:https?:)//(?:www\.)?`)

var bareHostWithSlash = regexp.MustCompile(`^[^/]+/$`)

// FilterURLForDisplay removes the protocol and www prefix, and the trailing
// slash of a bare host
func FilterURLForDisplay(u string) string {
	filtered := protocolPrefix.ReplaceAllString(u, "")
	if bareHostWithSlash.MatchString(filtered) {
		filtered = strings.TrimSuffix(filtered, "/")
	}
	return filtered
}

// SafeDecodeURI percent-decodes u, returning it unchanged when malformed
func SafeDecodeURI(u string) string {
	decoded, err := url.PathUnescape(u)
	if err != nil {
		return u
	}
	return decoded
}

// TruncateMiddle shortens s to limit runes by replacing its middle with an ellipsis
func TruncateMiddle(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return ellipsis
	}

	keep := limit - 1
	head := (keep + 1) / 2
	tail := keep - head
	return string(runes[:head]) + ellipsis + string(runes[len(runes)-tail:])
}

// DisplayURL is the URL line shown under a result title
func DisplayURL(u string) string {
	return TruncateMiddle(FilterURLForDisplay(SafeDecodeURI(u)), URLDisplayLimit)
}

// DefaultRenderItemType labels a suggestion's type
func DefaultRenderItemType(s domain.Suggestion) string {
	if s.Type == "post_tag" {
		return "tag"
	}
	if s.Subtype != "" {
		return s.Subtype
	}
	return s.Type
}
