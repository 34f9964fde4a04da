// Package textutil holds the string primitives used by the replacement engine.
package textutil

import (
	"strings"

	"github.com/haxorport/postman-rewrite/internal/domain/model"
)

// Span is the half-open byte range [Start, End) of a match
type Span struct {
	Start int
	End   int
}

// CaseInsensitiveEquals reports whether a and b are equal ignoring case
func CaseInsensitiveEquals(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ReplaceFirst replaces the first literal occurrence of before with after.
// s is returned unchanged when before does not occur.
func ReplaceFirst(s, before, after string) string {
	return strings.Replace(s, before, after, 1)
}

// FindPathPart returns the non-overlapping occurrences of token in path,
// left to right, where token stands for one or more whole path segments: it
// must follow a '/' and be followed by '/', '?', '#' or the end of path.
// Leading and trailing slashes of token are ignored.
func FindPathPart(path, token string) []Span {
	token = strings.Trim(token, "/")
	if token == "" {
		return nil
	}

	var spans []Span
	for from := 0; from < len(path); {
		i := strings.Index(path[from:], token)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(token)
		if start > 0 && path[start-1] == '/' && (end == len(path) || isSegmentEnd(path[end])) {
			spans = append(spans, Span{Start: start, End: end})
			from = end
			continue
		}
		from = start + 1
	}
	return spans
}

// ReplacePathPartInURL substitutes the path variable of r inside a URL or a
// request name. Only the path portion is searched: it starts after
// scheme://authority when s has a scheme and ends before the query or
// fragment.
func ReplacePathPartInURL(s string, r model.PathReplacement) string {
	start, end := pathRange(s)
	spans := FindPathPart(s[start:end], r.Before)
	for i := range spans {
		spans[i].Start += start
		spans[i].End += start
	}
	return splice(s, spans, replacementText(r))
}

// ReplacePathPartInPathArray substitutes the path variable of r inside a
// segment list. The occurrences are the ones ReplacePathPartInURL finds in
// the same path written as a string. A new slice is returned.
func ReplacePathPartInPathArray(segments []string, r model.PathReplacement) []string {
	if len(segments) == 0 {
		return append([]string(nil), segments...)
	}
	joined := "/" + strings.Join(segments, "/")
	spans := FindPathPart(joined, r.Before)
	if len(spans) == 0 {
		return append([]string(nil), segments...)
	}
	return strings.Split(splice(joined, spans, replacementText(r))[1:], "/")
}

func isSegmentEnd(c byte) bool {
	return c == '/' || c == '?' || c == '#'
}

// pathRange returns the byte range [start, end) of the path portion of s
func pathRange(s string) (int, int) {
	start := 0
	if i := strings.Index(s, "://"); i >= 0 && !strings.ContainsAny(s[:i], "/?#") {
		authority := i + len("://")
		j := strings.IndexAny(s[authority:], "/?#")
		if j < 0 || s[authority+j] != '/' {
			return len(s), len(s)
		}
		start = authority + j
	}
	end := len(s)
	if k := strings.IndexAny(s[start:], "?#"); k >= 0 {
		end = start + k
	}
	return start, end
}

// replacementText trims the slashes FindPathPart ignores on the token so
// that both sides of a replacement span the same segments
func replacementText(r model.PathReplacement) string {
	if strings.HasPrefix(r.Before, "/") || strings.HasSuffix(r.Before, "/") {
		return strings.Trim(r.After, "/")
	}
	return r.After
}

func splice(s string, spans []Span, replacement string) string {
	if len(spans) == 0 {
		return s
	}
	var b strings.Builder
	last := 0
	for _, span := range spans {
		b.WriteString(s[last:span.Start])
		b.WriteString(replacement)
		last = span.End
	}
	b.WriteString(s[last:])
	return b.String()
}
