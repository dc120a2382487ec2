package pipeline

import (
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters.
// They pass through goldmark unchanged, so the ==highlight== feature
// needs no raw-HTML passthrough on the host parser; post-processing
// turns them into <mark> tags after HTML generation.
const (
	markStartPlaceholder = ""
	markEndPlaceholder   = ""
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.*?)==`)
)

// Preprocess prepares host Markdown for conversion: normalizes line
// endings, rewrites ==text== highlights to placeholders, and compresses
// runs of blank lines.
func Preprocess(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = highlightPattern.ReplaceAllString(content, markStartPlaceholder+"$1"+markEndPlaceholder)
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	return content
}

// RestoreHighlights converts highlight placeholders to <mark> tags.
// Called after HTML generation, completing the ==highlight== feature.
func RestoreHighlights(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, markStartPlaceholder, "<mark>"),
		markEndPlaceholder, "</mark>",
	)
}
