package pipeline

import (
	"fmt"
	"strings"
)

// docTemplate wraps rendered body HTML in a complete HTML5 document.
const docTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
%s</head>
<body>
%s
</body>
</html>`

// WrapDocument produces a standalone HTML5 document around body HTML.
// A non-empty css string is embedded as a sanitized <style> block.
func WrapDocument(title, css, body string) string {
	styleBlock := ""
	if css != "" {
		styleBlock = "<style>" + sanitizeCSS(css) + "</style>\n"
	}
	if title == "" {
		title = "Document"
	}
	return fmt.Sprintf(docTemplate, title, styleBlock, body)
}

// sanitizeCSS escapes sequences that could close the <style> block
// prematurely.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
