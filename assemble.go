package mdexec

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// hideMarker drops a source line from the displayed code block while
// still executing it.
const hideMarker = "mdexec: hide"

// codeFence uses eight backticks so fenced blocks inside the displayed
// source never terminate the outer fence.
const codeFence = "````````"

// Assemble combines a block's source and its execution output into the
// Markdown text handed to fragment conversion. location selects the
// arrangement; extra options are re-emitted on the source code block.
//
// The location is validated first: an unsupported value fails before
// any output is assembled.
func Assemble(source, location, output, language string, tabs Tabs, extra map[string]string) (string, error) {
	switch location {
	case LocationAbove, LocationBelow, LocationTabbedLeft, LocationTabbedRight, LocationMaterialBlock, LocationConsole:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocation, location)
	}

	source = hideLines(source)

	if location == LocationConsole {
		return codeBlock(language, source+"\n"+output, extra), nil
	}

	sourceBlock := codeBlock(language, source, extra)
	switch location {
	case LocationAbove:
		return sourceBlock + "\n\n" + output, nil
	case LocationBelow:
		return output + "\n\n" + sourceBlock, nil
	case LocationMaterialBlock:
		return sourceBlock + "\n\n" + resultBlock(output), nil
	case LocationTabbedLeft:
		return tabbed(tab{tabs.Source, sourceBlock}, tab{tabs.Result, output}), nil
	default: // LocationTabbedRight
		return tabbed(tab{tabs.Result, output}, tab{tabs.Source, sourceBlock}), nil
	}
}

// hideLines strips source lines carrying the hide marker.
func hideLines(source string) string {
	lines := strings.Split(source, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(line, hideMarker) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// codeBlock formats code as a fenced block, re-emitting extra options
// as key="value" pairs on the info line. Options are emitted in sorted
// order so output is deterministic.
func codeBlock(language, code string, extra map[string]string) string {
	info := language
	if len(extra) > 0 {
		keys := make([]string, 0, len(extra))
		for k := range extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			info += fmt.Sprintf(" %s=%q", k, extra[k])
		}
	}
	return codeFence + info + "\n" + code + "\n" + codeFence
}

// resultBlock wraps output in the result container used by the
// material-block placement.
func resultBlock(output string) string {
	return "<div class=\"result\">\n\n" + output + "\n\n</div>"
}

// tab is one titled section of a tab set.
type tab struct {
	title string
	body  string
}

// tabbed renders titled sections as a raw-HTML tab set: radio inputs,
// labels, and one content block per tab. The fixed input identifiers
// never collide between blocks because fragment conversion prefixes
// every id, name and label target with the invocation's namespace
// token. Tab bodies are separated from the scaffolding by blank lines
// so they are parsed as Markdown.
func tabbed(tabs ...tab) string {
	var b strings.Builder
	b.WriteString("<div class=\"tabbed-set\">\n")
	for i := range tabs {
		checked := ""
		if i == 0 {
			checked = " checked=\"checked\""
		}
		fmt.Fprintf(&b, "<input%s id=\"__tabbed_1_%d\" name=\"__tabbed_1\" type=\"radio\" />\n", checked, i+1)
	}
	b.WriteString("<div class=\"tabbed-labels\">\n")
	for i, t := range tabs {
		title := strings.TrimSpace(strings.ReplaceAll(t.title, `\|`, "|"))
		fmt.Fprintf(&b, "<label for=\"__tabbed_1_%d\">%s</label>\n", i+1, html.EscapeString(title))
	}
	b.WriteString("</div>\n")
	for _, t := range tabs {
		b.WriteString("<div class=\"tabbed-block\">\n\n")
		b.WriteString(t.body)
		b.WriteString("\n\n</div>\n")
	}
	b.WriteString("</div>")
	return b.String()
}
