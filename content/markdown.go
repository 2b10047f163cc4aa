package content

import (
	"fmt"
	"regexp"
	"strings"
)

// styleBlock is the fixed CSS prepended to every converted article. The
// output is idempotently styled: any input produces the same block followed
// by one container element.
const styleBlock = `
<style>
.mr-article p { margin: 0 0 1rem; }
.mr-article h1 { margin: 1.5rem 0 1rem; font-weight: 700; font-size: 1.875rem; }
.mr-article h2 { margin: 1.25rem 0 .5rem; font-weight: 700; font-size: 1.5rem; }
.mr-article h3 { margin: 1rem 0 .5rem; font-weight: 600; font-size: 1.25rem; }
.mr-article ul { margin: .5rem 0 1rem; padding-left: 1.25rem; }
.mr-article ol { margin: .5rem 0 1rem; padding-left: 1.25rem; }
.mr-article li { margin: .35rem 0; }
.mr-article blockquote {
    margin: 1.25rem 0;
    padding: .75rem 1rem;
    border-left: 3px solid #e5e7eb;
    background: #fafafa;
    border-radius: .25rem;
    font-style: italic;
}
.mr-article hr { margin: 1.25rem 0; border: 0; border-top: 1px solid #eee; }
.mr-article img { max-width: 100%; height: auto; border-radius: .25rem; }
.mr-article strong { font-weight: 600; }
.mr-article em { font-style: italic; }
.mr-article code {
    background: #f3f4f6;
    padding: .125rem .25rem;
    border-radius: .25rem;
    font-family: monospace;
}
</style>`

type blockKind int

const (
	blockBlank blockKind = iota
	blockHeading
	blockListItem
	blockParagraph
	blockRaw // already-tagged or otherwise untouched lines
)

// block is one classified source line. The converter never validates or
// repairs markdown; classification is lossy but deterministic.
type block struct {
	kind  blockKind
	level int // heading level, 1-3
	text  string
}

var (
	boldRe    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe  = regexp.MustCompile(`\*(.+?)\*`)
	orderedRe = regexp.MustCompile(`^\d+\. (.+)$`)
)

// ConvertMarkdown renders a markdown subset (h1-h3 headers, bold, italic,
// bullet and numbered lists, paragraphs) as styled HTML: the fixed style
// block followed by a single container div wrapping the transformed body.
func ConvertMarkdown(markdown string) string {
	body := renderBlocks(classify(markdown))
	return styleBlock + `<div class="mr-article">` + body + `</div>`
}

// classify splits the source into typed line blocks. Headers are anchored at
// the line start; list markers tolerate leading whitespace; lines already
// starting with a tag (or an unrecognized '#' form) pass through unchanged.
func classify(markdown string) []block {
	lines := strings.Split(markdown, "\n")
	blocks := make([]block, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			blocks = append(blocks, block{kind: blockBlank})
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, block{kind: blockHeading, level: 3, text: line[len("### "):]})
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, block{kind: blockHeading, level: 2, text: line[len("## "):]})
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, block{kind: blockHeading, level: 1, text: line[len("# "):]})
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			blocks = append(blocks, block{kind: blockListItem, text: trimmed[2:]})
		case orderedRe.MatchString(trimmed):
			blocks = append(blocks, block{kind: blockListItem, text: orderedRe.FindStringSubmatch(trimmed)[1]})
		case strings.HasPrefix(trimmed, "<"), strings.HasPrefix(trimmed, "#"):
			blocks = append(blocks, block{kind: blockRaw, text: trimmed})
		default:
			blocks = append(blocks, block{kind: blockParagraph, text: trimmed})
		}
	}
	return blocks
}

// renderBlocks emits HTML lines joined by single newlines. Runs of adjacent
// list items merge into one <ul>; blank lines inside a run do not split it,
// any other block does. Blank lines and empty paragraphs are dropped from
// the final output.
func renderBlocks(blocks []block) string {
	var out []string
	var items []string

	flush := func() {
		if len(items) == 0 {
			return
		}
		out = append(out, "<ul>"+strings.Join(items, "\n")+"</ul>")
		items = nil
	}

	for _, b := range blocks {
		switch b.kind {
		case blockBlank:
			// keeps an open list run alive
		case blockListItem:
			items = append(items, "<li>"+emphasize(b.text)+"</li>")
		case blockHeading:
			flush()
			out = append(out, fmt.Sprintf("<h%d>%s</h%d>", b.level, emphasize(b.text), b.level))
		case blockRaw:
			flush()
			out = append(out, b.text)
		case blockParagraph:
			flush()
			if text := emphasize(b.text); text != "" {
				out = append(out, "<p>"+text+"</p>")
			}
		}
	}
	flush()

	return strings.Join(out, "\n")
}

// emphasize converts inline **bold** then *italic* spans, non-greedy within
// the line. Unbalanced markers stay literal.
func emphasize(text string) string {
	text = boldRe.ReplaceAllString(text, "<strong>$1</strong>")
	return italicRe.ReplaceAllString(text, "<em>$1</em>")
}
