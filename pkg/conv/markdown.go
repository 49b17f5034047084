package conv

import (
	"io"
	"strconv"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags | html.HrefTargetBlank
	tgPolicy   = bluemonday.NewPolicy()
)

func init() {
	// Allowed tags https://core.telegram.org/bots/api#html-style
	tgPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	tgPolicy.AllowAttrs("href").OnElements("a")
	tgPolicy.AllowAttrs("class").OnElements("code")
}

// MarkdownToTelegramHTML renders a model answer into the HTML subset Telegram
// accepts. Headings become bold lines and list items keep a visible marker,
// since both tags would otherwise be stripped and their text run together.
func MarkdownToTelegramHTML(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags:          htmlFlags,
		RenderNodeHook: telegramNode,
	})
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	return string(tgPolicy.SanitizeBytes(unsafeHTML))
}

func telegramNode(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	switch n := node.(type) {
	case *ast.Heading:
		if entering {
			_, _ = io.WriteString(w, "<b>")
		} else {
			_, _ = io.WriteString(w, "</b>\n")
		}
		return ast.GoToNext, true
	case *ast.List:
		return ast.GoToNext, true
	case *ast.ListItem:
		if entering {
			_, _ = io.WriteString(w, listMarker(n))
		} else {
			_, _ = io.WriteString(w, "\n")
		}
		return ast.GoToNext, true
	}
	return ast.GoToNext, false
}

// listMarker numbers items of ordered lists from the list's start value.
func listMarker(item *ast.ListItem) string {
	list, ok := item.GetParent().(*ast.List)
	if !ok || list.ListFlags&ast.ListTypeOrdered == 0 {
		return "• "
	}

	start := list.Start
	if start == 0 {
		start = 1
	}
	for i, child := range list.GetChildren() {
		if child == ast.Node(item) {
			return strconv.Itoa(start+i) + ". "
		}
	}
	return strconv.Itoa(start) + ". "
}
