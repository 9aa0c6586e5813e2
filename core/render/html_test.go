package render

import (
	"strings"
	"testing"

	"github.com/gaurav-prasanna/richtree/core/convert"
	"github.com/gaurav-prasanna/richtree/core/doctree"
	"github.com/gaurav-prasanna/richtree/core/mdast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragment(t *testing.T, r *HTMLRenderer, d *doctree.Node) string {
	t.Helper()
	out, err := r.Fragment(d)
	require.NoError(t, err)
	return out
}

func TestHTMLFragmentKeepsTagNames(t *testing.T) {
	bold := doctree.Mark{Type: doctree.MarkStrong, Attrs: doctree.Attrs{"rawHTML": "B"}}
	d := doc(
		n(doctree.NodeDiv, doctree.Attrs{"rawHTML": "DIV", "class": "c", "style": nil},
			para(txt("Hello "), txt("world", bold))),
	)
	assert.Equal(t, "<DIV class=\"c\"><p>Hello <B>world</B></p></DIV>\n", fragment(t, NewHTMLRenderer(), d))
}

func TestHTMLFragmentBlocks(t *testing.T) {
	out := fragment(t, NewHTMLRenderer(), sampleDoc())

	assert.Contains(t, out, "<h1>Intro</h1>")
	assert.Contains(t, out, `<p>See <a href="https://go.dev">docs</a><a href="https://go.dev"><b> here</b></a>.</p>`)
	assert.Contains(t, out, `<pre><code class="language-go">x := 1</code></pre>`)
	assert.Contains(t, out, `<li data-task="" data-task-checked=""><p>two</p></li>`)
	assert.Contains(t, out, `<th align="center"><p>h</p></th>`)
	assert.Contains(t, out, `<div class="note"><p>boxed</p></div>`)
	assert.Contains(t, out, `<img alt="A" src="a.png"/>`)
	assert.Contains(t, out, "<hr/>")
	assert.NotContains(t, out, "textAlign")
}

func TestHTMLLineBreaks(t *testing.T) {
	r := NewHTMLRenderer()
	assert.Equal(t, "<p>a<br/>b</p>\n", fragment(t, r, doc(para(txt("a\nb")))))

	pre := n(doctree.NodeParagraph, doctree.Attrs{"rawHTML": "p", "preserveWhitespace": true}, txt("a\nb"))
	assert.Equal(t, "<p>a\nb</p>\n", fragment(t, r, doc(pre)))
}

func TestHTMLRawBlocksAndComments(t *testing.T) {
	d := doc(
		n(doctree.NodeHTMLBlock, doctree.Attrs{"html": `<iframe src="x"></iframe>`}),
		n(doctree.NodeHTMLComment, nil, txt("<!-- hi -->")),
	)
	assert.Equal(t, "<iframe src=\"x\"></iframe>\n<!-- hi -->\n", fragment(t, NewHTMLRenderer(), d))
}

func TestHTMLEscapesText(t *testing.T) {
	assert.Equal(t, "<p>a &lt; b</p>\n", fragment(t, NewHTMLRenderer(), doc(para(txt("a < b")))))
}

func TestHTMLHighlight(t *testing.T) {
	out := fragment(t, NewHTMLRenderer(WithHighlight("github")), sampleDoc())
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "style=")
	assert.NotContains(t, out, `class="language-go"`)
}

func TestHTMLRenderPage(t *testing.T) {
	meta := sampleMeta()
	meta.Title = "A & B"
	out, err := NewHTMLRenderer().Render(sampleDoc(), meta)
	require.NoError(t, err)
	page := string(out)
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>A &amp; B</title>")
	assert.Contains(t, page, "<h1>Intro</h1>")
	assert.Equal(t, ".html", NewHTMLRenderer().Extension())
}

func TestHTMLFromMarkdown(t *testing.T) {
	root, err := mdast.NewParser().Parse([]byte("Some <span class=\"hl\">marked</span> text\n"))
	require.NoError(t, err)
	d, err := convert.New().Convert(root)
	require.NoError(t, err)
	assert.Equal(t, "<p>Some <span class=\"hl\">marked</span> text</p>\n", fragment(t, NewHTMLRenderer(), d))
}
