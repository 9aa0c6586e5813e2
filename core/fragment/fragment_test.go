package fragment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		in          string
		tag         string
		raw         string
		closing     bool
		selfClosing bool
	}{
		{in: `<div style="color: red">`, tag: "div", raw: "div"},
		{in: `</div>`, tag: "div", raw: "div", closing: true},
		{in: `<DIV class='a'>`, tag: "div", raw: "DIV"},
		{in: `</Span >`, tag: "span", raw: "Span", closing: true},
		{in: `<img src="a.png" alt=x>`, tag: "img", raw: "img", selfClosing: true},
		{in: `<br/>`, tag: "br", raw: "br", selfClosing: true},
		{in: `<custom-tag data-x />`, tag: "custom-tag", raw: "custom-tag", selfClosing: true},
		{in: "<pre><code>a\n</code></pre>", tag: "pre", raw: "pre"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ev, err := Classify(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.tag, ev.TagName)
			assert.Equal(t, tt.raw, ev.RawName)
			assert.Equal(t, tt.closing, ev.Closing)
			assert.Equal(t, tt.selfClosing, ev.SelfClosing)
			assert.Equal(t, tt.in, ev.Literal)
		})
	}
}

func TestClassifyMalformed(t *testing.T) {
	for _, in := range []string{"not-a-tag", "", "< div>", "<1abc>", "</>"} {
		_, err := Classify(in)
		var malformed *MalformedFragmentError
		require.True(t, errors.As(err, &malformed), in)
		assert.Equal(t, in, malformed.Fragment)
		assert.True(t, errors.Is(err, ErrMalformedFragment))
	}
}

func TestIsSingleTag(t *testing.T) {
	ev, err := Classify("<div class=\"a\">\n")
	require.NoError(t, err)
	assert.True(t, ev.IsSingleTag())

	ev, err = Classify("<div>\ntext\n</div>")
	require.NoError(t, err)
	assert.False(t, ev.IsSingleTag())
}

func TestIsNonTagMarkup(t *testing.T) {
	assert.True(t, IsNonTagMarkup("<!-- note -->"))
	assert.True(t, IsNonTagMarkup("<?php echo 1 ?>"))
	assert.True(t, IsNonTagMarkup("<![CDATA[x]]>"))
	assert.False(t, IsNonTagMarkup("<b>"))
}

type passthrough struct{}

func (passthrough) Sanitize(s string) string { return s }

type stripAll struct{}

func (stripAll) Sanitize(string) string { return "" }

func TestExtractAttributes(t *testing.T) {
	values, err := ExtractAttributes(passthrough{}, `<a href="https://example.com" style="color: red;; color: red" title="t">`, "href", "style", "missing")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com", "color: red;; color: red", ""}, values)

	values, err = ExtractAttributes(stripAll{}, `<a href="https://example.com">`, "href")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, values)
}

func TestElement(t *testing.T) {
	el, err := Parse(`<P Class="lead" ID="x">`)
	require.NoError(t, err)
	assert.True(t, el.Exists())
	assert.Equal(t, "p", el.Name())
	assert.Equal(t, map[string]string{"class": "lead", "id": "x"}, el.Attrs())
	assert.Equal(t, "lead", el.AttrOrNil("class"))
	assert.Nil(t, el.AttrOrNil("style"))

	empty, err := Parse("</div>")
	require.NoError(t, err)
	assert.False(t, empty.Exists())
	assert.Equal(t, "", empty.Name())
	assert.Empty(t, empty.Attrs())
	assert.Equal(t, "", empty.FirstChildText())
}

func TestFirstChildText(t *testing.T) {
	el, err := Parse("<pre><code>a\nb\n</code></pre>")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", el.FirstChildText())

	el, err = Parse("<pre>plain</pre>")
	require.NoError(t, err)
	assert.Equal(t, "plain", el.FirstChildText())
}

func TestCleanStyle(t *testing.T) {
	tests := map[string]string{
		"color: red;; margin: 0;":    "color: red; margin: 0",
		"color: red;color: red":      "color: red",
		"color: red; color: red":     "color: red; color: red",
		"  ;  ;":                     "",
		"a:1;b:2;a:1;c:3":            "a:1;b:2;c:3",
		"font-weight: bold":          "font-weight: bold",
		"color: red; ; margin: 0; ;": "color: red; margin: 0",
	}
	for in, want := range tests {
		got := CleanStyle(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, CleanStyle(got), "idempotent for %q", in)
	}
}

func TestTextAlign(t *testing.T) {
	assert.Equal(t, "center", TextAlign("color: red; text-align: center"))
	assert.Equal(t, "right", TextAlign("Text-Align: left; text-align: right"))
	assert.Equal(t, "", TextAlign("color: red"))
	assert.Equal(t, "", TextAlign(""))
	assert.Equal(t, "justify", TextAlign("text-align: justify"))
	assert.Equal(t, "center", TextAlign("text-align: center;;"))
	assert.Equal(t, "left", TextAlign("text-align: left ; "))
}

func TestIsVoid(t *testing.T) {
	br, err := Classify("<BR>")
	require.NoError(t, err)
	assert.True(t, br.IsVoid())
	assert.True(t, br.SelfClosing)

	span, err := Classify(`<span class="x"/>`)
	require.NoError(t, err)
	assert.False(t, span.IsVoid())
	assert.True(t, span.SelfClosing)
}
