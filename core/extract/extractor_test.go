package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
<head><title>  Getting
  Started </title><script>var x = 1;</script></head>
<body>
<nav><a href="/">Home</a></nav>
<main>
<h1>Intro</h1>
<p>Hello <img src="a.png" alt="A"></p>
<div class="sidebar">links</div>
<form><input name="q"></form>
</main>
<footer>(c)</footer>
</body>
</html>`

func TestExtractPrefersMain(t *testing.T) {
	out, err := New().Extract(page)
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Intro</h1>")
	assert.Contains(t, out, `<img src="a.png" alt="A"/>`)
	assert.NotContains(t, out, "<main>")
	assert.NotContains(t, out, "sidebar")
	assert.NotContains(t, out, "<form>")
	assert.NotContains(t, out, "Home")
	assert.NotContains(t, out, "(c)")
}

func TestExtractFallsBackToBody(t *testing.T) {
	out, err := New().Extract(`<html><body><header>top</header><p>text</p><script>x()</script></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "<p>text</p>", out)
}

func TestExtractArticle(t *testing.T) {
	out, err := New().Extract(`<body><p>outside</p><article><p>inside</p></article></body>`)
	require.NoError(t, err)
	assert.Equal(t, "<p>inside</p>", out)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Getting Started", Title(page))
	assert.Equal(t, "", Title("<p>no title</p>"))
}
