package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage_Find(t *testing.T) {
	page, err := NewPage("https://example.com", `<html><body><table><tr><td>Kubo</td></tr></table></body></html>`)
	require.NoError(t, err)

	rows := page.Find("table tr")
	assert.Equal(t, 1, rows.Length())
	assert.Equal(t, "Kubo", rows.First().Find("td").Text())
}

func TestPage_EmbeddedBlocks_DocumentOrder(t *testing.T) {
	html := `<html><head>
		<script>first</script>
		<script type="application/json">   </script>
		<script type="application/ld+json">second</script>
	</head><body><script>third</script></body></html>`

	page, err := NewPage("https://example.com", html)
	require.NoError(t, err)

	blocks := page.EmbeddedBlocks()
	assert.Equal(t, []string{"first", "second", "third"}, blocks)
}

func TestPage_EmbeddedBlocks_NoScripts(t *testing.T) {
	page, err := NewPage("https://example.com", `<html><body><p>hola</p></body></html>`)
	require.NoError(t, err)

	assert.Empty(t, page.EmbeddedBlocks())
}

func TestPage_Text(t *testing.T) {
	page, err := NewPage("https://example.com", `<html><body><p>Mercado de fichajes</p></body></html>`)
	require.NoError(t, err)

	assert.Contains(t, page.Text(), "Mercado de fichajes")
}
