package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gizmito78/todobiwenger/internal/browser"
)

func mustPage(t *testing.T, html string) *browser.Page {
	t.Helper()
	page, err := browser.NewPage("https://example.com/mercado", html)
	require.NoError(t, err)
	return page
}

func TestTableStrategy_PositionalColumns(t *testing.T) {
	page := mustPage(t, `<html><body><table>
		<thead><tr><th>Jugador</th><th>Destino</th><th>Origen</th><th>Tipo</th><th>Fecha</th></tr></thead>
		<tbody>
			<tr>
				<td><a href="https://example.com/jugador/1">Bellingham</a></td>
				<td>Real Madrid</td><td>Dortmund</td><td>Traspaso</td><td>2026-08-01</td>
				<td>celda sobrante</td>
			</tr>
			<tr><td>Kubo</td><td>Real Sociedad</td><td>Mallorca</td><td>Cesión</td><td>2026-07-15</td></tr>
		</tbody>
	</table></body></html>`)

	raws, err := (&TableStrategy{}).Extract(page)

	require.NoError(t, err)
	require.Len(t, raws, 2)

	assert.Equal(t, "Bellingham", raws[0].Player)
	assert.Equal(t, "Real Madrid", raws[0].To)
	assert.Equal(t, "Dortmund", raws[0].From)
	assert.Equal(t, "Traspaso", raws[0].Status)
	assert.Equal(t, "2026-08-01", raws[0].Date)
	assert.Equal(t, "https://example.com/jugador/1", raws[0].URL)

	assert.Equal(t, "Kubo", raws[1].Player)
	assert.Empty(t, raws[1].URL)
}

func TestTableStrategy_ShortRows(t *testing.T) {
	page := mustPage(t, `<html><body><table><tr><td>Isi</td><td>Rayo</td></tr></table></body></html>`)

	raws, err := (&TableStrategy{}).Extract(page)

	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "Isi", raws[0].Player)
	assert.Equal(t, "Rayo", raws[0].To)
	assert.Empty(t, raws[0].From)
	assert.Empty(t, raws[0].Date)
}

func TestTableStrategy_NoTable(t *testing.T) {
	page := mustPage(t, `<html><body><p>sin tabla</p></body></html>`)

	raws, err := (&TableStrategy{}).Extract(page)

	require.NoError(t, err)
	assert.Empty(t, raws)
}

func TestTableStrategy_CollapsesWhitespace(t *testing.T) {
	page := mustPage(t, `<html><body><table><tr><td>
		Vini		Jr.
	</td><td>Real Madrid</td></tr></table></body></html>`)

	raws, err := (&TableStrategy{}).Extract(page)

	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "Vini Jr.", raws[0].Player)
}
