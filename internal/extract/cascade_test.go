package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gizmito78/todobiwenger/internal/browser"
	"github.com/Gizmito78/todobiwenger/internal/model"
)

// stubStrategy implements Strategy with an invocation counter.
type stubStrategy struct {
	name      string
	raws      []model.RawTransfer
	err       error
	panicking bool
	calls     int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Extract(_ *browser.Page) ([]model.RawTransfer, error) {
	s.calls++
	if s.panicking {
		panic("selector blew up")
	}
	return s.raws, s.err
}

func emptyPage(t *testing.T) *browser.Page {
	t.Helper()
	page, err := browser.NewPage("https://example.com", "<html><body></body></html>")
	require.NoError(t, err)
	return page
}

func TestCascade_ShortCircuitsOnFirstSuccess(t *testing.T) {
	first := &stubStrategy{name: "table", raws: []model.RawTransfer{{Player: "Kubo"}}}
	second := &stubStrategy{name: "text"}
	third := &stubStrategy{name: "embedded"}

	records, outcomes := NewCascadeWith(first, second, third).Run(emptyPage(t))

	require.Len(t, records, 1)
	assert.Equal(t, "Kubo", records[0].Player)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
	assert.Equal(t, 0, third.calls)

	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusOK, outcomes[0].Status)
	assert.Equal(t, 1, outcomes[0].Records)
}

func TestCascade_FallsThroughEmptyAndFailed(t *testing.T) {
	first := &stubStrategy{name: "table"}
	second := &stubStrategy{name: "text", err: errors.New("malformed markup")}
	third := &stubStrategy{name: "embedded", raws: []model.RawTransfer{{Name: "Joselu", Destination: "Real Madrid"}}}

	records, outcomes := NewCascadeWith(first, second, third).Run(emptyPage(t))

	require.Len(t, records, 1)
	assert.Equal(t, "Joselu", records[0].Player)
	assert.Equal(t, "Real Madrid", records[0].To)

	require.Len(t, outcomes, 3)
	assert.Equal(t, StatusEmpty, outcomes[0].Status)
	assert.Equal(t, StatusFailed, outcomes[1].Status)
	assert.Error(t, outcomes[1].Err)
	assert.Equal(t, StatusOK, outcomes[2].Status)
}

func TestCascade_PanicAbsorbedAtStrategyBoundary(t *testing.T) {
	first := &stubStrategy{name: "table", panicking: true}
	second := &stubStrategy{name: "text", raws: []model.RawTransfer{{Player: "Isi"}}}

	records, outcomes := NewCascadeWith(first, second).Run(emptyPage(t))

	require.Len(t, records, 1)
	assert.Equal(t, "Isi", records[0].Player)
	assert.Equal(t, StatusFailed, outcomes[0].Status)
	assert.Contains(t, outcomes[0].Err.Error(), "panicked")
}

func TestCascade_UnusableRecordsFilteredBeforeAcceptance(t *testing.T) {
	// A strategy that only yields identity-free records counts as empty,
	// so the cascade moves on.
	first := &stubStrategy{name: "table", raws: []model.RawTransfer{{Status: "Traspaso", Fee: "10M"}}}
	second := &stubStrategy{name: "text", raws: []model.RawTransfer{{Player: "Messi", Destination: "Inter Miami"}}}

	records, _ := NewCascadeWith(first, second).Run(emptyPage(t))

	require.Len(t, records, 1)
	assert.Equal(t, "Messi", records[0].Player)
	assert.Equal(t, 1, second.calls)
}

func TestCascade_AllEmptyYieldsSentinel(t *testing.T) {
	first := &stubStrategy{name: "table"}
	second := &stubStrategy{name: "text"}
	third := &stubStrategy{name: "embedded"}

	records, outcomes := NewCascadeWith(first, second, third).Run(emptyPage(t))

	require.Len(t, records, 1)
	assert.Equal(t, model.SentinelPlayer, records[0].Player)
	assert.True(t, records[0].Fallback)
	assert.Equal(t, model.Source, records[0].Source)
	assert.Len(t, outcomes, 3)
}

func TestCascade_DefaultOrder(t *testing.T) {
	// End-to-end over real strategies: a page with both a table and an
	// embedded block resolves through the table first.
	page := mustPage(t, `<html><body>
		<table><tr><td>Bellingham</td><td>Real Madrid</td></tr></table>
		<script type="application/json">[{"player":"ignored","to":"ignored"}]</script>
	</body></html>`)

	records, outcomes := NewCascade().Run(page)

	require.Len(t, records, 1)
	assert.Equal(t, "Bellingham", records[0].Player)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "table", outcomes[0].Strategy)
}
