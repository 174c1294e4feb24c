package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Gizmito78/todobiwenger/internal/browser"
	"github.com/Gizmito78/todobiwenger/internal/model"
)

// arrow is the directional glyph the page uses between origin and
// destination.
const arrow = "→"

// keywords are the Spanish market labels that mark a container as relevant.
var keywords = []string{"jugador", "destino", "origen", "tipo"}

// rowPattern captures player, destination, origin and type from a single
// line, with the groups separated by the market labels or the arrow glyph.
var rowPattern = regexp.MustCompile(
	`(?i)^(?:jugador:?\s*)?(.+?)\s*(?:→|destino:?)\s*(.+?)\s*(?:→|origen:?)\s*(.+?)\s*(?:→|tipo:?)\s*(.+)$`,
)

// TextStrategy scans loosely structured text blocks for transfer lines.
// Containers without any market keyword are ignored entirely; within a
// relevant container, rows are sub-elements whose text carries the arrow
// glyph or a keyword. Rows matching neither parse form are dropped.
type TextStrategy struct{}

func (s *TextStrategy) Name() string { return "text" }

func (s *TextStrategy) Extract(page *browser.Page) ([]model.RawTransfer, error) {
	var raws []model.RawTransfer
	seen := make(map[string]bool)

	page.Find("div, section, article").Each(func(_ int, container *goquery.Selection) {
		if !containsKeyword(container.Text()) {
			return
		}
		container.Find("p, li, span, tr").Each(func(_ int, el *goquery.Selection) {
			line := cleanText(el.Text())
			if line == "" || seen[line] {
				return
			}
			if !strings.Contains(line, arrow) && !containsKeyword(line) {
				return
			}
			seen[line] = true
			if raw, ok := parseRow(line); ok {
				raws = append(raws, raw)
			}
		})
	})

	return raws, nil
}

// parseRow tries the full four-group pattern first, then degrades to a
// plain arrow split yielding player and destination only.
func parseRow(line string) (model.RawTransfer, bool) {
	if m := rowPattern.FindStringSubmatch(line); m != nil {
		return model.RawTransfer{
			Player:      strings.TrimSpace(m[1]),
			Destination: strings.TrimSpace(m[2]),
			Origin:      strings.TrimSpace(m[3]),
			Type:        strings.TrimSpace(m[4]),
		}, true
	}

	if strings.Contains(line, arrow) {
		parts := strings.SplitN(line, arrow, 2)
		player := strings.TrimSpace(parts[0])
		to := strings.TrimSpace(parts[1])
		if player == "" && to == "" {
			return model.RawTransfer{}, false
		}
		return model.RawTransfer{Player: player, Destination: to}, true
	}

	return model.RawTransfer{}, false
}

func containsKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
