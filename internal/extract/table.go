package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Gizmito78/todobiwenger/internal/browser"
	"github.com/Gizmito78/todobiwenger/internal/model"
)

// TableStrategy reads the market listing from row-like table markup. It
// assumes the page's historical column order: player, destination, origin,
// status, date. Excess cells are discarded. Header rows carry no <td>
// cells and are skipped.
type TableStrategy struct{}

func (s *TableStrategy) Name() string { return "table" }

// Extract walks every table row, assigning cell text positionally and
// taking the first outbound link in the row as the record URL.
func (s *TableStrategy) Extract(page *browser.Page) ([]model.RawTransfer, error) {
	var raws []model.RawTransfer
	page.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		var values []string
		cells.Each(func(_ int, cell *goquery.Selection) {
			values = append(values, cleanText(cell.Text()))
		})

		var raw model.RawTransfer
		slots := []*string{&raw.Player, &raw.To, &raw.From, &raw.Status, &raw.Date}
		for i, v := range values {
			if i >= len(slots) {
				break
			}
			*slots[i] = v
		}

		if href, ok := row.Find("a[href]").First().Attr("href"); ok {
			raw.URL = href
		}

		raws = append(raws, raw)
	})
	return raws, nil
}

// cleanText collapses runs of whitespace to single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
