// Package model defines the transfer records exchanged between the
// extraction strategies, the cache, and the HTTP layer.
package model

// Source identifies the page every record is scraped from. It is stamped on
// all normalized records, including the sentinel.
const Source = "futbolfantasy"

// SentinelPlayer is the placeholder player value used when no strategy
// produced usable data.
const SentinelPlayer = "—"

// Transfer is the canonical record returned to callers. Every string field
// defaults to empty; Source is always populated.
type Transfer struct {
	Player   string `json:"player"`
	From     string `json:"from"`
	To       string `json:"to"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Position string `json:"position"`
	Fee      string `json:"fee"`
	Contract string `json:"contract"`
	URL      string `json:"url"`
	Source   string `json:"source"`
	Fallback bool   `json:"fallback,omitempty"`
}

// RawTransfer is a loosely-typed candidate produced by a strategy. Each
// canonical field has an ordered set of alternate slots; no slot is
// guaranteed to be filled.
type RawTransfer struct {
	Player string
	Name   string

	To          string
	Destination string

	From   string
	Origin string

	Status string
	Type   string

	Fee    string
	Amount string

	Date      string
	UpdatedAt string
	CreatedAt string

	Position string
	Contract string
	URL      string
}

// Normalize resolves a candidate's alternate field names onto the canonical
// schema, taking the first non-empty value per field. Normalizing the raw
// form of an already-canonical record yields an identical record.
func Normalize(raw RawTransfer) Transfer {
	return Transfer{
		Player:   firstNonEmpty(raw.Player, raw.Name),
		From:     firstNonEmpty(raw.From, raw.Origin),
		To:       firstNonEmpty(raw.To, raw.Destination),
		Date:     firstNonEmpty(raw.Date, raw.UpdatedAt, raw.CreatedAt),
		Status:   firstNonEmpty(raw.Status, raw.Type),
		Position: raw.Position,
		Fee:      firstNonEmpty(raw.Fee, raw.Amount),
		Contract: raw.Contract,
		URL:      raw.URL,
		Source:   Source,
	}
}

// AsRaw converts a canonical record back into candidate form, filling the
// primary slot of each field.
func (t Transfer) AsRaw() RawTransfer {
	return RawTransfer{
		Player:   t.Player,
		From:     t.From,
		To:       t.To,
		Date:     t.Date,
		Status:   t.Status,
		Position: t.Position,
		Fee:      t.Fee,
		Contract: t.Contract,
		URL:      t.URL,
	}
}

// Usable reports whether the record carries enough identity to be worth
// returning: at least one of player, destination, or origin is set.
func (t Transfer) Usable() bool {
	return t.Player != "" || t.To != "" || t.From != ""
}

// Sentinel returns the placeholder record used when every strategy came up
// empty. It is cached like any real payload and distinguishable via
// Fallback.
func Sentinel() Transfer {
	return Transfer{
		Player:   SentinelPlayer,
		Source:   Source,
		Fallback: true,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
