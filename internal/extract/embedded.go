package extract

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Gizmito78/todobiwenger/internal/browser"
	"github.com/Gizmito78/todobiwenger/internal/model"
)

// listKeys are the conventional wrapper fields an embedded payload may hide
// its record list under.
var listKeys = []string{"data", "items", "transfers", "fichajes"}

// EmbeddedStrategy decodes machine-readable blocks embedded in the page.
// Blocks are tried in document order; the first that decodes to a
// non-empty record list wins. Decode failures on individual blocks are
// skipped so a later valid block is still used. This is the last resort of
// the cascade because it depends on page-internal conventions that may not
// exist at all.
type EmbeddedStrategy struct{}

func (s *EmbeddedStrategy) Name() string { return "embedded" }

func (s *EmbeddedStrategy) Extract(page *browser.Page) ([]model.RawTransfer, error) {
	for _, block := range page.EmbeddedBlocks() {
		entries, ok := decodeRecordList(block)
		if !ok {
			continue
		}
		raws := make([]model.RawTransfer, 0, len(entries))
		for _, entry := range entries {
			raws = append(raws, mapEntry(entry))
		}
		return raws, nil
	}
	return nil, nil
}

// decodeRecordList accepts either a bare JSON list of objects or a wrapper
// object exposing one of the conventional list-bearing fields.
func decodeRecordList(block string) ([]map[string]any, bool) {
	trimmed := strings.TrimSpace(block)
	if trimmed == "" {
		return nil, false
	}

	var list []map[string]any
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		return list, len(list) > 0
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &wrapper); err != nil {
		return nil, false
	}
	for _, key := range listKeys {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
			return list, true
		}
	}
	return nil, false
}

// mapEntry resolves an entry's fields through the alternate-name chain.
// Destination and origin may be flat strings or nested under a club
// object's name.
func mapEntry(entry map[string]any) model.RawTransfer {
	return model.RawTransfer{
		Player:      stringField(entry, "player", "jugador"),
		Name:        stringField(entry, "name", "nombre"),
		To:          firstOf(stringField(entry, "to"), clubName(entry, "to")),
		Destination: firstOf(stringField(entry, "destination", "destino"), clubName(entry, "club", "destinationClub")),
		From:        firstOf(stringField(entry, "from"), clubName(entry, "from")),
		Origin:      firstOf(stringField(entry, "origin", "origen"), clubName(entry, "originClub")),
		Status:      stringField(entry, "status", "estado"),
		Type:        stringField(entry, "type", "tipo"),
		Fee:         stringField(entry, "fee"),
		Amount:      stringField(entry, "amount", "precio"),
		Date:        stringField(entry, "date", "fecha"),
		UpdatedAt:   stringField(entry, "updatedAt", "updated_at"),
		CreatedAt:   stringField(entry, "createdAt", "created_at"),
		Position:    stringField(entry, "position", "posicion"),
		Contract:    stringField(entry, "contract", "contrato"),
		URL:         stringField(entry, "url", "link"),
	}
}

// stringField returns the first non-empty stringifiable value among the
// given keys.
func stringField(entry map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := stringify(entry[key]); s != "" {
			return s
		}
	}
	return ""
}

// clubName digs a club object's name out from any of the given keys.
func clubName(entry map[string]any, keys ...string) string {
	for _, key := range keys {
		club, ok := entry[key].(map[string]any)
		if !ok {
			continue
		}
		if s := stringify(club["name"]); s != "" {
			return s
		}
		if s := stringify(club["nombre"]); s != "" {
			return s
		}
	}
	return ""
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
