package cards

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CatalogEntry is one row of a deck list.
type CatalogEntry struct {
	Name   string
	Value  int
	Suit   string
	Count  int
	FaceUp bool
}

const catalogColumns = 5

// LoadCatalog reads a CSV deck list with the header
// name,value,suit,count,facing. Count defaults to 1 and facing accepts
// "up"/"down" (default down).
func LoadCatalog(r io.Reader) ([]CatalogEntry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("catalog is empty or has no data rows")
	}

	entries := make([]CatalogEntry, 0, len(records)-1)
	for i, record := range records[1:] { // Skip header
		row := i + 2
		if len(record) < 3 {
			return nil, fmt.Errorf("catalog row %d: expected at least 3 columns, got %d", row, len(record))
		}
		for len(record) < catalogColumns {
			record = append(record, "")
		}

		entry := CatalogEntry{
			Name:  strings.TrimSpace(record[0]),
			Suit:  strings.TrimSpace(record[2]),
			Count: 1,
		}
		if entry.Name == "" {
			return nil, fmt.Errorf("catalog row %d: missing name", row)
		}
		if entry.Value, err = strconv.Atoi(strings.TrimSpace(record[1])); err != nil {
			return nil, fmt.Errorf("catalog row %d: invalid value %q: %w", row, record[1], err)
		}
		if raw := strings.TrimSpace(record[3]); raw != "" {
			count, err := strconv.Atoi(raw)
			if err != nil || count < 0 {
				return nil, fmt.Errorf("catalog row %d: invalid count %q", row, raw)
			}
			entry.Count = count
		}
		entry.FaceUp = strings.EqualFold(strings.TrimSpace(record[4]), "up")

		entries = append(entries, entry)
	}
	return entries, nil
}

// BuildDeck expands catalog entries into a deck, in catalog order.
func BuildDeck(name string, entries []CatalogEntry) *Deck {
	deck := NewDeck(name)
	for _, entry := range entries {
		for n := 0; n < entry.Count; n++ {
			card := NewCard(entry.Name, entry.Value, entry.Suit)
			if entry.FaceUp {
				card.SetFacing(FaceUp)
			}
			deck.Insert(card, Bottom)
		}
	}
	return deck
}
