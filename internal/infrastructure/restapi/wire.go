package restapi

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

type batchWire struct {
	ID        int64   `json:"id"`
	Item      int64   `json:"item"`
	ExpiresAt *string `json:"expires_at"`
}

type stockLineWire struct {
	ID          int64       `json:"id"`
	Item        int64       `json:"item"`
	Batch       *int64      `json:"batch"`
	LotInstance int64       `json:"lot_instance"`
	Quantity    rawQuantity `json:"quantity"`
}

// rawQuantity acepta "2.500" o 2.5; se conserva el texto, el derivador lo interpreta.
type rawQuantity string

func (q *rawQuantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*q = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*q = rawQuantity(s)
	default:
		*q = rawQuantity(b)
	}
	return nil
}

func (q rawQuantity) String() string { return string(q) }

// dateLayouts formatos aceptados para expires_at; sin zona se interpreta como UTC.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
}

// parseDate acepta fecha de lote, RFC 3339 o fecha-hora sin zona.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
