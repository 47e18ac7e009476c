package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

var scanLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	timestampLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05-07:00",
	"02/01/2006",
}

// NullTime scans DATE and TIMESTAMP columns from both the postgres and the
// sqlite driver, which hand them over as time.Time, string or []byte.
type NullTime struct {
	Time  time.Time
	Valid bool
}

func NewNullTime(t time.Time) NullTime {
	return NullTime{Time: t, Valid: !t.IsZero()}
}

func (n *NullTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*n = NullTime{}
		return nil
	case time.Time:
		*n = NullTime{Time: v, Valid: true}
		return nil
	case []byte:
		return n.parse(string(v))
	case string:
		return n.parse(v)
	}
	return fmt.Errorf("cannot scan %T into NullTime", value)
}

func (n *NullTime) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*n = NullTime{}
		return nil
	}
	for _, layout := range scanLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*n = NullTime{Time: t, Valid: true}
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as a date", s)
}

func (n NullTime) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Time.UTC().Format(timestampLayout), nil
}

func (n NullTime) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Time.UTC().Format(time.RFC3339))
}

func (n *NullTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return n.parse(s)
}
