package subscriptions

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Data is the open-ended subscription payload. It round-trips through
// the database as JSON so a single key can be merged in without
// disturbing the others.
type Data map[string]any

func (d Data) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

func (d *Data) Scan(value any) error {
	if value == nil {
		*d = Data{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for subscription data", value)
	}
	if len(raw) == 0 {
		*d = Data{}
		return nil
	}
	return json.Unmarshal(raw, d)
}
