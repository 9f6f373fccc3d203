package validation

import (
	"encoding/json"
	"math"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-accordion/pkg/interfaces"
)

const nonNegativeInteger = "non-negative integer"

// ValidateID ensures id is a well-formed item identifier.
func ValidateID(id int) error {
	if err := validation.Validate(id, validation.Min(0)); err != nil {
		return WrongType("id", nonNegativeInteger)
	}
	return nil
}

// ValidateEntry checks a typed entry: the id must be non-negative and header and
// content must not be blank.
func ValidateEntry(entry interfaces.Entry) error {
	if err := ValidateID(entry.ID); err != nil {
		return err
	}
	if err := validation.Validate(entry.Header, validation.Required); err != nil {
		return Empty("header")
	}
	if err := validation.Validate(entry.Content, validation.Required); err != nil {
		return Empty("content")
	}
	return nil
}

// DecodeEntry converts an untyped record (decoded JSON or YAML) into an Entry.
// Missing fields are reported before wrong types, and wrong types before blanks.
func DecodeEntry(raw map[string]any) (interfaces.Entry, error) {
	if raw == nil {
		return interfaces.Entry{}, MissingArgument("entry")
	}
	for _, field := range []string{"id", "header", "content"} {
		if value, ok := raw[field]; !ok || value == nil {
			return interfaces.Entry{}, MissingArgument(field)
		}
	}

	id, ok := AsInteger(raw["id"])
	if !ok {
		return interfaces.Entry{}, WrongType("id", "integer")
	}
	header, ok := raw["header"].(string)
	if !ok {
		return interfaces.Entry{}, WrongType("header", "string")
	}
	content, ok := raw["content"].(string)
	if !ok {
		return interfaces.Entry{}, WrongType("content", "string")
	}

	entry := interfaces.Entry{ID: id, Header: header, Content: content}
	if err := ValidateEntry(entry); err != nil {
		return interfaces.Entry{}, err
	}
	return entry, nil
}

// DecodeEntries converts an untyped list into entries and validates the batch.
func DecodeEntries(raw any) ([]interfaces.Entry, error) {
	if raw == nil {
		return nil, MissingArgument("entries")
	}

	var records []any
	switch typed := raw.(type) {
	case []any:
		records = typed
	case []map[string]any:
		records = make([]any, 0, len(typed))
		for _, record := range typed {
			records = append(records, record)
		}
	default:
		return nil, WrongType("entries", "array")
	}

	out := make([]interfaces.Entry, 0, len(records))
	for _, record := range records {
		fields, ok := record.(map[string]any)
		if !ok {
			return nil, WrongType("entry", "object")
		}
		entry, err := DecodeEntry(fields)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}

	if err := ValidateEntries(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateEntries validates each entry and then rejects ids repeated within the
// list. Every repeated id is reported once, sorted ascending.
func ValidateEntries(entries []interfaces.Entry) error {
	for _, entry := range entries {
		if err := ValidateEntry(entry); err != nil {
			return err
		}
	}

	counts := make(map[int]int, len(entries))
	for _, entry := range entries {
		counts[entry.ID]++
	}

	var repeated []int
	for id, count := range counts {
		if count > 1 {
			repeated = append(repeated, id)
		}
	}
	if len(repeated) == 0 {
		return nil
	}
	slices.Sort(repeated)
	return DuplicateID(repeated...)
}

// ValidateIDAgainstRegistry rejects an id already present in items.
func ValidateIDAgainstRegistry(id int, items []*interfaces.Item) error {
	if registered(id, items) {
		return DuplicateID(id)
	}
	return nil
}

// ValidateEntriesAgainstRegistry reports every entry id that collides with the
// registry, in list order and without repeats.
func ValidateEntriesAgainstRegistry(entries []interfaces.Entry, items []*interfaces.Item) error {
	var collisions []int
	for _, entry := range entries {
		if !registered(entry.ID, items) || slices.Contains(collisions, entry.ID) {
			continue
		}
		collisions = append(collisions, entry.ID)
	}
	if len(collisions) == 0 {
		return nil
	}
	return DuplicateID(collisions...)
}

func registered(id int, items []*interfaces.Item) bool {
	for _, item := range items {
		if item != nil && item.ID == id {
			return true
		}
	}
	return false
}

// AsInteger converts decoded numeric values into an int. Floats are accepted only
// when they carry no fractional part.
func AsInteger(value any) (int, bool) {
	switch typed := value.(type) {
	case int:
		return typed, true
	case int8:
		return int(typed), true
	case int16:
		return int(typed), true
	case int32:
		return int(typed), true
	case int64:
		return int(typed), true
	case uint:
		return int(typed), true
	case uint8:
		return int(typed), true
	case uint16:
		return int(typed), true
	case uint32:
		return int(typed), true
	case uint64:
		return int(typed), true
	case float32:
		return floatToInt(float64(typed))
	case float64:
		return floatToInt(typed)
	case json.Number:
		if parsed, err := typed.Int64(); err == nil {
			return int(parsed), true
		}
		parsed, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(parsed)
	default:
		return 0, false
	}
}

func floatToInt(value float64) (int, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, false
	}
	return int(value), true
}

// ValidateOpenAt accepts any id or -1, which disables the initial open.
func ValidateOpenAt(openAt int) error {
	if err := validation.Validate(openAt, validation.Min(-1)); err != nil {
		return WrongType("openAt", "integer >= -1")
	}
	return nil
}
