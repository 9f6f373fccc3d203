package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/goliatone/go-accordion/internal/util"
	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// ShaperFunc adapts a function into an interfaces.EntryShaper.
type ShaperFunc func(raw []byte) ([]interfaces.Entry, error)

func (f ShaperFunc) Shape(raw []byte) ([]interfaces.Entry, error) {
	return f(raw)
}

// JSONShaper decodes a top-level array of {id, header, content} objects. When
// Schema is set the payload is checked against it first.
type JSONShaper struct {
	Schema *validation.Schema
}

var _ interfaces.EntryShaper = JSONShaper{}

// NewSchemaShaper returns a JSONShaper enforcing the stock entries schema.
func NewSchemaShaper() (JSONShaper, error) {
	schema, err := validation.CompileSchema(validation.EntriesSchema)
	if err != nil {
		return JSONShaper{}, err
	}
	return JSONShaper{Schema: schema}, nil
}

func (s JSONShaper) Shape(raw []byte) ([]interfaces.Entry, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, validation.TransportFailure(err, "payload is not valid JSON")
	}
	if s.Schema != nil {
		if err := s.Schema.Validate(payload); err != nil {
			return nil, schemaFailure(err)
		}
	}
	return validation.DecodeEntries(payload)
}

func schemaFailure(err error) error {
	issues := validation.Issues(err)
	if len(issues) == 0 {
		return validation.TransportFailure(err, "payload failed schema validation")
	}
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Location, issue.Message))
	}
	failure := validation.TransportFailure(err, "payload failed schema validation")
	return failure.WithMetadata(map[string]any{"issues": strings.Join(parts, "; ")})
}

// PathShaper extracts entries with gjson paths. Items selects the array (empty
// means the document root); ID, Header and Content are evaluated per element and
// default to the field names.
type PathShaper struct {
	Items   string
	ID      string
	Header  string
	Content string
}

var _ interfaces.EntryShaper = PathShaper{}

func (s PathShaper) Shape(raw []byte) ([]interfaces.Entry, error) {
	if !gjson.ValidBytes(raw) {
		return nil, validation.TransportFailure(errors.New("invalid json"), "payload is not valid JSON")
	}

	list := gjson.ParseBytes(raw)
	if path := strings.TrimSpace(s.Items); path != "" {
		list = list.Get(path)
	}
	if !list.IsArray() {
		return nil, validation.WrongType("entries", "array")
	}

	fields := map[string]string{
		"id":      util.FirstNonBlank(s.ID, "id"),
		"header":  util.FirstNonBlank(s.Header, "header"),
		"content": util.FirstNonBlank(s.Content, "content"),
	}

	var (
		out    []interfaces.Entry
		failed error
	)
	list.ForEach(func(_, element gjson.Result) bool {
		if !element.IsObject() {
			failed = validation.WrongType("entry", "object")
			return false
		}
		record := make(map[string]any, len(fields))
		for name, path := range fields {
			value := element.Get(path)
			if !value.Exists() || value.Type == gjson.Null {
				continue
			}
			record[name] = value.Value()
		}
		entry, err := validation.DecodeEntry(record)
		if err != nil {
			failed = err
			return false
		}
		out = append(out, entry)
		return true
	})
	if failed != nil {
		return nil, failed
	}
	if err := validation.ValidateEntries(out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []interfaces.Entry{}
	}
	return out, nil
}
