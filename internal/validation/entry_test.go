package validation

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-accordion/pkg/interfaces"
)

func TestValidateEntry(t *testing.T) {
	cases := []struct {
		name  string
		entry interfaces.Entry
		kind  Kind
		field string
	}{
		{name: "valid", entry: interfaces.Entry{ID: 0, Header: "Header", Content: "Content"}},
		{name: "negative id", entry: interfaces.Entry{ID: -1, Header: "Header", Content: "Content"}, kind: KindWrongType, field: "id"},
		{name: "empty header", entry: interfaces.Entry{ID: 1, Content: "Content"}, kind: KindEmpty, field: "header"},
		{name: "empty content", entry: interfaces.Entry{ID: 1, Header: "Header"}, kind: KindEmpty, field: "content"},
		{name: "id checked first", entry: interfaces.Entry{ID: -3}, kind: KindWrongType, field: "id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateEntry(tc.entry)
			if tc.kind == "" {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !Is(err, tc.kind) {
				t.Fatalf("expected %s, got %v", tc.kind, err)
			}
			if got := Field(err); got != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, got)
			}
		})
	}
}

func TestDecodeEntryFieldOrder(t *testing.T) {
	cases := []struct {
		name    string
		raw     map[string]any
		kind    Kind
		message string
	}{
		{name: "missing id", raw: map[string]any{"header": 1}, kind: KindMissingArgument, message: "id is required"},
		{name: "missing header before type checks", raw: map[string]any{"id": "x", "content": "c"}, kind: KindMissingArgument, message: "header is required"},
		{name: "nil content", raw: map[string]any{"id": 1, "header": "h", "content": nil}, kind: KindMissingArgument, message: "content is required"},
		{name: "string id", raw: map[string]any{"id": "1", "header": "h", "content": "c"}, kind: KindWrongType, message: "id must be a integer"},
		{name: "fractional id", raw: map[string]any{"id": 1.5, "header": "h", "content": "c"}, kind: KindWrongType, message: "id must be a integer"},
		{name: "numeric header", raw: map[string]any{"id": 1, "header": 2, "content": "c"}, kind: KindWrongType, message: "header must be a string"},
		{name: "bool content", raw: map[string]any{"id": 1, "header": "h", "content": true}, kind: KindWrongType, message: "content must be a string"},
		{name: "empty header", raw: map[string]any{"id": 1, "header": "", "content": "c"}, kind: KindEmpty, message: "header can not be empty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeEntry(tc.raw)
			if !Is(err, tc.kind) {
				t.Fatalf("expected %s, got %v", tc.kind, err)
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Fatalf("expected message %q in %q", tc.message, err.Error())
			}
		})
	}
}

func TestDecodeEntryAcceptsJSONNumbers(t *testing.T) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(`{"id": 4, "header": "Four", "content": "<p>four</p>"}`), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	entry, err := DecodeEntry(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry.ID != 4 || entry.Header != "Four" || entry.Content != "<p>four</p>" {
		t.Fatalf("unexpected entry %+v", entry)
	}

	if _, ok := AsInteger(json.Number("12")); !ok {
		t.Fatal("expected json.Number to convert")
	}
}

func TestAsIntegerTreatsNumbersAlike(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  int
		ok    bool
	}{
		{"float", float64(1.0), 1, true},
		{"number with zero fraction", json.Number("1.0"), 1, true},
		{"number with exponent", json.Number("2e1"), 20, true},
		{"fractional float", 1.5, 0, false},
		{"fractional number", json.Number("1.5"), 0, false},
		{"malformed number", json.Number("one"), 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AsInteger(tc.value)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("expected (%d, %t), got (%d, %t)", tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestDecodeEntriesRejectsNonArray(t *testing.T) {
	_, err := DecodeEntries(map[string]any{"id": 0})
	if !Is(err, KindWrongType) || !strings.Contains(err.Error(), "entries must be a array") {
		t.Fatalf("expected entries wrong type, got %v", err)
	}
}

func TestValidateEntriesReportsAllDuplicatesSorted(t *testing.T) {
	entries := []interfaces.Entry{
		{ID: 7, Header: "a", Content: "a"},
		{ID: 3, Header: "b", Content: "b"},
		{ID: 7, Header: "c", Content: "c"},
		{ID: 3, Header: "d", Content: "d"},
		{ID: 3, Header: "e", Content: "e"},
		{ID: 1, Header: "f", Content: "f"},
	}

	err := ValidateEntries(entries)
	if !Is(err, KindDuplicateID) {
		t.Fatalf("expected duplicate id failure, got %v", err)
	}
	if got := DuplicateIDs(err); !slices.Equal(got, []int{3, 7}) {
		t.Fatalf("expected [3 7], got %v", got)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryConflict) {
		t.Fatalf("expected conflict category, got %v", err)
	}
	if !strings.Contains(err.Error(), "duplicate ids: 3, 7") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidateEntriesShapeBeforeDuplicates(t *testing.T) {
	entries := []interfaces.Entry{
		{ID: 1, Header: "a", Content: "a"},
		{ID: 1, Header: "", Content: "b"},
	}
	if err := ValidateEntries(entries); !Is(err, KindEmpty) {
		t.Fatalf("expected empty failure first, got %v", err)
	}
}

func TestValidateAgainstRegistry(t *testing.T) {
	registry := []*interfaces.Item{{ID: 0}, {ID: 1}, {ID: 2}}

	if err := ValidateIDAgainstRegistry(5, registry); err != nil {
		t.Fatalf("expected no collision, got %v", err)
	}
	if err := ValidateIDAgainstRegistry(1, registry); !Is(err, KindDuplicateID) {
		t.Fatalf("expected duplicate id, got %v", err)
	}

	entries := []interfaces.Entry{
		{ID: 2, Header: "a", Content: "a"},
		{ID: 9, Header: "b", Content: "b"},
		{ID: 0, Header: "c", Content: "c"},
		{ID: 2, Header: "d", Content: "d"},
	}
	err := ValidateEntriesAgainstRegistry(entries, registry)
	if got := DuplicateIDs(err); !slices.Equal(got, []int{2, 0}) {
		t.Fatalf("expected collisions in list order [2 0], got %v (%v)", got, err)
	}
}

func TestValidateRootContainer(t *testing.T) {
	if err := ValidateRootContainer(nil); !Is(err, KindMissingArgument) {
		t.Fatalf("expected missing argument, got %v", err)
	}
	div := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	if err := ValidateRootContainer(div); !Is(err, KindWrongType) {
		t.Fatalf("expected wrong type, got %v", err)
	}
	dl := &html.Node{Type: html.ElementNode, Data: "dl", DataAtom: atom.Dl}
	if err := ValidateRootContainer(dl); err != nil {
		t.Fatalf("expected dl to pass, got %v", err)
	}
}

func TestValidateItemNodes(t *testing.T) {
	dt := &html.Node{Type: html.ElementNode, Data: "dt", DataAtom: atom.Dt}
	dd := &html.Node{Type: html.ElementNode, Data: "dd", DataAtom: atom.Dd}
	p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}

	if err := ValidateItemNodes(dt, dd); err != nil {
		t.Fatalf("expected pair to pass, got %v", err)
	}
	if err := ValidateItemNodes(dt, p); !Is(err, KindTagMismatch) {
		t.Fatalf("expected tag mismatch, got %v", err)
	}
	if err := ValidateItemNodes(dt, nil); !Is(err, KindMissingArgument) {
		t.Fatalf("expected missing content, got %v", err)
	}
}

func TestNotFoundCategory(t *testing.T) {
	err := NotFound("item", 7)
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
	if !strings.Contains(err.Error(), "No item found with id 7") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected kind %s, got %s", KindNotFound, KindOf(err))
	}
}
