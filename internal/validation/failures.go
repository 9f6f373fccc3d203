package validation

import (
	"fmt"
	"strconv"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Kind classifies accordion failures. The value doubles as the go-errors text code.
type Kind string

const (
	KindMissingArgument  Kind = "MISSING_ARGUMENT"
	KindWrongType        Kind = "WRONG_TYPE"
	KindTagMismatch      Kind = "TAG_MISMATCH"
	KindEmpty            Kind = "EMPTY"
	KindDuplicateID      Kind = "DUPLICATE_ID"
	KindNotFound         Kind = "NOT_FOUND"
	KindTransportFailure Kind = "TRANSPORT_FAILURE"
)

const (
	metadataField = "field"
	metadataIDs   = "ids"
	metadataID    = "id"
)

// Category maps the failure kind onto a go-errors category.
func (k Kind) Category() goerrors.Category {
	switch k {
	case KindDuplicateID:
		return goerrors.CategoryConflict
	case KindNotFound:
		return goerrors.CategoryNotFound
	case KindTransportFailure:
		return goerrors.CategoryExternal
	default:
		return goerrors.CategoryValidation
	}
}

func newFailure(kind Kind, message string, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, kind.Category()).WithTextCode(string(kind))
	if len(metadata) > 0 {
		err = err.WithMetadata(metadata)
	}
	return err
}

// MissingArgument reports a required value that was not supplied.
func MissingArgument(name string) *goerrors.Error {
	return newFailure(KindMissingArgument, fmt.Sprintf("%s is required", name), map[string]any{metadataField: name})
}

// WrongType reports a value of the wrong kind.
func WrongType(name, expected string) *goerrors.Error {
	return newFailure(KindWrongType, fmt.Sprintf("%s must be a %s", name, expected), map[string]any{metadataField: name})
}

// TagMismatch reports a markup node carrying an unexpected tag.
func TagMismatch(name, tag string) *goerrors.Error {
	return newFailure(KindTagMismatch, fmt.Sprintf("%s must be a %s element", name, tag), map[string]any{metadataField: name})
}

// Empty reports a blank required string.
func Empty(name string) *goerrors.Error {
	return newFailure(KindEmpty, fmt.Sprintf("%s can not be empty", name), map[string]any{metadataField: name})
}

// DuplicateID reports one or more colliding ids. The ids are reported in the
// order received.
func DuplicateID(ids ...int) *goerrors.Error {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	label := "duplicate id"
	if len(ids) > 1 {
		label = "duplicate ids"
	}
	copied := append([]int(nil), ids...)
	return newFailure(KindDuplicateID, fmt.Sprintf("%s: %s", label, strings.Join(parts, ", ")), map[string]any{metadataIDs: copied})
}

// NotFound reports an id lookup miss.
func NotFound(resource string, id int) *goerrors.Error {
	return newFailure(KindNotFound, fmt.Sprintf("No %s found with id %d", resource, id), map[string]any{metadataID: id})
}

// TransportFailure tags a fetch or shape error. Errors that already carry a
// go-errors category keep it.
func TransportFailure(source error, message string) *goerrors.Error {
	if source == nil {
		return newFailure(KindTransportFailure, message, nil)
	}
	if goerrors.IsWrapped(source) {
		return goerrors.Wrap(source, KindTransportFailure.Category(), message)
	}
	return goerrors.Wrap(source, KindTransportFailure.Category(), message).
		WithTextCode(string(KindTransportFailure))
}

// Is reports whether err carries the given failure kind.
func Is(err error, kind Kind) bool {
	var typed *goerrors.Error
	if !goerrors.As(err, &typed) || typed == nil {
		return false
	}
	return typed.TextCode == string(kind)
}

// KindOf returns the failure kind carried by err, or "" for foreign errors.
func KindOf(err error) Kind {
	var typed *goerrors.Error
	if !goerrors.As(err, &typed) || typed == nil {
		return ""
	}
	return Kind(typed.TextCode)
}

// DuplicateIDs extracts the ids reported by a DuplicateID failure.
func DuplicateIDs(err error) []int {
	var typed *goerrors.Error
	if !goerrors.As(err, &typed) || typed == nil || typed.TextCode != string(KindDuplicateID) {
		return nil
	}
	ids, _ := typed.Metadata[metadataIDs].([]int)
	return append([]int(nil), ids...)
}

// Field returns the offending field name recorded on a validation failure.
func Field(err error) string {
	var typed *goerrors.Error
	if !goerrors.As(err, &typed) || typed == nil {
		return ""
	}
	field, _ := typed.Metadata[metadataField].(string)
	return field
}
