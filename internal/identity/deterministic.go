package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// CollectionUUID identifies a stored entry collection.
func CollectionUUID(collection string) uuid.UUID {
	return UUID("go-accordion:collection:" + strings.ToLower(strings.TrimSpace(collection)))
}

// EntryUUID identifies an entry within a collection. The same collection and id
// always map to the same record, so re-saving an entry updates it in place.
func EntryUUID(collection string, id int) uuid.UUID {
	return UUID("go-accordion:entry:" + strings.ToLower(strings.TrimSpace(collection)) + ":" + strconv.Itoa(id))
}
