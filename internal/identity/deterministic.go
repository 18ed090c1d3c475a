package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
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

// LessonUUID derives a stable identifier from the lesson ordinal so repeated
// imports of the same file update the same record.
func LessonUUID(ordinal int) uuid.UUID {
	return UUID("go-curriculum:lesson:" + strconv.Itoa(ordinal))
}

// OutlineUUID derives a stable identifier from the outline code.
func OutlineUUID(code string) uuid.UUID {
	return UUID("go-curriculum:outline:" + strings.ToLower(strings.TrimSpace(code)))
}

// LevelUUID derives a stable identifier for a level within an outline.
func LevelUUID(outlineID uuid.UUID, position int) uuid.UUID {
	return UUID("go-curriculum:outline_level:" + outlineID.String() + ":" + strconv.Itoa(position))
}

// EntryUUID derives a stable identifier for an entry within a level.
func EntryUUID(levelID uuid.UUID, target string) uuid.UUID {
	return UUID("go-curriculum:outline_entry:" + levelID.String() + ":" + strings.TrimSpace(target))
}
