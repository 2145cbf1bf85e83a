package sim

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// runNamespace scopes run IDs so they never collide with other name-based
// UUIDs.
var runNamespace = uuid.MustParse("6f1d9a52-3c1b-4c57-9a0e-5b8d2f7e4a10")

// RunID derives a name-based (version 5) UUID from the seed and the raw
// config bytes. Rerunning the same configuration yields the same ID, so
// traces from repeated runs can be compared byte for byte.
func RunID(seed int64, config []byte) uuid.UUID {
	name := make([]byte, 8, 8+len(config))
	binary.BigEndian.PutUint64(name, uint64(seed))
	name = append(name, config...)
	return uuid.NewSHA1(runNamespace, name)
}
