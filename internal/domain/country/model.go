package country

import (
	"hash/fnv"
	"strings"
)

// Country is an upstream reference record. The stats provider does not
// assign countries a numeric ID, so the ID is derived deterministically from
// the name: the same name always maps to the same ID, across processes and
// across concurrent sync calls.
type Country struct {
	ID   int64
	Name string
	Code string
	Flag string
}

// DeriveID computes the stable synthetic ID for a country name. FNV-64a over
// the trimmed lower-case name, masked positive so it fits a BIGINT column.
func DeriveID(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))

	return int64(h.Sum64() & 0x7fffffffffffffff)
}
