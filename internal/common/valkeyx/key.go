// Package valkeyx provides shared Redis/Valkey client utilities:
// key construction, connection setup and nil-reply checks.
package valkeyx

import (
	"fmt"
	"strings"
)

// BuildKey joins a prefix and an id.
// Format: {prefix}:{id}
func BuildKey(prefix, id string) string {
	return fmt.Sprintf("%s:%s", prefix, strings.TrimSpace(id))
}

// BuildKey2 joins a prefix and two ids.
// Format: {prefix}:{id1}:{id2}
func BuildKey2(prefix, id1, id2 string) string {
	return fmt.Sprintf("%s:%s:%s", prefix, strings.TrimSpace(id1), strings.TrimSpace(id2))
}

// BuildKeySuffix joins a prefix, an id and a fixed suffix.
// Format: {prefix}:{id}:{suffix}
func BuildKeySuffix(prefix, id, suffix string) string {
	return fmt.Sprintf("%s:%s:%s", prefix, strings.TrimSpace(id), suffix)
}
