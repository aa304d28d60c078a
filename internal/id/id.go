// Package id generates prefixed identifiers for new rows.
package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entity prefixes
const (
	PrefixUser    = "user"
	PrefixProduct = "prod"
)

// New returns an identifier of the form "<prefix>_<millis36><suffix>".
// The timestamp keeps ids roughly sortable by creation time; the random
// suffix makes collisions within a millisecond implausible.
func New(prefix string) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%s%s", prefix, ts, suffix)
}
