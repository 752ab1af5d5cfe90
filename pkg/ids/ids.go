// Package ids generates the application-level string identifiers used to
// address every record in the store. The store's native identifier is never
// used for cross-entity references.
package ids

import (
	"math/rand"
	"strconv"
	"time"
)

// Entity-type prefixes.
const (
	PrefixUser         = "usr_"
	PrefixAdmin        = "adm_"
	PrefixProject      = "prj_"
	PrefixTask         = "tsk_"
	PrefixNotification = "not_"
	PrefixSuggestion   = "ai_"
)

const randomLen = 8

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// New returns a fresh identifier of the form
// <prefix><millis-base36><8 random base36 chars>.
func New(prefix string) string {
	buf := make([]byte, 0, len(prefix)+16)
	buf = append(buf, prefix...)
	buf = strconv.AppendInt(buf, time.Now().UnixMilli(), 36)
	for i := 0; i < randomLen; i++ {
		buf = append(buf, base36[rand.Intn(len(base36))])
	}
	return string(buf)
}
