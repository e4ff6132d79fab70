package dispatch

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// fingerprint identifies an update to the spam gate. Which fields
// participate in the cache key depends on the configured Granularity.
type fingerprint struct {
	sender  int64
	chat    int64
	kind    Kind
	content string
}

// key renders the fingerprint as a cache key. Content is hashed so that
// arbitrarily long payloads cost a fixed amount of cache memory.
func (f fingerprint) key(g Granularity) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(f.sender, 10))
	if g >= GranularityChat {
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(f.chat, 10))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(f.kind)))
	}
	if g >= GranularityContent {
		b.WriteByte(':')
		b.WriteString(hashContent(f.content))
	}
	return b.String()
}

func hashContent(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
