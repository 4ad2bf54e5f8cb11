package payments

import (
	"crypto/rand"
	"fmt"
	"time"
)

const referenceAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateReference builds a ledger reference of the form
// TXN-<unix-ms>-<9 base36 chars>. The millisecond prefix keeps references
// roughly sortable; the random suffix makes collisions within one
// millisecond vanishingly unlikely, and the unique index catches the rest.
func generateReference(now time.Time) string {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// time-derived suffix rather than panic in a request path.
		for i := range buf {
			buf[i] = byte(now.UnixNano() >> (i * 7))
		}
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return fmt.Sprintf("TXN-%d-%s", now.UnixMilli(), string(buf))
}
