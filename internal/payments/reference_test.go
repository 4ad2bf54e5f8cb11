package payments

import (
	"fmt"
	"regexp"
	"testing"
	"time"
)

func TestGenerateReference(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	pattern := regexp.MustCompile(fmt.Sprintf(`^TXN-%d-[0-9a-z]{9}$`, now.UnixMilli()))

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ref := generateReference(now)
		if !pattern.MatchString(ref) {
			t.Fatalf("reference %q does not match expected shape", ref)
		}
		if seen[ref] {
			t.Fatalf("duplicate reference generated: %q", ref)
		}
		seen[ref] = true
	}
}
