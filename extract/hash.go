package extract

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/chatextract"
)

// ContentHash fingerprints a message sequence for duplicate-archive
// detection. The hash covers roles and content only, so re-extracting
// the same share page yields the same hash regardless of timestamps.
func ContentHash(msgs []chatextract.Message) string {
	d := xxhash.New()
	for _, m := range msgs {
		d.WriteString(string(m.Role))
		d.WriteString("\x00")
		d.WriteString(m.Content)
		d.WriteString("\x00")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
