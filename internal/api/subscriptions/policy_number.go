package subscriptions

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var policyPrefixPattern = regexp.MustCompile(`[^A-Z0-9]`)

// newPolicyNumber builds a candidate policy number for a product type,
// e.g. "SANTE-20260828-4F3A9C". Uniqueness is enforced by the database
// constraint; createSubscription retries with a fresh candidate on
// conflict. Package variable so tests can force collisions.
var newPolicyNumber = func(productType string) string {
	prefix := policyPrefixPattern.ReplaceAllString(strings.ToUpper(productType), "")
	if prefix == "" {
		prefix = "POL"
	}
	if len(prefix) > 5 {
		prefix = prefix[:5]
	}

	suffix := make([]byte, 3)
	rand.Read(suffix)

	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), strings.ToUpper(hex.EncodeToString(suffix)))
}
