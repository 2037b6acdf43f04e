package sumsub

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifyWebhookSignature checks the HMAC-SHA256 signature of an inbound
// webhook against the exact raw request body. The header value is a hex
// digest, optionally prefixed with "sha256=" (any case). Missing secret or
// missing header rejects.
func VerifyWebhookSignature(secret, rawBody []byte, headerSignature string) bool {
	if len(secret) == 0 || headerSignature == "" {
		return false
	}

	sig := headerSignature
	if len(sig) >= 7 && strings.EqualFold(sig[:7], "sha256=") {
		sig = sig[7:]
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(sig))
}
