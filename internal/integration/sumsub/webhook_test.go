package sumsub_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orryin/orryin-backend/internal/integration/sumsub"
)

func hexSign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := []byte("webhook-secret")
	body := []byte(`{"type":"applicantReviewed","data":{"applicantId":"a1"}}`)
	sig := hexSign(secret, body)

	require.True(t, sumsub.VerifyWebhookSignature(secret, body, sig))
	require.True(t, sumsub.VerifyWebhookSignature(secret, body, "sha256="+sig))
	require.True(t, sumsub.VerifyWebhookSignature(secret, body, "SHA256="+sig))

	require.False(t, sumsub.VerifyWebhookSignature(secret, body, ""))
	require.False(t, sumsub.VerifyWebhookSignature(nil, body, sig))
	require.False(t, sumsub.VerifyWebhookSignature([]byte("other-secret"), body, sig))

	// Any mutation of the body invalidates the signature.
	mutated := append([]byte(nil), body...)
	mutated[0] ^= 0x01
	require.False(t, sumsub.VerifyWebhookSignature(secret, mutated, sig))
}

func TestVerifyWebhookSignatureRejectsMutatedDigest(t *testing.T) {
	secret := []byte("webhook-secret")
	body := []byte("payload")
	sig := hexSign(secret, body)

	for i := range sig {
		bad := []byte(sig)
		if bad[i] == 'f' {
			bad[i] = '0'
		} else {
			bad[i]++
		}
		require.False(t, sumsub.VerifyWebhookSignature(secret, body, string(bad)), "mutation at %d accepted", i)
	}
}
