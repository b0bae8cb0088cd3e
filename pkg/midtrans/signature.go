package midtrans

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// ComputeSignature derives the webhook signature for a notification payload.
// Midtrans signs as SHA512(order_id + status_code + gross_amount + server_key)
// hex-encoded.
func ComputeSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature reports whether the supplied signature matches the payload.
// Comparison is constant time.
func VerifySignature(orderID, statusCode, grossAmount, serverKey, signature string) bool {
	if signature == "" {
		return false
	}
	expected := ComputeSignature(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
