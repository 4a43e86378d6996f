package fixedfloat

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var errEmptySecret = errors.New("api secret is empty")

// Signer signs request bodies with the account's API secret.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, &SigningError{Err: errEmptySecret}
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Sign returns the lower-case hex HMAC-SHA256 of payload. The payload must be
// byte-identical to the request body that is sent.
func (s *Signer) Sign(payload []byte) (string, error) {
	return Sign(payload, s.secret)
}

func Sign(payload, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", &SigningError{Err: errEmptySecret}
	}
	mac := hmac.New(sha256.New, secret)
	if _, err := mac.Write(payload); err != nil {
		return "", &SigningError{Err: err}
	}
	return hex.EncodeToString(mac.Sum(nil)), nil
}
