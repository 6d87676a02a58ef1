package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// DefaultTolerance bounds the accepted clock skew between the sender
// timestamp and local time, limiting replay windows.
const DefaultTolerance = 5 * time.Minute

// IdentityVerifier authenticates identity-provider events. The provider
// signs `id.timestamp.payload` with a shared secret and sends the
// base64 MAC in a `v1,<sig>` header, possibly listing several
// space-separated candidates during key rotation.
type IdentityVerifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

// NewIdentityVerifier builds a verifier for the identity webhook channel.
func NewIdentityVerifier(secret string, tolerance time.Duration) *IdentityVerifier {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &IdentityVerifier{secret: []byte(secret), tolerance: tolerance, now: time.Now}
}

// Verify checks the event signature before any payload field is trusted.
func (v *IdentityVerifier) Verify(id, timestamp, signature string, payload []byte) error {
	if id == "" || timestamp == "" || signature == "" {
		return ErrInvalidSignature
	}

	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidSignature
	}
	if !withinTolerance(time.Unix(unix, 0), v.now(), v.tolerance) {
		return ErrInvalidSignature
	}

	mac := sign(v.secret, []byte(id+"."+timestamp+"."), payload)
	expected := base64.StdEncoding.EncodeToString(mac)

	for _, candidate := range strings.Fields(signature) {
		candidate = strings.TrimPrefix(candidate, "v1,")
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return nil
		}
	}
	return ErrInvalidSignature
}

// PaymentVerifier authenticates payment-gateway events. The gateway
// signs `timestamp.payload` and sends `t=<unix>,v1=<hex mac>` in a
// single signature header.
type PaymentVerifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

// NewPaymentVerifier builds a verifier for the payment webhook channel.
func NewPaymentVerifier(secret string, tolerance time.Duration) *PaymentVerifier {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &PaymentVerifier{secret: []byte(secret), tolerance: tolerance, now: time.Now}
}

// Verify checks the event signature before any payload field is trusted.
func (v *PaymentVerifier) Verify(header string, payload []byte) error {
	if header == "" {
		return ErrInvalidSignature
	}

	var timestamp string
	var candidates []string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return ErrInvalidSignature
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			candidates = append(candidates, value)
		}
	}
	if timestamp == "" || len(candidates) == 0 {
		return ErrInvalidSignature
	}

	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidSignature
	}
	if !withinTolerance(time.Unix(unix, 0), v.now(), v.tolerance) {
		return ErrInvalidSignature
	}

	expected := hex.EncodeToString(sign(v.secret, []byte(timestamp+"."), payload))
	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return nil
		}
	}
	return ErrInvalidSignature
}

func sign(secret []byte, prefix, payload []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(prefix)
	mac.Write(payload)
	return mac.Sum(nil)
}

func withinTolerance(sent, now time.Time, tolerance time.Duration) bool {
	diff := now.Sub(sent)
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
