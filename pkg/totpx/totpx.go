// Package totpx is the RFC 6238 engine behind MFA enrollment and login. It
// wraps github.com/pquerna/otp with the portal's fixed parameters and an
// injectable clock.
package totpx

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	DefaultPeriod     = 30
	DefaultSkew       = 1
	DefaultSecretSize = 20 // 160 bits
	DefaultQRSize     = 256
)

// ErrInvalidSecret is returned by CodeAt for secrets that are not base32.
var ErrInvalidSecret = errors.New("totpx: invalid secret")

// Engine computes and checks six digit codes. The zero value is not usable;
// build one with New.
type Engine struct {
	Issuer     string
	Period     uint
	Skew       uint
	Digits     otp.Digits
	Algorithm  otp.Algorithm
	SecretSize uint
	Now        func() time.Time
}

// Enrollment is a freshly generated shared secret and the provisioning URI an
// authenticator app scans.
type Enrollment struct {
	Secret  string
	URI     string
	Issuer  string
	Account string
}

func New(issuer string) *Engine {
	return &Engine{
		Issuer:     issuer,
		Period:     DefaultPeriod,
		Skew:       DefaultSkew,
		Digits:     otp.DigitsSix,
		Algorithm:  otp.AlgorithmSHA1,
		SecretSize: DefaultSecretSize,
		Now:        time.Now,
	}
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Engine) opts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    e.Period,
		Skew:      e.Skew,
		Digits:    e.Digits,
		Algorithm: e.Algorithm,
	}
}

// GenerateSecret creates a random secret for account and the otpauth:// URI
// carrying issuer, account, secret and code parameters.
func (e *Engine) GenerateSecret(account string) (Enrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      e.Issuer,
		AccountName: account,
		Period:      e.Period,
		SecretSize:  e.SecretSize,
		Digits:      e.Digits,
		Algorithm:   e.Algorithm,
	})
	if err != nil {
		return Enrollment{}, fmt.Errorf("generate totp secret: %w", err)
	}

	return Enrollment{
		Secret:  key.Secret(),
		URI:     key.URL(),
		Issuer:  key.Issuer(),
		Account: key.AccountName(),
	}, nil
}

// CodeAt returns the code for the time step containing t.
func (e *Engine) CodeAt(secret string, t time.Time) (string, error) {
	code, err := totp.GenerateCodeCustom(secret, t, e.opts())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return code, nil
}

// CurrentCode returns the code for the engine's current time.
func (e *Engine) CurrentCode(secret string) (string, error) {
	return e.CodeAt(secret, e.now())
}

// VerifyAt reports whether code is valid at t, allowing Skew steps either
// side. Empty, non-numeric and wrong length codes and undecodable secrets are
// rejected.
func (e *Engine) VerifyAt(secret, code string, t time.Time) bool {
	code = strings.TrimSpace(code)
	if len(code) != e.Digits.Length() || !isDigits(code) {
		return false
	}
	if strings.TrimSpace(secret) == "" {
		return false
	}

	ok, err := totp.ValidateCustom(code, secret, t, e.opts())
	if err != nil {
		return false
	}
	return ok
}

// Verify checks code against the engine's current time.
func (e *Engine) Verify(secret, code string) bool {
	return e.VerifyAt(secret, code, e.now())
}

// QRCodeDataURL renders uri as a size×size PNG QR code and returns it as a
// data: URL ready for an <img> tag.
func QRCodeDataURL(uri string, size int) (string, error) {
	if size <= 0 {
		size = DefaultQRSize
	}

	key, err := otp.NewKeyFromURL(uri)
	if err != nil {
		return "", fmt.Errorf("parse otpauth uri: %w", err)
	}

	img, err := key.Image(size, size)
	if err != nil {
		return "", fmt.Errorf("render qr code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode qr png: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
