// Package ingesttoken issues and verifies the short-lived credentials that
// authorize event ingestion for exactly one session.
//
// A token is base64url(payload || '.' || HMAC-SHA256(secret, payload)) without
// padding, where payload is the compact JSON {"sid":"<session>","exp":<unix>}.
package ingesttoken

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultTTL is the validity window used when a session is started.
const DefaultTTL = time.Hour

const separator = '.'

var (
	// ErrUnauthorized is the coarse outcome every verification failure matches.
	ErrUnauthorized = errors.New("unauthorized")

	ErrInvalidFormat    = fmt.Errorf("%w: invalid token format", ErrUnauthorized)
	ErrInvalidSignature = fmt.Errorf("%w: invalid signature", ErrUnauthorized)
	ErrExpired          = fmt.Errorf("%w: token expired", ErrUnauthorized)

	// ErrInvalidSessionID is returned by Issue for ids that could not be verified later.
	ErrInvalidSessionID = errors.New("session id must not contain '.'")
)

type Claims struct {
	SessionID string
	ExpiresAt time.Time
}

type payload struct {
	SID string `json:"sid"`
	Exp int64  `json:"exp"`
}

type Codec struct {
	secret []byte
	now    func() time.Time
}

type Option func(*Codec)

// WithClock replaces the wall clock used for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

func NewCodec(secret string, opts ...Option) *Codec {
	c := &Codec{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codec) Issue(sessionID string, ttl time.Duration) (string, error) {
	if strings.IndexByte(sessionID, separator) >= 0 {
		return "", ErrInvalidSessionID
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	body, err := json.Marshal(payload{
		SID: sessionID,
		Exp: c.now().Add(ttl).Unix(),
	})
	if err != nil {
		return "", err
	}
	raw := make([]byte, 0, len(body)+1+sha256.Size)
	raw = append(raw, body...)
	raw = append(raw, separator)
	raw = append(raw, c.sign(body)...)
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func (c *Codec) Verify(token string) (Claims, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return Claims{}, ErrInvalidFormat
	}
	// Issue keeps the separator out of the payload; the tag may contain it.
	idx := bytes.IndexByte(raw, separator)
	if idx <= 0 {
		return Claims{}, ErrInvalidFormat
	}
	body, tag := raw[:idx], raw[idx+1:]
	if !hmac.Equal(tag, c.sign(body)) {
		return Claims{}, ErrInvalidSignature
	}
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return Claims{}, ErrInvalidFormat
	}
	if p.Exp <= c.now().Unix() {
		return Claims{}, ErrExpired
	}
	return Claims{SessionID: p.SID, ExpiresAt: time.Unix(p.Exp, 0).UTC()}, nil
}

func (c *Codec) sign(body []byte) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(body)
	return mac.Sum(nil)
}
