package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrNoSecret  = errors.New("cookie: secret required")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrBadSig    = errors.New("cookie: invalid signature")
	ErrDecode    = errors.New("cookie: invalid payload")
)

const minSecretLen = 32

// Manager signs and verifies cookies.
type Manager struct {
	secrets  [][]byte
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a Manager. At least one secret is required and every secret
// must be 32 bytes or longer.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		path:     "/",
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}

	if len(m.secrets) == 0 {
		return nil, ErrNoSecret
	}
	for _, s := range m.secrets {
		if len(s) < minSecretLen {
			return nil, ErrBadSecret
		}
	}
	return m, nil
}

// WithSecret sets the signing secrets. The first one signs new cookies.
func WithSecret(secrets ...string) Option {
	return func(m *Manager) {
		for _, s := range secrets {
			if s != "" {
				m.secrets = append(m.secrets, []byte(s))
			}
		}
	}
}

func WithDomain(domain string) Option {
	return func(m *Manager) { m.domain = domain }
}

func WithPath(path string) Option {
	return func(m *Manager) { m.path = path }
}

func WithSecure(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) { m.httpOnly = httpOnly }
}

func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) { m.sameSite = ss }
}

// GetSigned returns the verified value of a signed cookie.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}

	payload, sig, ok := strings.Cut(c.Value, ".")
	if !ok {
		return "", ErrBadSig
	}
	value, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrBadSig
	}
	mac, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", ErrBadSig
	}

	for _, secret := range m.secrets {
		if hmac.Equal(mac, sign(secret, name, value)) {
			return string(value), nil
		}
	}
	return "", ErrBadSig
}

// SetSigned writes a signed cookie that expires after ttl. A zero ttl makes
// a session cookie.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, ttl time.Duration) {
	v := []byte(value)
	encoded := base64.RawURLEncoding.EncodeToString(v) + "." +
		base64.RawURLEncoding.EncodeToString(sign(m.secrets[0], name, v))
	http.SetCookie(w, m.cookie(name, encoded, ttl))
}

// GetJSON verifies a signed cookie and decodes its JSON payload into dest.
func (m *Manager) GetJSON(r *http.Request, name string, dest any) error {
	raw, err := m.GetSigned(r, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// SetJSON encodes v as JSON and writes it as a signed cookie.
func (m *Manager) SetJSON(w http.ResponseWriter, name string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cookie: encode %s: %w", name, err)
	}
	m.SetSigned(w, name, string(data), ttl)
	return nil
}

// Delete expires the cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	c := m.cookie(name, "", 0)
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

func (m *Manager) cookie(name, value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Domain:   m.domain,
		Path:     m.path,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
	if ttl > 0 {
		c.MaxAge = int(ttl / time.Second)
		c.Expires = time.Now().Add(ttl).UTC()
	}
	return c
}

func sign(secret []byte, name string, value []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(name))
	mac.Write([]byte{'|'})
	mac.Write(value)
	return mac.Sum(nil)
}
