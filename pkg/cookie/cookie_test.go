package cookie_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/thermocore/leadapi/pkg/cookie"
)

const (
	testSecret = "this-is-a-32-byte-or-longer-key!"
	oldSecret  = "an-older-secret-that-is-32-bytes"
)

func newManager(t *testing.T, opts ...cookie.Option) *cookie.Manager {
	t.Helper()
	m, err := cookie.New(append([]cookie.Option{cookie.WithSecret(testSecret)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

// roundTrip copies cookies set on w into a fresh request.
func roundTrip(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	if _, err := cookie.New(); !errors.Is(err, cookie.ErrNoSecret) {
		t.Errorf("New() error = %v, want ErrNoSecret", err)
	}
	if _, err := cookie.New(cookie.WithSecret("short")); !errors.Is(err, cookie.ErrBadSecret) {
		t.Errorf("New(short) error = %v, want ErrBadSecret", err)
	}
	if _, err := cookie.New(cookie.WithSecret(testSecret)); err != nil {
		t.Errorf("New() unexpected error = %v", err)
	}
}

func TestSigned(t *testing.T) {
	m := newManager(t)

	t.Run("round trip", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.SetSigned(w, "consent", "granted", time.Hour)

		got, err := m.GetSigned(roundTrip(w), "consent")
		if err != nil {
			t.Fatalf("GetSigned() error = %v", err)
		}
		if got != "granted" {
			t.Errorf("GetSigned() = %q, want granted", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "consent")
		if !errors.Is(err, cookie.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("tampered", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.SetSigned(w, "consent", "denied", time.Hour)
		c := w.Result().Cookies()[0]

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "consent", Value: "Z3JhbnRlZA." + c.Value[len("ZGVuaWVk."):]})
		if _, err := m.GetSigned(r, "consent"); !errors.Is(err, cookie.ErrBadSig) {
			t.Errorf("error = %v, want ErrBadSig", err)
		}
	})

	t.Run("value bound to name", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.SetSigned(w, "a", "v", time.Hour)
		c := w.Result().Cookies()[0]

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "b", Value: c.Value})
		if _, err := m.GetSigned(r, "b"); !errors.Is(err, cookie.ErrBadSig) {
			t.Errorf("error = %v, want ErrBadSig", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "consent", Value: "no-dot"})
		if _, err := m.GetSigned(r, "consent"); !errors.Is(err, cookie.ErrBadSig) {
			t.Errorf("error = %v, want ErrBadSig", err)
		}
	})
}

func TestSecretRotation(t *testing.T) {
	old, err := cookie.New(cookie.WithSecret(oldSecret))
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	old.SetSigned(w, "consent", "granted", time.Hour)

	rotated := newManager(t, cookie.WithSecret(oldSecret))
	got, err := rotated.GetSigned(roundTrip(w), "consent")
	if err != nil || got != "granted" {
		t.Errorf("GetSigned() = %q, %v; want granted, nil", got, err)
	}

	fresh := newManager(t)
	if _, err := fresh.GetSigned(roundTrip(w), "consent"); !errors.Is(err, cookie.ErrBadSig) {
		t.Errorf("error = %v, want ErrBadSig", err)
	}
}

func TestJSON(t *testing.T) {
	m := newManager(t)

	type state struct {
		Status    string `json:"status"`
		Analytics bool   `json:"analytics"`
	}

	w := httptest.NewRecorder()
	if err := m.SetJSON(w, "consent", state{Status: "custom", Analytics: true}, time.Hour); err != nil {
		t.Fatalf("SetJSON() error = %v", err)
	}

	var got state
	if err := m.GetJSON(roundTrip(w), "consent", &got); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if got.Status != "custom" || !got.Analytics {
		t.Errorf("GetJSON() = %+v", got)
	}

	w = httptest.NewRecorder()
	m.SetSigned(w, "consent", "not json", time.Hour)
	if err := m.GetJSON(roundTrip(w), "consent", &got); !errors.Is(err, cookie.ErrDecode) {
		t.Errorf("error = %v, want ErrDecode", err)
	}
}

func TestAttributes(t *testing.T) {
	m := newManager(t,
		cookie.WithDomain("example.com"),
		cookie.WithPath("/api"),
		cookie.WithSecure(true),
		cookie.WithSameSite(http.SameSiteStrictMode),
	)

	w := httptest.NewRecorder()
	m.SetSigned(w, "consent", "x", 180*24*time.Hour)
	c := w.Result().Cookies()[0]

	if c.Domain != "example.com" || c.Path != "/api" || !c.Secure || !c.HttpOnly {
		t.Errorf("unexpected attributes: %+v", c)
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Errorf("SameSite = %v", c.SameSite)
	}
	if c.MaxAge != 180*24*3600 {
		t.Errorf("MaxAge = %d", c.MaxAge)
	}

	w = httptest.NewRecorder()
	m.Delete(w, "consent")
	if d := w.Result().Cookies()[0]; d.MaxAge >= 0 {
		t.Errorf("Delete MaxAge = %d, want negative", d.MaxAge)
	}
}
