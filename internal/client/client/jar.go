package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"golang.org/x/net/publicsuffix"
)

// CookiesKey is the key/value store key of the persisted API cookies.
const CookiesKey = "api_cookies"

// CookieStore is the slice of the key/value store the jar needs.
type CookieStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

func cookieKey(name, path string) string {
	if path == "" {
		path = "/"
	}
	return name + ";" + path
}

type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires"`
	Secure   bool      `json:"secure"`
	HttpOnly bool      `json:"http_only"`
}

// PersistentJar is an http.CookieJar that mirrors the persistent cookies of
// one API host into a CookieStore. Session cookies (no Max-Age/Expires) stay
// in memory only.
type PersistentJar struct {
	jar   *cookiejar.Jar
	store CookieStore
	scope *url.URL
	log   logging.Logger
	now   func() time.Time

	mu    sync.Mutex
	saved map[string]storedCookie // by name and path
}

// NewPersistentJar builds the jar and restores the unexpired cookies saved
// for scope. A missing or unreadable record starts an empty jar.
func NewPersistentJar(ctx context.Context, scope *url.URL, store CookieStore, log logging.Logger) (*PersistentJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Nop()
	}

	p := &PersistentJar{
		jar:   jar,
		store: store,
		scope: scope,
		log:   log,
		now:   time.Now,
		saved: make(map[string]storedCookie),
	}
	p.restore(ctx)
	return p, nil
}

func (p *PersistentJar) restore(ctx context.Context) {
	raw, err := p.store.Get(ctx, CookiesKey)
	if err != nil {
		p.log.Warn(ctx, "cannot read stored cookies", "err", err)
		return
	}
	if len(raw) == 0 {
		return
	}

	var stored []storedCookie
	if err := json.Unmarshal(raw, &stored); err != nil {
		p.log.Warn(ctx, "discarding malformed stored cookies", "err", err)
		return
	}

	now := p.now()
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		if !sc.Expires.After(now) {
			continue
		}
		p.saved[cookieKey(sc.Name, sc.Path)] = sc
		cookies = append(cookies, &http.Cookie{
			Name:     sc.Name,
			Value:    sc.Value,
			Path:     sc.Path,
			Expires:  sc.Expires,
			Secure:   sc.Secure,
			HttpOnly: sc.HttpOnly,
		})
	}
	p.jar.SetCookies(p.scope, cookies)
}

func (p *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	p.jar.SetCookies(u, cookies)
	if u.Host != p.scope.Host {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	changed := false
	for _, c := range cookies {
		var expires time.Time
		switch {
		case c.MaxAge < 0:
		case c.MaxAge > 0:
			expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		default:
			expires = c.Expires
		}

		path := c.Path
		if path == "" {
			path = "/"
		}
		key := cookieKey(c.Name, path)
		if expires.IsZero() || !expires.After(now) {
			if _, ok := p.saved[key]; ok {
				delete(p.saved, key)
				changed = true
			}
			continue
		}
		p.saved[key] = storedCookie{
			Name: c.Name, Value: c.Value, Path: path, Expires: expires,
			Secure: c.Secure, HttpOnly: c.HttpOnly,
		}
		changed = true
	}
	if changed {
		p.persist()
	}
}

func (p *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	return p.jar.Cookies(u)
}

func (p *PersistentJar) persist() {
	ctx := context.Background()
	stored := make([]storedCookie, 0, len(p.saved))
	for _, sc := range p.saved {
		stored = append(stored, sc)
	}
	b, err := json.Marshal(stored)
	if err != nil {
		p.log.Warn(ctx, "cannot encode cookies", "err", err)
		return
	}
	if err := p.store.Set(ctx, CookiesKey, b); err != nil {
		p.log.Warn(ctx, "cannot persist cookies", "err", err)
	}
}
