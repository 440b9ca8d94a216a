// Package steamweb fetches community badge pages over HTTP, authenticating
// with the web-session cookies Steam expects from the desktop client.
package steamweb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/steambooster/internal/ports"
)

const (
	defaultCommunityBase = "https://steamcommunity.com"
	storeBase            = "https://store.steampowered.com"

	userAgent        = "SteamBooster/2.2 (+https://steamcommunity.com)"
	defaultTimeout   = 45 * time.Second
	maxBadgePageBody = 4 << 20
)

type Fetcher struct {
	httpClient    *http.Client
	log           ports.Logger
	timeout       time.Duration
	communityBase string

	mu            sync.Mutex
	steamID64     uint64
	authenticated bool
}

var _ ports.BadgePageFetcher = (*Fetcher)(nil)

func NewFetcher(log ports.Logger, timeout time.Duration) (*Fetcher, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Fetcher{
		httpClient:    &http.Client{Jar: jar},
		log:           log,
		timeout:       timeout,
		communityBase: defaultCommunityBase,
	}, nil
}

// FetchPage issues one GET for the given badge page. Any failure (request
// construction, transport, non-2xx status, body read) downgrades to an
// empty page; the caller treats that as "page unavailable".
func (f *Fetcher) FetchPage(ctx context.Context, page int) string {
	f.mu.Lock()
	steamID64, authenticated := f.steamID64, f.authenticated
	f.mu.Unlock()

	var pageURL string
	if authenticated {
		pageURL = fmt.Sprintf("%s/my/badges/?l=english&p=%d", f.communityBase, page)
	} else {
		pageURL = fmt.Sprintf("%s/profiles/%d/badges/?l=english&p=%d", f.communityBase, steamID64, page)
	}

	requestCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.log.Debug("badge page %d fetch failed: %v", page, err)
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		f.log.Debug("badge page %d returned status %d", page, resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBadgePageBody))
	if err != nil {
		return ""
	}

	return string(body)
}

// ConfigureSession stores the account id for the public profile URL and,
// when an access token is present, installs the community auth cookies that
// unlock the owner badge view. Reports whether the authenticated URL will
// be used.
func (f *Fetcher) ConfigureSession(steamID64 uint64, accessToken string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.steamID64 = steamID64
	f.authenticated = false

	if steamID64 == 0 || strings.TrimSpace(accessToken) == "" {
		return false
	}

	sessionID := strings.ReplaceAll(uuid.NewString(), "-", "")
	loginSecure := url.QueryEscape(fmt.Sprintf("%d||%s", steamID64, accessToken))

	for _, base := range []string{f.communityBase, storeBase} {
		target, err := url.Parse(base)
		if err != nil {
			return false
		}
		f.httpClient.Jar.SetCookies(target, []*http.Cookie{
			{Name: "sessionid", Value: sessionID, Path: "/"},
			{Name: "steamRememberLogin", Value: "true", Path: "/"},
			{Name: "steamLoginSecure", Value: loginSecure, Path: "/"},
		})
	}

	f.authenticated = true
	return true
}

// ClearSession drops all cookies and the stored account id.
func (f *Fetcher) ClearSession() {
	f.mu.Lock()
	defer f.mu.Unlock()

	// cookiejar has no removal API; a fresh jar is the reset.
	if jar, err := cookiejar.New(nil); err == nil {
		f.httpClient.Jar = jar
	}

	f.steamID64 = 0
	f.authenticated = false
}

func (f *Fetcher) Authenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authenticated
}
