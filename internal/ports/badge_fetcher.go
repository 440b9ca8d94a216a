package ports

import "context"

// BadgePageFetcher retrieves one page of the community badge listing.
// Failures never surface as errors: an unavailable page is an empty string
// and the retry policy lives in the farm loop.
type BadgePageFetcher interface {
	// FetchPage returns the badge page body, or "" when unavailable.
	FetchPage(ctx context.Context, page int) string
	// ConfigureSession installs the community auth cookies for the given
	// account and reports whether the authenticated badge URL will be used.
	// An empty access token stores the id for the public profile URL only.
	ConfigureSession(steamID64 uint64, accessToken string) bool
	// ClearSession drops all session cookies, falling back to the public
	// profile URL.
	ClearSession()
	// Authenticated reports whether community auth cookies are active.
	Authenticated() bool
}
