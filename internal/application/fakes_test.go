package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/steambooster/internal/ports"
)

type logonCall struct {
	username  string
	password  string
	authToken string
}

type fakeTransport struct {
	mu          sync.Mutex
	events      chan ports.Event
	gamesCalls  [][]uint32
	logons      []logonCall
	connects    int
	disconnects int
}

var _ ports.Transport = (*fakeTransport)(nil)

func newFakeTransport() *fakeTransport {
	return &fakeTransport{events: make(chan ports.Event, 16)}
}

func (t *fakeTransport) Connect() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connects++
}

func (t *fakeTransport) Disconnect() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disconnects++
}

func (t *fakeTransport) LogOn(username, password, _, authToken string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logons = append(t.logons, logonCall{username: username, password: password, authToken: authToken})
}

func (t *fakeTransport) SetGamesPlayed(appIDs []uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gamesCalls = append(t.gamesCalls, append([]uint32(nil), appIDs...))
}

func (t *fakeTransport) Events() <-chan ports.Event { return t.events }

func (t *fakeTransport) emit(event ports.Event) { t.events <- event }

func (t *fakeTransport) gamesCallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.gamesCalls)
}

func (t *fakeTransport) lastGamesCall() []uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.gamesCalls) == 0 {
		return nil
	}
	return t.gamesCalls[len(t.gamesCalls)-1]
}

func (t *fakeTransport) connectCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connects
}

func (t *fakeTransport) disconnectCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.disconnects
}

func (t *fakeTransport) logonCalls() []logonCall {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]logonCall(nil), t.logons...)
}

type fakeFetcher struct {
	mu            sync.Mutex
	pages         map[int]string
	authenticated bool
	configured    []uint64
	cleared       int
}

var _ ports.BadgePageFetcher = (*fakeFetcher)(nil)

func (f *fakeFetcher) FetchPage(_ context.Context, page int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pages[page]
}

func (f *fakeFetcher) ConfigureSession(steamID64 uint64, accessToken string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configured = append(f.configured, steamID64)
	f.authenticated = steamID64 != 0 && accessToken != ""
	return f.authenticated
}

func (f *fakeFetcher) ClearSession() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared++
	f.authenticated = false
}

func (f *fakeFetcher) Authenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authenticated
}

type recordingLogger struct {
	mu    sync.Mutex
	lines map[string][]string
}

var _ ports.Logger = (*recordingLogger)(nil)

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{lines: map[string][]string{}}
}

func (l *recordingLogger) record(level, format string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines[level] = append(l.lines[level], fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debug(format string, args ...any)   { l.record("debug", format, args) }
func (l *recordingLogger) Info(format string, args ...any)    { l.record("info", format, args) }
func (l *recordingLogger) Success(format string, args ...any) { l.record("success", format, args) }
func (l *recordingLogger) Warning(format string, args ...any) { l.record("warning", format, args) }
func (l *recordingLogger) Error(format string, args ...any)   { l.record("error", format, args) }

func (l *recordingLogger) level(name string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines[name]...)
}

// badgePage renders a minimal badge listing with the given drops, in order.
func badgePage(extra string, entries ...[2]uint32) string {
	page := `<div class="badges_sheet">` + extra
	for _, entry := range entries {
		page += fmt.Sprintf(`<div class="badge_row"><a href="https://steamcommunity.com/my/gamecards/%d/">x</a>`+
			`<span>%d card drops remaining</span></div>`, entry[0], entry[1])
	}
	return page + `</div>`
}
