package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/steambooster/internal/domain"
	"github.com/bnema/steambooster/internal/ports"
	"github.com/jonboulle/clockwork"
)

const defaultReconnectWait = 10 * time.Minute

// ControllerConfig bundles one account's collaborators. Every controller
// owns its transport, fetcher, and clock; nothing is shared across accounts
// except the process log sink.
type ControllerConfig struct {
	Credentials   domain.Credentials
	Transport     ports.Transport
	Fetcher       ports.BadgePageFetcher
	Logger        ports.Logger
	Clock         clockwork.Clock
	ReconnectWait time.Duration
}

// SessionController drives one account's connect → authenticate → logged-on
// → farm-loop → logged-off/disconnected lifecycle. Transport events are
// drained by Run; the farm loop runs as an independently cancelled periodic
// task while logged on.
type SessionController struct {
	creds         domain.Credentials
	transport     ports.Transport
	fetcher       ports.BadgePageFetcher
	log           ports.Logger
	clock         clockwork.Clock
	reconnectWait time.Duration

	play *PlayStateManager
	farm *FarmService

	mu         sync.Mutex
	state      domain.SessionState
	blocked    bool
	steamID64  uint64
	authToken  string
	farmCancel context.CancelFunc
	farmDone   chan struct{}
}

func NewSessionController(cfg ControllerConfig) *SessionController {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = defaultReconnectWait
	}

	play := NewPlayStateManager(cfg.Transport, cfg.Logger)

	return &SessionController{
		creds:         cfg.Credentials,
		transport:     cfg.Transport,
		fetcher:       cfg.Fetcher,
		log:           cfg.Logger,
		clock:         cfg.Clock,
		reconnectWait: cfg.ReconnectWait,
		play:          play,
		farm:          NewFarmService(cfg.Credentials, play, cfg.Fetcher, cfg.Logger),
		state:         domain.StateDisconnected,
	}
}

// Run connects and drains transport events until ctx is canceled or the
// transport shuts down. It is the single consumer of the event channel.
func (c *SessionController) Run(ctx context.Context) {
	c.log.Debug("connecting to Steam")
	c.transport.Connect()

	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return
		case event, ok := <-c.transport.Events():
			if !ok {
				c.shutdown()
				return
			}
			c.handleEvent(ctx, event)
		}
	}
}

// State reports the current lifecycle position, folding the blocked flag in.
func (c *SessionController) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == domain.StateLoggedOn && c.blocked {
		return domain.StatePlayingBlocked
	}
	return c.state
}

func (c *SessionController) handleEvent(ctx context.Context, event ports.Event) {
	switch ev := event.(type) {
	case ports.ConnectedEvent:
		c.onConnected()
	case ports.LoggedOnEvent:
		c.onLoggedOn(ctx, ev)
	case ports.LogOnFailedEvent:
		c.onLogOnFailed(ev)
	case ports.LoggedOffEvent:
		c.onLoggedOff(ev)
	case ports.DisconnectedEvent:
		c.onDisconnected(ctx)
	case ports.AuthTokenEvent:
		c.mu.Lock()
		c.authToken = ev.Token
		c.mu.Unlock()
		c.log.Debug("cached auth token for future logons")
	case ports.WebSessionEvent:
		c.onWebSession(ev)
	case ports.PlayingSessionEvent:
		c.onPlayingSession(ev)
	}
}

func (c *SessionController) onConnected() {
	c.log.Debug("connected to Steam, logging in as %s", c.creds.Username)

	c.mu.Lock()
	c.state = domain.StateAuthPending
	token := c.authToken
	c.mu.Unlock()

	// The cached token replaces the password entirely once issued.
	password := c.creds.Password
	if token != "" {
		password = ""
	}
	c.transport.LogOn(c.creds.Username, password, c.creds.DeviceName, token)
}

func (c *SessionController) onLoggedOn(ctx context.Context, ev ports.LoggedOnEvent) {
	c.mu.Lock()
	c.state = domain.StateLoggedOn
	c.blocked = false
	c.steamID64 = ev.SteamID64
	c.mu.Unlock()

	c.farm.ResetStatus()

	// Cookies are best-effort: without a web token the scan falls back to
	// the public profile view.
	if !c.fetcher.ConfigureSession(ev.SteamID64, "") {
		c.log.Warning("no web session yet; badge scan may use non-owner view")
	}

	c.log.Success("logged in as %s (%d)", c.creds.Username, ev.SteamID64)
	c.startFarmLoop(ctx)
}

func (c *SessionController) onLogOnFailed(ev ports.LogOnFailedEvent) {
	c.log.Error("unable to log into Steam: %s", ev.Result)

	// No login retry of our own; the next connect cycle will try again.
	c.mu.Lock()
	c.state = domain.StateConnected
	c.mu.Unlock()
}

func (c *SessionController) onLoggedOff(ev ports.LoggedOffEvent) {
	c.log.Warning("logged off account: %s", ev.Result)

	c.mu.Lock()
	c.state = domain.StateLoggedOff
	c.mu.Unlock()

	c.stopFarmLoop()
	c.fetcher.ClearSession()
	c.play.StopPlaying()
	c.farm.ResetStatus()

	if ev.Replaced {
		c.log.Warning("logged on from a different place, reconnecting")
		c.transport.Disconnect()
	}
}

func (c *SessionController) onDisconnected(ctx context.Context) {
	c.log.Error("disconnected from Steam")

	c.mu.Lock()
	c.state = domain.StateDisconnected
	c.mu.Unlock()

	c.stopFarmLoop()
	c.fetcher.ClearSession()
	c.play.StopPlaying()
	c.farm.ResetStatus()

	// Single reconnect attempt after the cool-down.
	go func() {
		select {
		case <-ctx.Done():
		case <-c.clock.After(c.reconnectWait):
			c.transport.Connect()
		}
	}()
}

func (c *SessionController) onWebSession(ev ports.WebSessionEvent) {
	c.mu.Lock()
	steamID64 := c.steamID64
	c.mu.Unlock()

	if c.fetcher.ConfigureSession(steamID64, ev.Token) {
		c.log.Debug("community auth cookies initialized")
		return
	}
	c.log.Warning("failed to initialize community auth cookies; badge scan may use non-owner view")
}

func (c *SessionController) onPlayingSession(ev ports.PlayingSessionEvent) {
	c.mu.Lock()
	c.blocked = ev.Blocked
	c.mu.Unlock()

	// The farm loop stays the single source of truth for play decisions;
	// this only stops an active set immediately.
	if ev.Blocked && c.play.IsPlaying() {
		c.farm.ReportPaused()
	} else if !ev.Blocked {
		c.log.Debug("account is available, farm loop can resume")
	}
}

func (c *SessionController) startFarmLoop(ctx context.Context) {
	c.stopFarmLoop()

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	c.mu.Lock()
	c.farmCancel = cancel
	c.farmDone = done
	c.mu.Unlock()

	go func() {
		defer close(done)
		for {
			if loopCtx.Err() != nil {
				return
			}

			c.runIterationGuarded(loopCtx)

			select {
			case <-loopCtx.Done():
				return
			case <-c.clock.After(c.creds.FarmCheckInterval):
			}
		}
	}()
}

// runIterationGuarded keeps a misbehaving iteration from killing the loop;
// the next tick proceeds on schedule.
func (c *SessionController) runIterationGuarded(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("farm iteration failed: %v", r)
		}
	}()

	c.farm.RunIteration(ctx, c.snapshot())
}

func (c *SessionController) stopFarmLoop() {
	c.mu.Lock()
	cancel, done := c.farmCancel, c.farmDone
	c.farmCancel, c.farmDone = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

func (c *SessionController) snapshot() SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return SessionSnapshot{
		LoggedOn:       c.state == domain.StateLoggedOn,
		PlayingBlocked: c.blocked,
		SteamID64:      c.steamID64,
	}
}

func (c *SessionController) shutdown() {
	c.stopFarmLoop()
	c.play.StopPlaying()
	c.transport.Disconnect()
}
