package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/steambooster/internal/badges"
	"github.com/bnema/steambooster/internal/domain"
	"github.com/bnema/steambooster/internal/ports"
)

// SessionSnapshot is the controller state one farm iteration decides on.
type SessionSnapshot struct {
	LoggedOn       bool
	PlayingBlocked bool
	SteamID64      uint64
}

// FarmService decides, once per interval, which games to play: drop-eligible
// games from the badge scan first, then manually configured games. Status
// lines are deduplicated against the previous iteration so a steady state
// logs exactly once.
type FarmService struct {
	creds   domain.Credentials
	play    *PlayStateManager
	fetcher ports.BadgePageFetcher
	log     ports.Logger

	mu         sync.Mutex
	lastStatus string
}

func NewFarmService(creds domain.Credentials, play *PlayStateManager, fetcher ports.BadgePageFetcher, log ports.Logger) *FarmService {
	return &FarmService{creds: creds, play: play, fetcher: fetcher, log: log}
}

// RunIteration executes one pass of the farm decision loop. A canceled
// context aborts without further play-state changes or diagnostics.
func (s *FarmService) RunIteration(ctx context.Context, snap SessionSnapshot) {
	if !snap.LoggedOn {
		s.play.StopPlaying()
		s.reportStatus("farm idle: not logged on", s.log.Debug)
		return
	}

	if snap.PlayingBlocked {
		s.play.StopPlaying()
		s.reportStatus("farm paused: account is currently in use", s.log.Warning)
		return
	}

	manualGames := domain.DedupeGames(s.creds.Games)

	var dropGames []uint32
	var diagnostic string

	if s.creds.AutoFarmCardDrops {
		drops, diag, err := s.scanCardDrops(ctx, snap.SteamID64)
		if err != nil {
			return
		}
		diagnostic = diag
		if len(drops) > 0 {
			dropGames = domain.SortedDropGames(drops)
		}
	}

	gamesToPlay := domain.BuildPlayList(dropGames, manualGames)

	if len(gamesToPlay) > 0 {
		s.play.SetPlaying(gamesToPlay)

		switch {
		case len(dropGames) > 0 && len(manualGames) > 0:
			s.reportStatus(fmt.Sprintf("playing %d games (drops + manual hours)", len(gamesToPlay)), s.log.Info)
		case len(dropGames) > 0:
			s.reportStatus(fmt.Sprintf("playing %d drop games", len(dropGames)), s.log.Info)
		default:
			s.reportStatus(fmt.Sprintf("playing %d manual hour games", len(manualGames)), s.log.Info)
		}
		return
	}

	s.play.StopPlaying()

	if diagnostic != "" {
		s.reportStatus(diagnostic, s.log.Warning)
		return
	}

	s.reportStatus("no card drops or manual games configured for this account", s.log.Success)
}

// ReportPaused stops play and surfaces the paused status outside the loop's
// own schedule (used when a blocking session appears mid-interval).
func (s *FarmService) ReportPaused() {
	s.play.StopPlaying()
	s.reportStatus("farm paused: account is currently in use", s.log.Warning)
}

// ResetStatus clears the duplicate-suppression state, so the next iteration
// always logs. Called on logon, logoff, and disconnect.
func (s *FarmService) ResetStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastStatus = ""
}

// scanCardDrops walks the paginated badge listing and collects remaining
// drop counts per app. The returned diagnostic explains an empty result that
// was not a plain "zero drops"; the error is non-nil only on cancellation.
func (s *FarmService) scanCardDrops(ctx context.Context, steamID64 uint64) (map[uint32]int, string, error) {
	drops := map[uint32]int{}

	if steamID64 == 0 {
		return drops, "badge scan needs a resolved SteamID", nil
	}

	firstPage := s.fetcher.FetchPage(ctx, 1)
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	if diag := badges.Diagnose(firstPage); diag != "" {
		return drops, diag, nil
	}

	firstParse := badges.Parse(firstPage)
	domain.MergeDropCounts(drops, firstParse.DropsByAppID)

	// Pagination links only appear on page 1; later pages never raise the
	// ceiling for this iteration.
	maxPage := badges.MaxPage(firstPage)

	for page := 2; page <= maxPage; page++ {
		body := s.fetcher.FetchPage(ctx, page)
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		domain.MergeDropCounts(drops, badges.Parse(body).DropsByAppID)
	}

	if len(drops) > 0 {
		return drops, "", nil
	}

	if firstParse.DropPhraseCount > 0 && firstParse.LinkedDropCount == 0 {
		return drops, "found drop text, but no matching app links were parsed; the badge page structure likely changed", nil
	}

	if firstParse.BadgeRowCount > 0 && firstParse.DropPhraseCount == 0 {
		if s.fetcher.Authenticated() {
			return drops, "badges are visible, but no owner drop text is present; Steam may be rejecting the current auth cookies", nil
		}
		return drops, "badges are visible, but no owner drop text is present; Steam may be returning a non-owner view", nil
	}

	return drops, "", nil
}

func (s *FarmService) reportStatus(message string, sink func(string, ...any)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if message == s.lastStatus {
		return
	}

	s.lastStatus = message
	sink("%s", message)
}
