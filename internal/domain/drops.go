package domain

import "sort"

// MergeDropCounts copies positive drop counts from src into dst. Existing
// entries are overwritten: counts are refreshed on every scan, never summed.
func MergeDropCounts(dst, src map[uint32]int) {
	for appID, drops := range src {
		if drops <= 0 {
			continue
		}
		dst[appID] = drops
	}
}

// SortedDropGames orders app ids by descending remaining drop count, ties
// broken by ascending app id, so the games closest to finishing their drops
// are played first.
func SortedDropGames(drops map[uint32]int) []uint32 {
	games := make([]uint32, 0, len(drops))
	for appID := range drops {
		games = append(games, appID)
	}

	sort.Slice(games, func(i, j int) bool {
		if drops[games[i]] != drops[games[j]] {
			return drops[games[i]] > drops[games[j]]
		}
		return games[i] < games[j]
	})

	return games
}

// BuildPlayList concatenates drop games and manual games into the final play
// order, dropping duplicates while preserving each id's first position.
func BuildPlayList(dropGames, manualGames []uint32) []uint32 {
	merged := make([]uint32, 0, len(dropGames)+len(manualGames))
	merged = append(merged, dropGames...)
	merged = append(merged, manualGames...)
	return DedupeGames(merged)
}

// DedupeGames removes duplicate app ids, keeping first occurrence order.
func DedupeGames(games []uint32) []uint32 {
	seen := make(map[uint32]struct{}, len(games))
	unique := make([]uint32, 0, len(games))
	for _, game := range games {
		if _, ok := seen[game]; ok {
			continue
		}
		seen[game] = struct{}{}
		unique = append(unique, game)
	}
	return unique
}
