package domain

import (
	"math"
	"strings"
	"time"
)

const (
	minFarmCheckInterval = 15 * time.Second
	maxFarmCheckInterval = 600 * time.Second

	defaultDeviceName = "SteamBooster"
)

// Credentials holds everything one controller needs to run an account.
// Immutable after construction.
type Credentials struct {
	Username          string
	Password          string
	DeviceName        string
	Games             []uint32
	AutoFarmCardDrops bool
	FarmCheckInterval time.Duration
}

// NewCredentials sanitizes raw account fields: the check interval is clamped
// to [15s, 600s], the device name falls back to a default, and game ids that
// do not fit a Steam app id are discarded.
func NewCredentials(username, password, deviceName string, games []uint64, autoFarm bool, intervalSeconds int) Credentials {
	interval := time.Duration(intervalSeconds) * time.Second
	if interval < minFarmCheckInterval {
		interval = minFarmCheckInterval
	}
	if interval > maxFarmCheckInterval {
		interval = maxFarmCheckInterval
	}

	if strings.TrimSpace(deviceName) == "" {
		deviceName = defaultDeviceName
	}

	sanitized := make([]uint32, 0, len(games))
	for _, game := range games {
		if game > math.MaxUint32 {
			continue
		}
		sanitized = append(sanitized, uint32(game))
	}

	return Credentials{
		Username:          strings.TrimSpace(username),
		Password:          password,
		DeviceName:        deviceName,
		Games:             sanitized,
		AutoFarmCardDrops: autoFarm,
		FarmCheckInterval: interval,
	}
}
