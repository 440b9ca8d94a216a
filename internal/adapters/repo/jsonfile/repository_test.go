package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/steambooster/internal/domain"
)

type memoryLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (l *memoryLogger) record(format string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *memoryLogger) Debug(string, ...any)               {}
func (l *memoryLogger) Info(string, ...any)                {}
func (l *memoryLogger) Success(string, ...any)             {}
func (l *memoryLogger) Warning(format string, args ...any) { l.record(format, args) }
func (l *memoryLogger) Error(string, ...any)               {}

func TestLoadMissingFileWritesTemplateAndAborts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accounts.json")
	repo := NewRepository(path, &memoryLogger{})

	accounts, err := repo.Load(context.Background())

	require.ErrorIs(t, err, domain.ErrAccountsFileCreated)
	assert.Nil(t, accounts)

	written, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Contains(t, string(written), "your_steam_username")
	assert.Contains(t, string(written), "\"farmCheckIntervalSeconds\": 180")
}

func TestLoadEmptyFileWarnsAndReturnsZeroAccounts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	log := &memoryLogger{}
	accounts, err := NewRepository(path, log).Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, accounts)
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "empty")
}

func TestLoadMalformedFileWarnsAndReturnsZeroAccounts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"`), 0o600))

	log := &memoryLogger{}
	accounts, err := NewRepository(path, log).Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, accounts)
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "malformed")
}

func TestLoadParsesAndSanitizesRecords(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accounts.json")
	content := `[
		{"username": "alice", "password": "pw", "games": [570, 730], "deviceName": "rig", "autoFarmCardDrops": false, "farmCheckIntervalSeconds": 5},
		{"username": "bob", "password": "pw2"},
		{"username": "", "password": "orphan"},
		{"username": "nopass", "password": " "}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	accounts, err := NewRepository(path, &memoryLogger{}).Load(context.Background())

	require.NoError(t, err)
	require.Len(t, accounts, 2)

	alice := accounts[0]
	assert.Equal(t, "alice", alice.Username)
	assert.Equal(t, []uint32{570, 730}, alice.Games)
	assert.Equal(t, "rig", alice.DeviceName)
	assert.False(t, alice.AutoFarmCardDrops)
	// Five seconds clamps up to the fifteen-second floor.
	assert.Equal(t, 15*time.Second, alice.FarmCheckInterval)

	bob := accounts[1]
	assert.Equal(t, "SteamBooster", bob.DeviceName)
	assert.True(t, bob.AutoFarmCardDrops)
	assert.Equal(t, 90*time.Second, bob.FarmCheckInterval)
}

func TestLoadHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRepository(filepath.Join(t.TempDir(), "accounts.json"), &memoryLogger{}).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
