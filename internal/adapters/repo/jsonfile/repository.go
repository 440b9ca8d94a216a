// Package jsonfile loads account credentials from a single JSON array file.
// The file is operator-owned: when it is missing a filled-in template is
// written and startup aborts; a malformed file loads zero accounts with a
// warning instead of crashing.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/steambooster/internal/domain"
	"github.com/bnema/steambooster/internal/ports"
)

const (
	accountsFileMode = 0o600
	accountsDirMode  = 0o700

	defaultInterval = 90
)

type accountRecord struct {
	Username                 string   `json:"username"`
	Password                 string   `json:"password"`
	Games                    []uint64 `json:"games"`
	DeviceName               string   `json:"deviceName"`
	AutoFarmCardDrops        *bool    `json:"autoFarmCardDrops"`
	FarmCheckIntervalSeconds int      `json:"farmCheckIntervalSeconds"`
}

type Repository struct {
	path string
	log  ports.Logger
}

var _ ports.AccountRepository = (*Repository)(nil)

func NewRepository(path string, log ports.Logger) *Repository {
	return &Repository{path: filepath.Clean(path), log: log}
}

func (r *Repository) Load(ctx context.Context) ([]domain.Credentials, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		if writeErr := r.writeTemplate(); writeErr != nil {
			return nil, fmt.Errorf("write accounts template: %w", writeErr)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountsFileCreated, r.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		r.log.Warning("accounts file %s is empty", r.path)
		return nil, nil
	}

	var records []accountRecord
	if err := json.Unmarshal(data, &records); err != nil {
		r.log.Warning("accounts file %s is malformed: %v", r.path, err)
		return nil, nil
	}

	accounts := make([]domain.Credentials, 0, len(records))
	for _, record := range records {
		if strings.TrimSpace(record.Username) == "" || strings.TrimSpace(record.Password) == "" {
			continue
		}

		autoFarm := true
		if record.AutoFarmCardDrops != nil {
			autoFarm = *record.AutoFarmCardDrops
		}

		interval := record.FarmCheckIntervalSeconds
		if interval == 0 {
			interval = defaultInterval
		}

		accounts = append(accounts, domain.NewCredentials(
			record.Username,
			record.Password,
			record.DeviceName,
			record.Games,
			autoFarm,
			interval,
		))
	}

	return accounts, nil
}

func (r *Repository) writeTemplate() error {
	sample := []accountRecord{{
		Username:                 "your_steam_username",
		Password:                 "your_steam_password",
		Games:                    []uint64{570},
		DeviceName:               "SteamBooster",
		AutoFarmCardDrops:        boolPtr(true),
		FarmCheckIntervalSeconds: 180,
	}}

	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, accountsDirMode); err != nil {
			return err
		}
	}

	return os.WriteFile(r.path, data, accountsFileMode)
}

func boolPtr(v bool) *bool { return &v }
