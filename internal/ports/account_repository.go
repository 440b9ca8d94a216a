package ports

import (
	"context"

	"github.com/bnema/steambooster/internal/domain"
)

type AccountRepository interface {
	Load(ctx context.Context) ([]domain.Credentials, error)
}
