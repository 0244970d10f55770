package client

import (
	"context"

	"github.com/AliKaner/mc-case/internal/client/models"
)

// Client is the remote users API.
type Client interface {
	Close() error
	FetchUsers(ctx context.Context) ([]models.Record, error)
	FetchUser(ctx context.Context, id models.ID) (models.Record, error)
	CreateUser(ctx context.Context, rec models.Record) (models.Record, error)
	PatchUser(ctx context.Context, id models.ID, patch models.Patch) (models.Record, error)
	DeleteUser(ctx context.Context, id models.ID) error
}
