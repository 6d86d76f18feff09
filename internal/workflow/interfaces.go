package workflow

import "context"

// Nicknamer is the subset of the community client the workflow drives.
type Nicknamer interface {
	SetNickname(ctx context.Context, steamID, nickname string) error
	ClearNickname(ctx context.Context, steamID string) error
}
