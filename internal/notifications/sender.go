package notifications

import (
	"context"

	"github.com/9ssi7/exponent"
)

// PushSender delivers Expo push messages. ExpoAdapter is the production
// implementation; tests substitute a recorder.
type PushSender interface {
	Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error)
}
