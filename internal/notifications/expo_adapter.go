package notifications

import (
	"context"

	"github.com/9ssi7/exponent"
)

type ExpoAdapter struct {
	client *exponent.Client
}

// NewExpo builds a client for the Expo push service. An empty access token
// is accepted; Expo only requires one when enhanced security is enabled.
func NewExpo(accessToken string) *ExpoAdapter {
	if accessToken == "" {
		return &ExpoAdapter{client: exponent.NewClient()}
	}
	return &ExpoAdapter{client: exponent.NewClient(exponent.WithAccessToken(accessToken))}
}

func (a *ExpoAdapter) Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error) {
	if len(msgs) == 0 {
		return nil, nil
	}
	return a.client.Publish(ctx, msgs)
}
