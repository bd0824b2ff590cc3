package notification

import "context"

// Pusher envoie des notifications push aux appareils mobiles.
type Pusher interface {
	Push(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}
