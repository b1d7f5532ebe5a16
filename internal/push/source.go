package push

import "context"

// Subscription is one open connection to the order stream. Events is closed
// when the connection ends for any reason; Close is safe to call repeatedly.
type Subscription interface {
	Events() <-chan Event
	Close() error
}

// Source opens subscriptions. The context bounds connection setup only; a
// subscription lives until it is closed or the server drops it.
type Source interface {
	Subscribe(ctx context.Context) (Subscription, error)
}

type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}
