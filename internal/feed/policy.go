// Package feed keeps role-specific lists of live orders consistent with the
// remote API by combining a snapshot fetch, the shared push channel and an
// optional fallback poll.
package feed

import "petiscaria/internal/domain"

// Policy names a feed and the statuses it holds. An order whose status falls
// outside Tracked is dropped from the feed.
type Policy struct {
	Name    string
	Tracked domain.StatusSet
}

var (
	KitchenPolicy = Policy{
		Name:    "kitchen",
		Tracked: domain.StatusSet{domain.StatusPending, domain.StatusPreparing},
	}
	WaiterPolicy = Policy{
		Name:    "waiter",
		Tracked: domain.StatusSet{domain.StatusReady},
	}
)

func (p Policy) Tracks(s domain.Status) bool {
	return p.Tracked.Contains(s)
}
