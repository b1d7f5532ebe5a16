package feed

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petiscaria/internal/domain"
)

func TestMerge_PrependsUnknownOrder(t *testing.T) {
	list := []domain.Order{order(1, domain.StatusPending)}

	got, err := Merge(list, statusUpdate(t, 2, domain.StatusPreparing), KitchenPolicy.Tracked)

	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, ids(got))
	assert.Equal(t, domain.StatusPreparing, got[0].Status)
}

func TestMerge_ReplacesInPlace(t *testing.T) {
	list := []domain.Order{
		order(3, domain.StatusPending),
		{ID: 1, CustomerName: "Ana", Table: "4", Status: domain.StatusPending},
		order(2, domain.StatusPending),
	}

	got, err := Merge(list, mustUpdate(t, `{"id": 1, "status": "preparing", "customerName": "Ana Maria"}`), KitchenPolicy.Tracked)

	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, ids(got))
	assert.Equal(t, "Ana Maria", got[1].CustomerName)
	assert.Equal(t, domain.StatusPreparing, got[1].Status)
	// fields absent from the update are kept
	assert.Equal(t, domain.TableRef("4"), got[1].Table)
}

func TestMerge_RemovesUntrackedStatus(t *testing.T) {
	list := []domain.Order{order(1, domain.StatusPending), order(2, domain.StatusPreparing)}

	for _, status := range []domain.Status{domain.StatusReady, domain.StatusDelivered, domain.StatusPaid} {
		got, err := Merge(list, statusUpdate(t, 1, status), KitchenPolicy.Tracked)
		require.NoError(t, err)
		assert.Equal(t, []int{2}, ids(got), status)
	}
}

func TestMerge_UntrackedUnknownOrderIsIgnored(t *testing.T) {
	list := []domain.Order{order(1, domain.StatusReady)}

	got, err := Merge(list, statusUpdate(t, 9, domain.StatusDelivered), WaiterPolicy.Tracked)

	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(got))
}

func TestMerge_LeavesInputUntouched(t *testing.T) {
	list := []domain.Order{order(1, domain.StatusPending), order(2, domain.StatusPending)}

	_, err := Merge(list, statusUpdate(t, 1, domain.StatusPreparing), KitchenPolicy.Tracked)
	require.NoError(t, err)
	_, err = Merge(list, statusUpdate(t, 2, domain.StatusReady), KitchenPolicy.Tracked)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, ids(list))
	assert.Equal(t, domain.StatusPending, list[0].Status)
}

func TestMerge_NeverDuplicatesAndExcludesUntracked(t *testing.T) {
	statuses := []domain.Status{
		domain.StatusPending, domain.StatusPreparing, domain.StatusReady,
		domain.StatusDelivered, domain.StatusPaid,
	}
	rng := rand.New(rand.NewPCG(7, 11))

	for _, policy := range []Policy{KitchenPolicy, WaiterPolicy} {
		var list []domain.Order
		last := map[int]domain.Status{}

		for i := 0; i < 2000; i++ {
			id := 1 + rng.IntN(12)
			status := statuses[rng.IntN(len(statuses))]

			var err error
			list, err = Merge(list, statusUpdate(t, id, status), policy.Tracked)
			require.NoError(t, err)
			last[id] = status

			seen := map[int]bool{}
			for _, o := range list {
				require.False(t, seen[o.ID], "order %d held twice after step %d", o.ID, i)
				seen[o.ID] = true
				require.True(t, policy.Tracks(o.Status), "order %d held with untracked status %s", o.ID, o.Status)
			}
		}

		// membership depends only on each order's latest status
		for id, status := range last {
			held := false
			for _, o := range list {
				if o.ID == id {
					held = true
					assert.Equal(t, status, o.Status)
				}
			}
			assert.Equal(t, policy.Tracks(status), held, "%s feed, order %d with status %s", policy.Name, id, status)
		}
	}
}

func TestNormalizeSnapshot_FiltersAndDedupes(t *testing.T) {
	fetched := []domain.Order{
		order(1, domain.StatusPending),
		order(2, domain.StatusReady),
		{ID: 1, CustomerName: "duplicate", Status: domain.StatusPreparing},
		order(3, domain.StatusPreparing),
	}

	got := normalizeSnapshot(fetched, KitchenPolicy.Tracked)

	assert.Equal(t, []int{1, 3}, ids(got))
	assert.Equal(t, "cliente 1", got[0].CustomerName)
}
