package events

import (
	"shopsmart/domain"
)

// Aggregate collapses the raw interaction feed into one strength record per
// (user, product) pair: the sum of event-type weights over all qualifying
// events, so repeated views combine additively. Recency decay is
// window-specific and belongs to the trending scorer, not here.
//
// Output order is first appearance in the feed, which keeps downstream
// computation deterministic for a given input.
func Aggregate(events []domain.ProductEvent) []domain.Interaction {
	type pairKey struct {
		userID    uint64
		productID uint64
	}

	weights := make(map[pairKey]float64, len(events))
	order := make([]pairKey, 0, len(events))

	for _, ev := range events {
		k := pairKey{userID: ev.UserID, productID: ev.ProductID}
		if _, ok := weights[k]; !ok {
			order = append(order, k)
		}
		weights[k] += domain.EventWeight(ev.EventType)
	}

	out := make([]domain.Interaction, 0, len(order))
	for _, k := range order {
		out = append(out, domain.Interaction{
			UserID:    k.userID,
			ProductID: k.productID,
			Weight:    weights[k],
		})
	}

	return out
}
