package memengine

import (
	"slices"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

func matches(filter eventstore.Filter, stored storedEvent) bool {
	if stored.sequenceNumber <= filter.SequenceNumberHigherThan() {
		return false
	}

	return matchesTimeRange(filter, stored) && matchesItems(filter, stored)
}

func matchesTimeRange(filter eventstore.Filter, stored storedEvent) bool {
	occurredAt := stored.event.OccurredAt

	if from := filter.OccurredFrom(); !from.IsZero() && occurredAt.Before(from) {
		return false
	}

	if until := filter.OccurredUntil(); !until.IsZero() && occurredAt.After(until) {
		return false
	}

	return true
}

// matchesItems ORs the FilterItems, an empty Filter or an empty FilterItem matches everything.
func matchesItems(filter eventstore.Filter, stored storedEvent) bool {
	items := filter.Items()
	if len(items) == 0 {
		return true
	}

	for _, item := range items {
		if matchesItem(item, stored) {
			return true
		}
	}

	return false
}

func matchesItem(item eventstore.FilterItem, stored storedEvent) bool {
	if len(item.EventTypes()) > 0 && !slices.Contains(item.EventTypes(), stored.event.EventType) {
		return false
	}

	predicates := item.Predicates()
	if len(predicates) == 0 {
		return true
	}

	if item.AllPredicatesMustMatch() {
		for _, p := range predicates {
			if !matchesPredicate(p, stored.payload) {
				return false
			}
		}

		return true
	}

	for _, p := range predicates {
		if matchesPredicate(p, stored.payload) {
			return true
		}
	}

	return false
}

// matchesPredicate compares the top-level payload field with the predicate value.
// Only JSON strings match: P("Amount", "5") does not match {"Amount": 5}.
func matchesPredicate(p eventstore.FilterPredicate, payload map[string]any) bool {
	v, ok := payload[p.Key()].(string)

	return ok && v == p.Val()
}
