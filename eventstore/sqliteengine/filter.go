package sqliteengine

import (
	"strings"

	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

// buildWhereClause renders filter as a parameterized WHERE clause, "" for an unrestricted filter.
// Appends pass withSequence=false, the concurrency check always covers the whole stream.
func buildWhereClause(filter eventstore.Filter, withSequence bool) (string, []any) {
	var conditions []string
	var args []any

	var itemConditions []string
	for _, item := range filter.Items() {
		cond, itemArgs := itemCondition(item)
		if cond == "" {
			// an empty item matches any event, so the whole OR does
			itemConditions = nil
			args = args[:0]
			break
		}

		itemConditions = append(itemConditions, cond)
		args = append(args, itemArgs...)
	}

	if len(itemConditions) > 0 {
		conditions = append(conditions, "("+strings.Join(itemConditions, " OR ")+")")
	}

	if from := filter.OccurredFrom(); !from.IsZero() {
		conditions = append(conditions, "occurred_at >= ?")
		args = append(args, toMicros(from))
	}

	if until := filter.OccurredUntil(); !until.IsZero() {
		conditions = append(conditions, "occurred_at <= ?")
		args = append(args, toMicros(until))
	}

	if withSequence && filter.SequenceNumberHigherThan() > 0 {
		conditions = append(conditions, "sequence_number > ?")
		args = append(args, int64(filter.SequenceNumberHigherThan()))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func itemCondition(item eventstore.FilterItem) (string, []any) {
	var parts []string
	var args []any

	if eventTypes := item.EventTypes(); len(eventTypes) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(eventTypes)), ", ")
		parts = append(parts, "event_type IN ("+placeholders+")")

		for _, eventType := range eventTypes {
			args = append(args, eventType)
		}
	}

	if predicates := item.Predicates(); len(predicates) > 0 {
		predicateParts := make([]string, 0, len(predicates))

		for _, p := range predicates {
			predicateParts = append(predicateParts, "(json_type(payload, ?) = 'text' AND json_extract(payload, ?) = ?)")
			args = append(args, jsonPath(p.Key()), jsonPath(p.Key()), p.Val())
		}

		joiner := " OR "
		if item.AllPredicatesMustMatch() {
			joiner = " AND "
		}

		parts = append(parts, "("+strings.Join(predicateParts, joiner)+")")
	}

	if len(parts) == 0 {
		return "", nil
	}

	return "(" + strings.Join(parts, " AND ") + ")", args
}

// jsonPath addresses a top-level member, quoting it so that keys with dots stay one member.
func jsonPath(key string) string {
	return `$."` + strings.ReplaceAll(key, `"`, ``) + `"`
}
