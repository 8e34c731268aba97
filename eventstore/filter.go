package eventstore

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"
	"time"
)

type FilterEventTypeString = string
type FilterKeyString = string
type FilterValString = string

const reasonTimeBoundariesPresent = "cannot add sequence filtering: time boundaries already present"

/***** Filter *****/

// Filter selects a "dynamic event stream". Items are OR-ed, the time range or the sequence boundary
// (never both) restrict the whole stream.
type Filter struct {
	items                    []FilterItem
	occurredFrom             time.Time
	occurredUntil            time.Time
	sequenceNumberHigherThan MaxSequenceNumberUint
}

func (f Filter) Items() []FilterItem {
	return f.items
}

// OccurredFrom returns the inclusive lower time boundary, zero if not set.
func (f Filter) OccurredFrom() time.Time {
	return f.occurredFrom
}

// OccurredUntil returns the inclusive upper time boundary, zero if not set.
func (f Filter) OccurredUntil() time.Time {
	return f.occurredUntil
}

// SequenceNumberHigherThan returns the exclusive lower sequence boundary, 0 if not set.
func (f Filter) SequenceNumberHigherThan() MaxSequenceNumberUint {
	return f.sequenceNumberHigherThan
}

// Serialize renders the Filter into a canonical string. Sanitized input makes it stable for equal filters.
func (f Filter) Serialize() string {
	var sb strings.Builder

	for i, item := range f.items {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString("item:")
		sb.WriteString(strconv.Itoa(i))

		if len(item.eventTypes) > 0 {
			sb.WriteString("|event_types:")
			sb.WriteString(strings.Join(item.eventTypes, ","))
		}

		if len(item.predicates) > 0 {
			parts := make([]string, 0, len(item.predicates))
			for _, p := range item.predicates {
				parts = append(parts, p.key+"="+p.val)
			}

			sb.WriteString("|predicates:")
			sb.WriteString(strings.Join(parts, ","))
		}

		sb.WriteString("|predicate_logic:")
		if item.allPredicatesMustMatch {
			sb.WriteString("AND")
		} else {
			sb.WriteString("OR")
		}
	}

	if !f.occurredFrom.IsZero() {
		sb.WriteString("|occurred_from:")
		sb.WriteString(f.occurredFrom.UTC().Format(time.RFC3339Nano))
	}

	if !f.occurredUntil.IsZero() {
		sb.WriteString("|occurred_until:")
		sb.WriteString(f.occurredUntil.UTC().Format(time.RFC3339Nano))
	}

	if f.sequenceNumberHigherThan > 0 {
		sb.WriteString("|sequence_higher_than:")
		sb.WriteString(strconv.FormatUint(uint64(f.sequenceNumberHigherThan), 10))
	}

	return sb.String()
}

// Hash returns a hex encoded SHA-256 of Serialize. Snapshots are keyed by it.
func (f Filter) Hash() string {
	sum := sha256.Sum256([]byte(f.Serialize()))

	return hex.EncodeToString(sum[:])
}

// ReopenForSequenceFiltering allows adding a sequence boundary to an already finalized Filter.
//
// The result is either SequenceFilteringCapable or SequenceFilteringIncompatible (when time boundaries are present).
// An existing sequence boundary is replaced.
func (f Filter) ReopenForSequenceFiltering() ReopenedFilter {
	if !f.occurredFrom.IsZero() || !f.occurredUntil.IsZero() {
		return incompatibleFilter{reason: reasonTimeBoundariesPresent}
	}

	items := make([]FilterItem, len(f.items))
	copy(items, f.items)

	return reopenedFilterBuilder{filter: Filter{items: items}}
}

/***** FilterItem *****/

type FilterItem struct {
	eventTypes             []FilterEventTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EventTypes() []FilterEventTypeString {
	return fi.eventTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

/***** FilterPredicate *****/

type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

// P is a short constructor for a FilterPredicate, matching top-level payload field key with the string val.
func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

/***** FilterBuilder *****/

// FilterBuilder builds an engine-agnostic event filter. The staged interfaces only allow combinations
// that are useful for event-sourced workflows:
//
//   - empty filter
//   - (eventType OR eventType...)
//   - (predicate OR predicate...) or (predicate AND predicate...)
//   - ((eventType OR eventType...) AND (predicate OR|AND predicate...))
//   - multiple of the above OR-ed -> multiple FilterItem(s)
//
// Each combination can be restricted by an occurred_at range OR by a sequence number boundary.
type FilterBuilder interface {
	// Matching starts a new FilterItem.
	Matching() EmptyFilterItemBuilder

	// MatchingAnyEvent directly creates an empty Filter.
	MatchingAnyEvent() Filter

	TimeBoundaryBuilder
	SequenceBoundaryBuilder
}

type EmptyFilterItemBuilder interface {
	// AnyEventTypeOf adds event types, removing empty ones and duplicates and sorting them.
	AnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterItemBuilderLackingPredicates

	// AnyPredicateOf adds predicates of which ANY must match, removing partial ones and duplicates and sorting them.
	AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes

	// AllPredicatesOf adds predicates of which ALL must match, removing partial ones and duplicates and sorting them.
	AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes
}

type FilterItemBuilderLackingPredicates interface {
	AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder
	AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder
	CompletedFilterItemBuilder
}

type FilterItemBuilderLackingEventTypes interface {
	AndAnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) CompletedFilterItemBuilder
	CompletedFilterItemBuilder
}

type CompletedFilterItemBuilder interface {
	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	TimeBoundaryBuilder
	SequenceBoundaryBuilder
	FinalizableFilterBuilder
}

type TimeBoundaryBuilder interface {
	// OccurredFrom sets the inclusive lower occurred_at boundary.
	OccurredFrom(from time.Time) OccurredFromBuilder

	// OccurredUntil sets the inclusive upper occurred_at boundary.
	OccurredUntil(until time.Time) FinalizableFilterBuilder
}

type OccurredFromBuilder interface {
	AndOccurredUntil(until time.Time) FinalizableFilterBuilder
	FinalizableFilterBuilder
}

type SequenceBoundaryBuilder interface {
	// WithSequenceNumberHigherThan restricts the Filter to events with a sequence number > sequenceNumber.
	WithSequenceNumberHigherThan(sequenceNumber MaxSequenceNumberUint) FinalizableFilterBuilder
}

type FinalizableFilterBuilder interface {
	// Finalize returns the Filter.
	Finalize() Filter
}

// ReopenedFilter is returned by Filter.ReopenForSequenceFiltering.
type ReopenedFilter interface {
	isReopenedFilter()
}

// SequenceFilteringCapable is a reopened Filter that accepts a sequence boundary.
type SequenceFilteringCapable interface {
	ReopenedFilter
	SequenceBoundaryBuilder
}

// SequenceFilteringIncompatible is a reopened Filter that can't take a sequence boundary.
type SequenceFilteringIncompatible interface {
	ReopenedFilter
	CannotAddSequenceFiltering() string
}

// filterBuilder implements all the builder stages, it is passed by value so each stage works on a copy.
type filterBuilder struct {
	filter            Filter
	currentFilterItem FilterItem
}

// BuildEventFilter creates a FilterBuilder which must eventually be finalized with Finalize() or MatchingAnyEvent().
func BuildEventFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) Matching() EmptyFilterItemBuilder {
	fb.currentFilterItem = FilterItem{}

	return fb
}

func (fb filterBuilder) MatchingAnyEvent() Filter {
	return fb.filter
}

func (fb filterBuilder) AnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) FilterItemBuilderLackingPredicates {

	fb.currentFilterItem.eventTypes = sanitizeEventTypes(
		append(slices.Clone(fb.currentFilterItem.eventTypes), append([]FilterEventTypeString{eventType}, eventTypes...)...),
	)

	return fb
}

func (fb filterBuilder) AndAnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) CompletedFilterItemBuilder {

	return fb.AnyEventTypeOf(eventType, eventTypes...)
}

func (fb filterBuilder) AnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingEventTypes {

	fb.currentFilterItem.predicates = sanitizePredicates(
		append(slices.Clone(fb.currentFilterItem.predicates), append([]FilterPredicate{predicate}, predicates...)...),
	)

	return fb
}

func (fb filterBuilder) AndAnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	return fb.AnyPredicateOf(predicate, predicates...)
}

func (fb filterBuilder) AllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingEventTypes {

	fb.currentFilterItem.allPredicatesMustMatch = true

	return fb.AnyPredicateOf(predicate, predicates...)
}

func (fb filterBuilder) AndAllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	return fb.AllPredicatesOf(predicate, predicates...)
}

func (fb filterBuilder) OrMatching() EmptyFilterItemBuilder {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.currentFilterItem)
	fb.currentFilterItem = FilterItem{}

	return fb
}

func (fb filterBuilder) OccurredFrom(from time.Time) OccurredFromBuilder {
	fb.filter.occurredFrom = from

	return fb
}

func (fb filterBuilder) OccurredUntil(until time.Time) FinalizableFilterBuilder {
	fb.filter.occurredUntil = until

	return fb
}

func (fb filterBuilder) AndOccurredUntil(until time.Time) FinalizableFilterBuilder {
	return fb.OccurredUntil(until)
}

func (fb filterBuilder) WithSequenceNumberHigherThan(sequenceNumber MaxSequenceNumberUint) FinalizableFilterBuilder {
	fb.filter.sequenceNumberHigherThan = sequenceNumber

	return fb
}

// Finalize closes the current FilterItem. A builder that never started one yields a single empty FilterItem,
// which matches any event.
func (fb filterBuilder) Finalize() Filter {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.currentFilterItem)

	return fb.filter
}

/***** reopened filters *****/

type reopenedFilterBuilder struct {
	filter Filter
}

func (reopenedFilterBuilder) isReopenedFilter() {}

func (rb reopenedFilterBuilder) WithSequenceNumberHigherThan(sequenceNumber MaxSequenceNumberUint) FinalizableFilterBuilder {
	rb.filter.sequenceNumberHigherThan = sequenceNumber

	return rb
}

func (rb reopenedFilterBuilder) Finalize() Filter {
	return rb.filter
}

type incompatibleFilter struct {
	reason string
}

func (incompatibleFilter) isReopenedFilter() {}

func (f incompatibleFilter) CannotAddSequenceFiltering() string {
	return f.reason
}

/***** sanitizing *****/

func sanitizeEventTypes(eventTypes []FilterEventTypeString) []FilterEventTypeString {
	eventTypes = slices.DeleteFunc(eventTypes, func(e FilterEventTypeString) bool { return e == "" })
	slices.Sort(eventTypes)
	eventTypes = slices.Compact(eventTypes)

	return slices.Clip(eventTypes)
}

func sanitizePredicates(predicates []FilterPredicate) []FilterPredicate {
	predicates = slices.DeleteFunc(predicates, func(p FilterPredicate) bool { return p.key == "" || p.val == "" })
	slices.SortFunc(predicates, func(a, b FilterPredicate) int {
		if c := strings.Compare(a.key, b.key); c != 0 {
			return c
		}

		return strings.Compare(a.val, b.val)
	})
	predicates = slices.Compact(predicates)

	return slices.Clip(predicates)
}
