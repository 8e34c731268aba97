package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

var (
	ErrInvalidCatalog = errors.New("invalid event catalog")
	ErrDuplicateEntry = errors.New("duplicate catalog entry")
	ErrInvalidVenue   = errors.New("venue must be an object with name and address")
)

// namespace seeds the name based event IDs.
var namespace = uuid.MustParse("6f1c2a9e-4b7d-4c8e-9a51-0d3e8b2f7c64")

// Entry is one event of a catalog.
type Entry struct {
	Key   string
	Event domain.Event
}

// Catalog holds the events of one file in declaration order.
type Catalog struct {
	Entries []Entry
}

// Events returns the domain events of all entries.
func (c Catalog) Events() []domain.Event {
	events := make([]domain.Event, 0, len(c.Entries))
	for _, entry := range c.Entries {
		events = append(events, entry.Event)
	}

	return events
}

type venuesFile struct {
	Venues []venueBlock `hcl:"venue,block"`
	Remain hcl.Body     `hcl:",remain"`
}

type venueBlock struct {
	Key     string `hcl:"key,label"`
	Name    string `hcl:"name"`
	Address string `hcl:"address"`
}

type eventsFile struct {
	Currency string       `hcl:"currency,optional"`
	Timezone string       `hcl:"timezone,optional"`
	Events   []eventBlock `hcl:"event,block"`
}

type eventBlock struct {
	Kind            string    `hcl:"kind,label"`
	Key             string    `hcl:"key,label"`
	Name            string    `hcl:"name"`
	Start           string    `hcl:"start"`
	End             string    `hcl:"end"`
	Venue           cty.Value `hcl:"venue"`
	MaxAttendees    int       `hcl:"max_attendees"`
	Fee             string    `hcl:"fee"`
	Currency        string    `hcl:"currency,optional"`
	Artist          string    `hcl:"artist,optional"`
	Genre           string    `hcl:"genre,optional"`
	Speakers        []string  `hcl:"speakers,optional"`
	Topics          []string  `hcl:"topics,optional"`
	Theme           string    `hcl:"theme,optional"`
	Exhibitors      []string  `hcl:"exhibitors,optional"`
	Instructor      string    `hcl:"instructor,optional"`
	SkillLevel      string    `hcl:"skill_level,optional"`
	MaxParticipants int       `hcl:"max_participants,optional"`
}

// Load parses the catalog file at path.
func Load(path string) (Catalog, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Catalog{}, errors.Join(ErrInvalidCatalog, fmt.Errorf("failed to parse %s: %w", path, diags))
	}

	return decode(file, path)
}

// Parse parses a catalog held in memory, filename only shows up in error messages.
func Parse(src []byte, filename string) (Catalog, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Catalog{}, errors.Join(ErrInvalidCatalog, fmt.Errorf("failed to parse %s: %w", filename, diags))
	}

	return decode(file, filename)
}

// decode resolves the venues first, the event blocks are evaluated with them in scope.
func decode(file *hcl.File, filename string) (Catalog, error) {
	var venues venuesFile
	if diags := gohcl.DecodeBody(file.Body, nil, &venues); diags.HasErrors() {
		return Catalog{}, errors.Join(ErrInvalidCatalog, fmt.Errorf("failed to decode venues of %s: %w", filename, diags))
	}

	evalCtx, err := evalContextFor(venues.Venues)
	if err != nil {
		return Catalog{}, errors.Join(ErrInvalidCatalog, err)
	}

	var events eventsFile
	if diags := gohcl.DecodeBody(venues.Remain, evalCtx, &events); diags.HasErrors() {
		return Catalog{}, errors.Join(ErrInvalidCatalog, fmt.Errorf("failed to decode events of %s: %w", filename, diags))
	}

	location := time.UTC
	if events.Timezone != "" {
		if location, err = time.LoadLocation(events.Timezone); err != nil {
			return Catalog{}, errors.Join(ErrInvalidCatalog, err)
		}
	}

	defaultCurrency := domain.DefaultCurrency.String()
	if events.Currency != "" {
		defaultCurrency = events.Currency
	}

	catalog := Catalog{Entries: make([]Entry, 0, len(events.Events))}
	seen := make(map[string]struct{}, len(events.Events))

	for _, block := range events.Events {
		key := strings.ToLower(block.Kind) + "/" + block.Key
		if _, ok := seen[key]; ok {
			return Catalog{}, errors.Join(ErrInvalidCatalog, ErrDuplicateEntry, fmt.Errorf("event %q", key))
		}
		seen[key] = struct{}{}

		event, err := block.toDomain(key, location, defaultCurrency)
		if err != nil {
			return Catalog{}, errors.Join(ErrInvalidCatalog, fmt.Errorf("event %q: %w", key, err))
		}

		catalog.Entries = append(catalog.Entries, Entry{Key: key, Event: event})
	}

	return catalog, nil
}

func evalContextFor(blocks []venueBlock) (*hcl.EvalContext, error) {
	venues := make(map[string]cty.Value, len(blocks))
	for _, block := range blocks {
		if _, ok := venues[block.Key]; ok {
			return nil, errors.Join(ErrDuplicateEntry, fmt.Errorf("venue %q", block.Key))
		}

		venues[block.Key] = cty.ObjectVal(map[string]cty.Value{
			"name":    cty.StringVal(block.Name),
			"address": cty.StringVal(block.Address),
		})
	}

	// an empty map keeps venue.x references failing with a proper diagnostic
	venueValue := cty.EmptyObjectVal
	if len(venues) > 0 {
		venueValue = cty.ObjectVal(venues)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"venue": venueValue,
		},
	}, nil
}

func (b eventBlock) toDomain(key string, location *time.Location, defaultCurrency string) (domain.Event, error) {
	kind, err := domain.ParseEventKind(b.Kind)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(domain.DateTimeLayout, b.Start, location)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	end, err := time.ParseInLocation(domain.DateTimeLayout, b.End, location)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	venue, err := locationFrom(b.Venue)
	if err != nil {
		return nil, err
	}

	currencyCode := defaultCurrency
	if b.Currency != "" {
		currencyCode = b.Currency
	}

	fee, err := domain.ParseMoney(b.Fee, currencyCode)
	if err != nil {
		return nil, err
	}

	id, err := domain.EventIDFromUUID(uuid.NewSHA1(namespace, []byte(key)))
	if err != nil {
		return nil, err
	}

	details := domain.EventDetails{
		ID:           id,
		Name:         b.Name,
		StartTime:    start,
		EndTime:      end,
		Location:     venue,
		MaxAttendees: b.MaxAttendees,
	}

	switch kind {
	case domain.KindConcert:
		return domain.NewConcert(details, b.Artist, b.Genre, fee)
	case domain.KindConference:
		return domain.NewConference(details, b.Speakers, b.Topics, fee)
	case domain.KindExhibition:
		return domain.NewExhibition(details, b.Theme, b.Exhibitors, fee)
	default:
		return domain.NewWorkshop(details, b.Instructor, b.SkillLevel, fee, b.MaxParticipants)
	}
}

func locationFrom(v cty.Value) (domain.Location, error) {
	if v.IsNull() || !v.IsKnown() || !v.Type().IsObjectType() ||
		!v.Type().HasAttribute("name") || !v.Type().HasAttribute("address") {

		return domain.Location{}, ErrInvalidVenue
	}

	name, address := v.GetAttr("name"), v.GetAttr("address")
	if name.Type() != cty.String || address.Type() != cty.String || name.IsNull() || address.IsNull() {
		return domain.Location{}, ErrInvalidVenue
	}

	return domain.NewLocation(name.AsString(), address.AsString())
}
