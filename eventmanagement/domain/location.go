package domain

import "strings"

// Location is the venue of an event.
type Location struct {
	Name    string
	Address string
}

func NewLocation(name, address string) (Location, error) {
	if strings.TrimSpace(name) == "" {
		return Location{}, ErrBlankLocationName
	}

	if strings.TrimSpace(address) == "" {
		return Location{}, ErrBlankAddress
	}

	return Location{Name: name, Address: address}, nil
}

func (l Location) IsZero() bool {
	return l == Location{}
}
