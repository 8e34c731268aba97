package totalrevenue

import (
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

// Revenue represents the query result.
type Revenue struct {
	Total                 domain.Money
	BillableRegistrations int
	SequenceNumber        uint
}

// GetSequenceNumber returns the sequence number of the last event in the event history that was used to build the projection.
func (r Revenue) GetSequenceNumber() uint {
	return r.SequenceNumber
}
