// Package changeregistrationstatus implements the Change Registration Status use case.
//
// Allowed transitions:
//
//	PENDING   -> CONFIRMED (capacity is checked again), CANCELLED
//	CONFIRMED -> ATTENDED, CANCELLED
//	ATTENDED and CANCELLED are final.
package changeregistrationstatus
