// Package catalog reads event catalogs written in HCL and schedules the events they describe.
//
// A catalog declares venues once and refers to them from the event blocks:
//
//	currency = "EUR"
//
//	venue "riverside" {
//	  name    = "Riverside Hall"
//	  address = "12 Quay Road"
//	}
//
//	event "concert" "summer-jam" {
//	  name          = "Summer Jam"
//	  start         = "2025-07-01 19:00"
//	  end           = "2025-07-01 23:00"
//	  venue         = venue.riverside
//	  max_attendees = 500
//	  fee           = 25.50
//	  artist        = "The Gophers"
//	  genre         = "Rock"
//	}
//
// The event ID is derived from the kind and key labels, importing the same catalog twice
// schedules nothing new.
package catalog
