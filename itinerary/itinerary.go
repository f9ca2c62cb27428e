// Package itinerary turns raw Journey Planner trips into a simplified
// walk/ride itinerary suitable for display.
package itinerary

import (
	"fmt"
	"strings"
	"time"

	"github.com/slkit/slkit/transit"
)

// Leg is one simplified step of an itinerary.
type Leg interface {
	// From and To are the endpoints of the step.
	From() transit.StopFinderLocation
	To() transit.StopFinderLocation
	// Duration is how long the step takes.
	Duration() time.Duration
	// String renders the step for humans.
	String() string
}

// Walk is a footpath between two locations.
type Walk struct {
	Origin      transit.StopFinderLocation
	Destination transit.StopFinderLocation
	Took        time.Duration
	Distance    int // meters, 0 when unknown
}

func (w Walk) From() transit.StopFinderLocation { return w.Origin }
func (w Walk) To() transit.StopFinderLocation   { return w.Destination }
func (w Walk) Duration() time.Duration          { return w.Took }

func (w Walk) String() string {
	return legDisplay("Walk", w.Origin, w.Destination, w.Distance, w.Took, "")
}

// Ride is a trip on a line between two stops.
type Ride struct {
	Origin      transit.StopFinderLocation
	Destination transit.StopFinderLocation
	Took        time.Duration
	On          string // line designation, e.g. "17" or "Tunnelbana 17"
	Stops       int    // number of stops passed, endpoints included
}

func (r Ride) From() transit.StopFinderLocation { return r.Origin }
func (r Ride) To() transit.StopFinderLocation   { return r.Destination }
func (r Ride) Duration() time.Duration          { return r.Took }

func (r Ride) String() string {
	return legDisplay("Ride", r.Origin, r.Destination, 0, r.Took, r.On)
}

// Itinerary is the simplified view of one journey.
type Itinerary struct {
	// Duration is the timetable duration of the whole trip.
	Duration time.Duration
	// RealtimeDuration is the realtime duration when the trip is
	// realtime-controlled, otherwise equal to Duration.
	RealtimeDuration time.Duration
	Interchanges     int
	Legs             []Leg
}

// FromJourney flattens a journey into walks and rides.
func FromJourney(j transit.Journey) Itinerary {
	it := Itinerary{
		Duration:         time.Duration(j.TripDuration) * time.Second,
		RealtimeDuration: time.Duration(j.TripRtDuration) * time.Second,
		Interchanges:     j.Interchanges,
	}

	for _, leg := range j.Legs {
		took := time.Duration(leg.Duration) * time.Second
		if onFoot(leg.Transportation.Product.Class) {
			it.Legs = append(it.Legs, Walk{
				Origin:      leg.Origin,
				Destination: leg.Destination,
				Took:        took,
				Distance:    leg.Distance,
			})
			continue
		}
		it.Legs = append(it.Legs, Ride{
			Origin:      leg.Origin,
			Destination: leg.Destination,
			Took:        took,
			On:          rideName(leg.Transportation),
			Stops:       len(leg.StopSequence),
		})
	}
	return it
}

func onFoot(productClass int) bool {
	return productClass == transit.ProductFootPath || productClass == transit.ProductFootPathLocal
}

// rideName picks the most specific available name for the vehicle: the line
// number, else product name plus short name.
func rideName(t transit.Transportation) string {
	if t.Number != "" {
		return t.Number
	}
	if t.DisassembledName != "" {
		return strings.TrimSpace(t.Product.Name + " " + t.DisassembledName)
	}
	return ""
}

// PrettyDuration renders a duration the way a departure board would:
// "7 min", "~3 min" when seconds were rounded, "1h12m0s" for long trips.
func PrettyDuration(d time.Duration) string {
	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return d.String()
	}

	prefix := ""
	if seconds > 0 {
		prefix = "~"
	}
	if minutes == 0 {
		return prefix + "1 min"
	}
	return fmt.Sprintf("%s%d min", prefix, minutes)
}

// LocationDisplay renders a stop finder result for humans, e.g.
// "Odenplan stop" or "metro platform 3 on Odenplan".
func LocationDisplay(loc transit.StopFinderLocation, withParent bool) string {
	switch loc.Type {
	case transit.LocationStop:
		return loc.DisassembledName + " stop"
	case transit.LocationPlatform:
		return platformDisplay(loc, withParent)
	default:
		return loc.Name
	}
}

func platformDisplay(loc transit.StopFinderLocation, withParent bool) string {
	suffix := "platform"
	if len(loc.ProductClasses) == 1 {
		switch loc.ProductClasses[0] {
		case transit.ProductMetro:
			suffix = "metro platform"
		case transit.ProductTrain:
			suffix = "train platform"
		case transit.ProductBus:
			suffix = "bus stop"
		}
	}

	if withParent && loc.Parent != nil {
		parentName := loc.Parent.DisassembledName
		if parentName == "" {
			parentName = loc.Parent.Name
		}
		if parentName != loc.DisassembledName {
			return fmt.Sprintf("%s %s on %s", suffix, loc.DisassembledName, parentName)
		}
	}
	return suffix + " " + loc.DisassembledName
}

func legDisplay(action string, from, to transit.StopFinderLocation, distance int, took time.Duration, on string) string {
	// changing platforms inside the same station is its own thing
	if from.Type == transit.LocationPlatform && to.Type == transit.LocationPlatform &&
		from.Parent != nil && to.Parent != nil && from.Parent.ID == to.Parent.ID {
		action = "Change platform"
	}
	if distance > 0 {
		action += fmt.Sprintf(" %d m", distance)
	}
	if on != "" {
		action += " on " + on
	}
	return fmt.Sprintf("%s from %s to %s (%s)",
		action, LocationDisplay(from, false), LocationDisplay(to, true), PrettyDuration(took))
}
