package domain

import (
	"math"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamPlanLookup = "stream:plan:lookup"
	StreamPlanDone   = "stream:plan:done"
)

// PlanLookupEvent - incoming request to resolve a plan for a point
type PlanLookupEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	Address   string    `json:"address,omitempty"`
}

// HasCoordinates reports whether both coordinates are present and finite
func (e *PlanLookupEvent) HasCoordinates() bool {
	if e.Lat == nil || e.Lng == nil {
		return false
	}
	return !math.IsNaN(*e.Lat) && !math.IsNaN(*e.Lng) &&
		!math.IsInf(*e.Lat, 0) && !math.IsInf(*e.Lng, 0)
}

// Point - the event coordinates; call only after HasCoordinates
func (e *PlanLookupEvent) Point() GeoPoint {
	return GeoPoint{Lat: *e.Lat, Lng: *e.Lng}
}

// PlanLookupDoneEvent - lookup result published back to the stream
type PlanLookupDoneEvent struct {
	RequestID uuid.UUID   `json:"request_id"`
	Lookup    *PlanLookup `json:"lookup,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// StreamMessage - message read from a Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
