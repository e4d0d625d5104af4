package domain

import "time"

type Flight struct {
	ID               int64     `json:"id"`
	FlightNumber     string    `json:"flightNumber"`
	Airline          string    `json:"airline"`
	From             string    `json:"from"`
	To               string    `json:"to"`
	DepartureDate    time.Time `json:"departureDate"`
	DepartureTime    string    `json:"departureTime"`
	ArrivalDate      time.Time `json:"arrivalDate"`
	ArrivalTime      string    `json:"arrivalTime"`
	Duration         string    `json:"duration"`
	Price            string    `json:"price"`
	TotalSeats       int       `json:"totalSeats"`
	AvailableSeats   int       `json:"availableSeats"`
	Aircraft         string    `json:"aircraft"`
	ClassType        string    `json:"classType"`
	BaggageAllowance string    `json:"baggageAllowance"`
}

// FlightPatch is a partial flight update; nil fields are left unchanged.
type FlightPatch struct {
	FlightNumber     *string    `json:"flightNumber"`
	Airline          *string    `json:"airline"`
	From             *string    `json:"from"`
	To               *string    `json:"to"`
	DepartureDate    *time.Time `json:"departureDate"`
	DepartureTime    *string    `json:"departureTime"`
	ArrivalDate      *time.Time `json:"arrivalDate"`
	ArrivalTime      *string    `json:"arrivalTime"`
	Duration         *string    `json:"duration"`
	Price            *string    `json:"price"`
	TotalSeats       *int       `json:"totalSeats"`
	AvailableSeats   *int       `json:"availableSeats"`
	Aircraft         *string    `json:"aircraft"`
	ClassType        *string    `json:"classType"`
	BaggageAllowance *string    `json:"baggageAllowance"`
}

// Apply merges the patch into f, field by field.
func (p FlightPatch) Apply(f *Flight) {
	if p.FlightNumber != nil {
		f.FlightNumber = *p.FlightNumber
	}
	if p.Airline != nil {
		f.Airline = *p.Airline
	}
	if p.From != nil {
		f.From = *p.From
	}
	if p.To != nil {
		f.To = *p.To
	}
	if p.DepartureDate != nil {
		f.DepartureDate = *p.DepartureDate
	}
	if p.DepartureTime != nil {
		f.DepartureTime = *p.DepartureTime
	}
	if p.ArrivalDate != nil {
		f.ArrivalDate = *p.ArrivalDate
	}
	if p.ArrivalTime != nil {
		f.ArrivalTime = *p.ArrivalTime
	}
	if p.Duration != nil {
		f.Duration = *p.Duration
	}
	if p.Price != nil {
		f.Price = *p.Price
	}
	if p.TotalSeats != nil {
		f.TotalSeats = *p.TotalSeats
	}
	if p.AvailableSeats != nil {
		f.AvailableSeats = *p.AvailableSeats
	}
	if p.Aircraft != nil {
		f.Aircraft = *p.Aircraft
	}
	if p.ClassType != nil {
		f.ClassType = *p.ClassType
	}
	if p.BaggageAllowance != nil {
		f.BaggageAllowance = *p.BaggageAllowance
	}
}

// CheckSeats validates the seat accounting bounds on a flight record.
func (f *Flight) CheckSeats() error {
	if f.TotalSeats < 0 {
		return NewValidationError("totalSeats", "must not be negative")
	}
	if f.AvailableSeats < 0 || f.AvailableSeats > f.TotalSeats {
		return NewValidationError("availableSeats", "must be between 0 and totalSeats")
	}
	return nil
}
