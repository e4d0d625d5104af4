package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID               int64         `json:"id"`
	UserID           int64         `json:"userId"`
	FlightID         int64         `json:"flightId"`
	BookingReference string        `json:"bookingReference"`
	Status           BookingStatus `json:"status"`
	TotalPrice       string        `json:"totalPrice"`
	SeatsBooked      int           `json:"seatsBooked"`
	ContactEmail     string        `json:"contactEmail"`
	ContactPhone     string        `json:"contactPhone"`
	CreatedAt        time.Time     `json:"createdAt"`
}

type Passenger struct {
	ID             int64  `json:"id"`
	BookingID      int64  `json:"bookingId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DateOfBirth    string `json:"dateOfBirth"`
	PassportNumber string `json:"passportNumber"`
}
