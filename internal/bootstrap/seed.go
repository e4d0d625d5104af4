package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"skyjourney/internal/domain"
	"skyjourney/internal/repository"
)

const (
	seedAdminUsername = "admin"
	seedAdminPassword = "admin123"
)

// Seed ensures the default admin account and two sample flights exist. It is
// idempotent so a persistent backend is seeded once.
func Seed(ctx context.Context, users repository.UserRepository, flights repository.FlightRepository) error {
	if _, err := users.GetByUsername(ctx, seedAdminUsername); errors.Is(err, domain.ErrNotFound) {
		hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := &domain.User{
			Username: seedAdminUsername,
			Password: string(hash),
			Email:    "admin@skyjourney.com",
			Role:     domain.RoleAdmin,
		}
		if err := users.Create(ctx, admin); err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
	} else if err != nil {
		return err
	}

	existing, err := flights.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, f := range sampleFlights() {
		flight := f
		if err := flights.Create(ctx, &flight); err != nil {
			return fmt.Errorf("seed flight %s: %w", flight.FlightNumber, err)
		}
	}
	return nil
}

func sampleFlights() []domain.Flight {
	return []domain.Flight{
		{
			FlightNumber:     "AA2734",
			Airline:          "American Airlines",
			From:             "JFK, New York",
			To:               "LAX, Los Angeles",
			DepartureDate:    time.Date(2023, 11, 15, 8, 0, 0, 0, time.UTC),
			DepartureTime:    "08:00 AM",
			ArrivalDate:      time.Date(2023, 11, 15, 10, 15, 0, 0, time.UTC),
			ArrivalTime:      "10:15 AM",
			Duration:         "2h 15m",
			Price:            "349",
			TotalSeats:       180,
			AvailableSeats:   120,
			Aircraft:         "Boeing 737-800",
			ClassType:        "Economy",
			BaggageAllowance: "1 x 23kg Checked, 1 x 8kg Cabin",
		},
		{
			FlightNumber:     "DL1492",
			Airline:          "Delta Airlines",
			From:             "JFK, New York",
			To:               "LAX, Los Angeles",
			DepartureDate:    time.Date(2023, 11, 15, 10, 30, 0, 0, time.UTC),
			DepartureTime:    "10:30 AM",
			ArrivalDate:      time.Date(2023, 11, 15, 13, 0, 0, 0, time.UTC),
			ArrivalTime:      "1:00 PM",
			Duration:         "2h 30m",
			Price:            "289",
			TotalSeats:       150,
			AvailableSeats:   95,
			Aircraft:         "Boeing 737-800",
			ClassType:        "Economy",
			BaggageAllowance: "1 x 23kg Checked, 1 x 8kg Cabin",
		},
	}
}
