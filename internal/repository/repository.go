package repository

import (
	"context"
	"time"

	"skyjourney/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Search(ctx context.Context, from, to string, departureDate time.Time) ([]domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type BookingRepository interface {
	// Create stores the booking with its passengers and decrements the
	// flight's available seats as a single atomic step. It fails with
	// domain.ErrNotFound when the flight is missing and
	// domain.ErrInsufficientSeats when fewer than SeatsBooked seats remain,
	// in both cases leaving the store untouched.
	Create(ctx context.Context, booking *domain.Booking, passengers []domain.Passenger) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	// Cancel flips a confirmed booking to cancelled and credits its seats
	// back to the flight. A second call fails with domain.ErrAlreadyCancelled
	// without touching the seat count.
	Cancel(ctx context.Context, id int64) (*domain.Booking, error)
	Passengers(ctx context.Context, bookingID int64) ([]domain.Passenger, error)
}
