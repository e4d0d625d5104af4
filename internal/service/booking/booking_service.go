package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"skyjourney/internal/domain"
	"skyjourney/internal/kafka"
	"skyjourney/internal/repository"
)

// referenceAttempts bounds the collision check-and-regenerate loop.
const referenceAttempts = 5

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, id int64, requester *domain.User) (*BookingDetails, error)
	List(ctx context.Context, requester *domain.User) ([]domain.Booking, error)
	Cancel(ctx context.Context, id int64, requester *domain.User) (*domain.Booking, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type PassengerInput struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DateOfBirth    string `json:"dateOfBirth"`
	PassportNumber string `json:"passportNumber"`
}

type CreateBookingInput struct {
	UserID       int64
	FlightID     int64
	SeatsBooked  int
	TotalPrice   string
	ContactEmail string
	ContactPhone string
	Passengers   []PassengerInput
}

// BookingDetails is a booking together with its passenger rows.
type BookingDetails struct {
	Booking    *domain.Booking    `json:"booking"`
	Passengers []domain.Passenger `json:"passengers"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if flight.AvailableSeats < input.SeatsBooked {
		return nil, domain.ErrInsufficientSeats
	}

	reference, err := s.newReference(ctx)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:           input.UserID,
		FlightID:         input.FlightID,
		BookingReference: reference,
		Status:           domain.BookingStatusConfirmed,
		TotalPrice:       input.TotalPrice,
		SeatsBooked:      input.SeatsBooked,
		ContactEmail:     input.ContactEmail,
		ContactPhone:     input.ContactPhone,
	}

	passengers := make([]domain.Passenger, 0, len(input.Passengers))
	for _, p := range input.Passengers {
		passengers = append(passengers, domain.Passenger{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			DateOfBirth:    p.DateOfBirth,
			PassportNumber: p.PassportNumber,
		})
	}

	// The repository re-checks seat availability atomically; the check above
	// only shapes the common error before a reference is burned.
	if err := s.bookings.Create(ctx, booking, passengers); err != nil {
		return nil, err
	}

	s.invalidateFlights(ctx)
	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id int64, requester *domain.User) (*BookingDetails, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !requester.CanAccessBooking(booking) {
		return nil, domain.ErrForbidden
	}

	passengers, err := s.bookings.Passengers(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	return &BookingDetails{Booking: booking, Passengers: passengers}, nil
}

func (s *BookingService) List(ctx context.Context, requester *domain.User) ([]domain.Booking, error) {
	if requester.IsAdmin() {
		return s.bookings.ListAll(ctx)
	}
	return s.bookings.ListByUser(ctx, requester.ID)
}

func (s *BookingService) Cancel(ctx context.Context, id int64, requester *domain.User) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !requester.CanAccessBooking(booking) {
		return nil, domain.ErrForbidden
	}

	cancelled, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidateFlights(ctx)
	s.publish(ctx, "booking_cancelled", cancelled)
	return cancelled, nil
}

// newReference generates "SKY" plus eight uppercase hex characters, retrying
// on the (vanishingly unlikely) collision with an existing booking.
func (s *BookingService) newReference(ctx context.Context) (string, error) {
	for i := 0; i < referenceAttempts; i++ {
		reference := "SKY" + strings.ToUpper(uuid.NewString()[:8])

		_, err := s.bookings.GetByReference(ctx, reference)
		if errors.Is(err, domain.ErrNotFound) {
			return reference, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("could not generate a unique booking reference in %d attempts", referenceAttempts)
}

func (s *BookingService) invalidateFlights(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		slog.Warn("invalidate flights cache", "error", err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:             eventType,
		BookingReference: booking.BookingReference,
		FlightID:         booking.FlightID,
		SeatsBooked:      booking.SeatsBooked,
		Email:            booking.ContactEmail,
		Status:           string(booking.Status),
		TotalPrice:       booking.TotalPrice,
		CreatedAt:        booking.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.BookingReference, event); err != nil {
		slog.Warn("publish booking event", "type", eventType, "reference", booking.BookingReference, "error", err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.BookingReference, event); err != nil {
			slog.Warn("publish booking notification", "type", eventType, "reference", booking.BookingReference, "error", err)
		}
	}
}

func validateCreate(input CreateBookingInput) error {
	fields := map[string]string{}
	if input.SeatsBooked < 1 {
		fields["seatsBooked"] = "must be at least 1"
	}
	if input.ContactEmail == "" {
		fields["contactEmail"] = "is required"
	}
	if input.ContactPhone == "" {
		fields["contactPhone"] = "is required"
	}
	if _, err := strconv.ParseFloat(input.TotalPrice, 64); err != nil || input.TotalPrice == "" {
		fields["totalPrice"] = "must be a decimal amount"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
