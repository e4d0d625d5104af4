package flights

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"skyjourney/internal/domain"
	"skyjourney/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Search(ctx context.Context, input SearchInput) ([]domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type SearchInput struct {
	From          string
	To            string
	DepartureDate time.Time
	Passengers    int
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			slog.Warn("set flights cache", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// Search re-scans current flight state on every call; results are never
// cached.
func (s *FlightService) Search(ctx context.Context, input SearchInput) ([]domain.Flight, error) {
	if err := validateSearch(input); err != nil {
		return nil, err
	}
	return s.repo.Search(ctx, input.From, input.To, input.DepartureDate)
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) error {
	if err := validateFlight(flight); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Update(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error) {
	if patch.Price != nil {
		if _, err := strconv.ParseFloat(*patch.Price, 64); err != nil {
			return nil, domain.NewValidationError("price", "must be a decimal amount")
		}
	}
	flight, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		slog.Warn("invalidate flights cache", "error", err)
	}
}

func validateSearch(input SearchInput) error {
	fields := map[string]string{}
	if len(input.From) < 2 {
		fields["from"] = "origin is required"
	}
	if len(input.To) < 2 {
		fields["to"] = "destination is required"
	}
	if input.DepartureDate.IsZero() {
		fields["departureDate"] = "departure date is required"
	}
	if input.Passengers < 1 || input.Passengers > 10 {
		fields["passengers"] = "must be between 1 and 10"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func validateFlight(f *domain.Flight) error {
	fields := map[string]string{}
	if f.FlightNumber == "" {
		fields["flightNumber"] = "is required"
	}
	if f.Airline == "" {
		fields["airline"] = "is required"
	}
	if f.From == "" {
		fields["from"] = "is required"
	}
	if f.To == "" {
		fields["to"] = "is required"
	}
	if _, err := strconv.ParseFloat(f.Price, 64); err != nil || f.Price == "" {
		fields["price"] = "must be a decimal amount"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return f.CheckSeats()
}

var _ FlightUseCase = (*FlightService)(nil)
