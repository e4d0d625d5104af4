package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skyjourney/internal/domain"
)

const flightColumns = `id, flight_number, airline, from_location, to_location, departure_date, departure_time, arrival_date, arrival_time, duration, price, total_seats, available_seats, aircraft, class_type, baggage_allowance`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) Search(ctx context.Context, from, to string, departureDate time.Time) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE from_location ILIKE '%' || $1 || '%'
		  AND to_location ILIKE '%' || $2 || '%'
		  AND (departure_date AT TIME ZONE 'UTC')::date = $3::date
		ORDER BY id`, from, to, departureDate.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	if err := flight.CheckSeats(); err != nil {
		return err
	}
	return r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, airline, from_location, to_location, departure_date, departure_time, arrival_date, arrival_time, duration, price, total_seats, available_seats, aircraft, class_type, baggage_allowance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`,
		flight.FlightNumber, flight.Airline, flight.From, flight.To,
		flight.DepartureDate, flight.DepartureTime, flight.ArrivalDate, flight.ArrivalTime,
		flight.Duration, flight.Price, flight.TotalSeats, flight.AvailableSeats,
		flight.Aircraft, flight.ClassType, flight.BaggageAllowance).Scan(&flight.ID)
}

func (r *PGFlightRepository) Update(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1 FOR UPDATE`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	patch.Apply(f)
	if err := f.CheckSeats(); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET flight_number=$1, airline=$2, from_location=$3, to_location=$4, departure_date=$5, departure_time=$6, arrival_date=$7, arrival_time=$8, duration=$9, price=$10, total_seats=$11, available_seats=$12, aircraft=$13, class_type=$14, baggage_allowance=$15 WHERE id=$16`,
		f.FlightNumber, f.Airline, f.From, f.To,
		f.DepartureDate, f.DepartureTime, f.ArrivalDate, f.ArrivalTime,
		f.Duration, f.Price, f.TotalSeats, f.AvailableSeats,
		f.Aircraft, f.ClassType, f.BaggageAllowance, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	// Non-cascading: bookings against the flight are left in place.
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.From, &f.To,
		&f.DepartureDate, &f.DepartureTime, &f.ArrivalDate, &f.ArrivalTime,
		&f.Duration, &f.Price, &f.TotalSeats, &f.AvailableSeats,
		&f.Aircraft, &f.ClassType, &f.BaggageAllowance); err != nil {
		return nil, err
	}
	return &f, nil
}

func scanFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
