package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store implements Warehouse over a SQLite flight-history database.
type Store struct {
	db *sql.DB

	// MinFlights is the group-size floor applied to the day-of-week
	// query, whose interface carries no explicit threshold.
	MinFlights int
}

// Open creates or opens the flight database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening flight database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging flight database: %w", err)
	}

	s := &Store{db: db, MinFlights: DefaultMinFlights}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory flight database (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	s := &Store{db: db, MinFlights: DefaultMinFlights}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// schema contains the full database schema. New tables are added here.
const schema = `
CREATE TABLE IF NOT EXISTS flights (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    flight_date DATE NOT NULL,
    day_of_week INTEGER NOT NULL CHECK(day_of_week BETWEEN 0 AND 6),
    carrier_code TEXT NOT NULL,
    carrier_name TEXT NOT NULL DEFAULT '',
    flight_number TEXT NOT NULL DEFAULT '',
    origin TEXT NOT NULL,
    destination TEXT NOT NULL,
    dep_delay_minutes REAL,
    arr_delay_minutes REAL
);

CREATE INDEX IF NOT EXISTS idx_flights_route ON flights(origin, destination);
CREATE INDEX IF NOT EXISTS idx_flights_carrier ON flights(carrier_code);
`

// dayNames maps the stored day_of_week (0=Sunday, per time.Weekday) to a
// display name.
var dayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// RankAirlinesByOnTime returns carriers on the route ordered by on-time
// percentage, best first. Carriers with fewer than minFlights qualifying
// flights are excluded; a non-positive minFlights uses s.MinFlights.
func (s *Store) RankAirlinesByOnTime(ctx context.Context, origin, destination string, year *int, minFlights int) ([]AirlineOnTime, error) {
	if minFlights <= 0 {
		minFlights = s.MinFlights
	}

	query := `
		SELECT carrier_code,
		       MAX(carrier_name),
		       AVG(dep_delay_minutes),
		       AVG(arr_delay_minutes),
		       AVG((dep_delay_minutes + arr_delay_minutes) / 2.0),
		       100.0 * AVG(CASE WHEN arr_delay_minutes <= 15 THEN 1.0 ELSE 0.0 END),
		       COUNT(*)
		FROM flights
		WHERE origin = ? AND destination = ?
		  AND dep_delay_minutes IS NOT NULL
		  AND arr_delay_minutes IS NOT NULL`
	args := []any{origin, destination}
	if year != nil {
		query += ` AND CAST(strftime('%Y', flight_date) AS INTEGER) = ?`
		args = append(args, *year)
	}
	query += `
		GROUP BY carrier_code
		HAVING COUNT(*) >= ?
		ORDER BY 6 DESC, 5 ASC`
	args = append(args, minFlights)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ranking airlines %s-%s: %w", origin, destination, err)
	}
	defer rows.Close()

	var out []AirlineOnTime
	for rows.Next() {
		var a AirlineOnTime
		if err := rows.Scan(&a.CarrierCode, &a.CarrierName, &a.AvgDepartureDelay,
			&a.AvgArrivalDelay, &a.AvgOverallDelay, &a.OnTimePct, &a.FlightCount); err != nil {
			return nil, fmt.Errorf("scanning airline row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading airline rows: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	return out, nil
}

// DelaysByDayOfWeek returns the per-weekday delay picture for the route,
// ordered by average overall delay ascending (best day first).
func (s *Store) DelaysByDayOfWeek(ctx context.Context, origin, destination string, year *int) ([]DayDelay, error) {
	query := `
		SELECT day_of_week,
		       AVG(dep_delay_minutes),
		       AVG(arr_delay_minutes),
		       AVG((dep_delay_minutes + arr_delay_minutes) / 2.0),
		       100.0 * AVG(CASE WHEN arr_delay_minutes <= 15 THEN 1.0 ELSE 0.0 END),
		       COUNT(*)
		FROM flights
		WHERE origin = ? AND destination = ?
		  AND dep_delay_minutes IS NOT NULL
		  AND arr_delay_minutes IS NOT NULL`
	args := []any{origin, destination}
	if year != nil {
		query += ` AND CAST(strftime('%Y', flight_date) AS INTEGER) = ?`
		args = append(args, *year)
	}
	query += `
		GROUP BY day_of_week
		HAVING COUNT(*) >= ?
		ORDER BY 4 ASC`
	args = append(args, s.MinFlights)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("day-of-week delays %s-%s: %w", origin, destination, err)
	}
	defer rows.Close()

	var out []DayDelay
	for rows.Next() {
		var d DayDelay
		var day int
		if err := rows.Scan(&day, &d.AvgDepartureDelay, &d.AvgArrivalDelay,
			&d.AvgOverallDelay, &d.OnTimePct, &d.FlightCount); err != nil {
			return nil, fmt.Errorf("scanning day row: %w", err)
		}
		if day >= 0 && day < len(dayNames) {
			d.DayOfWeek = dayNames[day]
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading day rows: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	return out, nil
}

// InsertFlight adds one flight record. The day of week is derived from
// the flight date.
func (s *Store) InsertFlight(ctx context.Context, date time.Time, carrierCode, carrierName, flightNumber, origin, destination string, depDelay, arrDelay *float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO flights (flight_date, day_of_week, carrier_code, carrier_name,
		                     flight_number, origin, destination,
		                     dep_delay_minutes, arr_delay_minutes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		date.Format("2006-01-02"), int(date.Weekday()), carrierCode, carrierName,
		flightNumber, origin, destination, depDelay, arrDelay)
	if err != nil {
		return fmt.Errorf("inserting flight: %w", err)
	}
	return nil
}
