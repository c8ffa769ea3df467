package warehouse

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
)

// csvColumns is the expected header of a flight-history CSV export:
//
//	flight_date,carrier_code,carrier_name,flight_number,origin,destination,dep_delay_minutes,arr_delay_minutes
//
// Delay columns may be empty for cancelled or unreported flights.
var csvColumns = []string{
	"flight_date", "carrier_code", "carrier_name", "flight_number",
	"origin", "destination", "dep_delay_minutes", "arr_delay_minutes",
}

const importBatchSize = 500

// ImportCSV bulk-loads a flight-history CSV into the store, showing a
// progress bar on stderr. It returns the number of rows imported; rows
// with a malformed date or airport code are skipped, not fatal.
func (s *Store) ImportCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}

	bar := progressbar.DefaultBytes(info.Size(), "Importing flights")
	reader := csv.NewReader(io.TeeReader(f, bar))
	reader.FieldsPerRecord = len(csvColumns)

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading CSV header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting import transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO flights (flight_date, day_of_week, carrier_code, carrier_name,
		                     flight_number, origin, destination,
		                     dep_delay_minutes, arr_delay_minutes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	imported := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("reading CSV row: %w", err)
		}

		date, err := time.Parse("2006-01-02", record[0])
		if err != nil {
			continue
		}
		origin, destination := strings.ToUpper(record[4]), strings.ToUpper(record[5])
		if len(origin) != 3 || len(destination) != 3 {
			continue
		}

		if _, err := stmt.ExecContext(ctx,
			record[0], int(date.Weekday()), strings.ToUpper(record[1]), record[2],
			strings.ToUpper(record[3]), origin, destination,
			parseDelay(record[6]), parseDelay(record[7])); err != nil {
			return imported, fmt.Errorf("inserting row %d: %w", imported+1, err)
		}

		imported++
		if imported%importBatchSize == 0 {
			if err := ctx.Err(); err != nil {
				return imported, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return imported, fmt.Errorf("committing import: %w", err)
	}
	_ = bar.Finish()
	return imported, nil
}

func checkHeader(header []string) error {
	for i, want := range csvColumns {
		if i >= len(header) || !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("unexpected CSV header: want columns %s", strings.Join(csvColumns, ","))
		}
	}
	return nil
}

// parseDelay converts a delay field to a nullable minute count.
func parseDelay(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
