package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/forecastd/forecastd/internal/weather"
)

// UpsertLocation returns the id of the location row for loc.Setting,
// inserting it on first sight. An existing row keeps its identity and its
// stored coordinates are never overwritten.
func (db *DB) UpsertLocation(ctx context.Context, loc weather.Location) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`SELECT id FROM location WHERE location_setting = ?`, loc.Setting).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, &StorageError{Op: "lookup location", Err: err}
	}

	res, err := db.ExecContext(ctx,
		`INSERT INTO location (location_setting, city_name, coord_lat, coord_long)
		 VALUES (?, ?, ?, ?)`,
		loc.Setting, loc.CityName, loc.Latitude, loc.Longitude)
	if err != nil {
		return 0, &StorageError{Op: "insert location", Err: err}
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, &StorageError{Op: "insert location", Err: err}
	}
	db.notify(ResourceLocation, 1)
	return id, nil
}

// LocationBySetting reads back a location by its setting key.
func (db *DB) LocationBySetting(ctx context.Context, setting string) (*weather.Location, error) {
	var loc weather.Location
	err := db.QueryRowContext(ctx,
		`SELECT location_setting, city_name, coord_lat, coord_long
		 FROM location WHERE location_setting = ?`, setting).
		Scan(&loc.Setting, &loc.CityName, &loc.Latitude, &loc.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StorageError{Op: "query location", Err: err}
	}
	return &loc, nil
}
