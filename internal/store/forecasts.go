package store

import (
	"context"

	"github.com/forecastd/forecastd/internal/weather"
)

// ForecastRow is a forecast day joined with its location.
type ForecastRow struct {
	weather.ForecastDay
	LocationSetting string `json:"locationSetting"`
	CityName        string `json:"city"`
}

const forecastJoin = `
	SELECT weather.date, weather.weather_id, weather.short_desc,
	       weather.min, weather.max, weather.humidity, weather.pressure,
	       weather.wind, weather.degrees,
	       location.location_setting, location.city_name
	FROM weather
	INNER JOIN location ON weather.location_id = location.id`

// Forecasts returns all stored days for a location setting, oldest first.
func (db *DB) Forecasts(ctx context.Context, setting string) ([]ForecastRow, error) {
	return db.queryForecasts(ctx,
		forecastJoin+` WHERE location.location_setting = ? ORDER BY weather.date ASC`,
		setting)
}

// ForecastsFrom returns days for a location setting dated at or after
// startDate, oldest first. startDate is normalized before comparison.
func (db *DB) ForecastsFrom(ctx context.Context, setting string, startDate int64) ([]ForecastRow, error) {
	return db.queryForecasts(ctx,
		forecastJoin+` WHERE location.location_setting = ? AND weather.date >= ? ORDER BY weather.date ASC`,
		setting, weather.NormalizeDate(startDate))
}

// ForecastForDay returns the single row for (setting, date), normalizing
// date first. ErrNotFound when no forecast is stored for that day.
func (db *DB) ForecastForDay(ctx context.Context, setting string, date int64) (*ForecastRow, error) {
	rows, err := db.queryForecasts(ctx,
		forecastJoin+` WHERE location.location_setting = ? AND weather.date = ?`,
		setting, weather.NormalizeDate(date))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (db *DB) queryForecasts(ctx context.Context, query string, args ...any) ([]ForecastRow, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StorageError{Op: "query forecasts", Err: err}
	}
	defer rows.Close()

	var out []ForecastRow
	for rows.Next() {
		var r ForecastRow
		if err := rows.Scan(&r.Date, &r.ConditionID, &r.Description,
			&r.MinTemp, &r.MaxTemp, &r.Humidity, &r.Pressure,
			&r.WindSpeed, &r.WindDegrees,
			&r.LocationSetting, &r.CityName); err != nil {
			return nil, &StorageError{Op: "scan forecast", Err: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "query forecasts", Err: err}
	}
	return out, nil
}

// Re-syncing the same day replaces that day's row, which is what keeps the
// at-most-one-row-per-(location, day) invariant across sync cycles.
const upsertForecastSQL = `
	INSERT INTO weather (location_id, date, weather_id, short_desc, min, max, humidity, pressure, wind, degrees)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(location_id, date) DO UPDATE SET
		weather_id = excluded.weather_id,
		short_desc = excluded.short_desc,
		min = excluded.min,
		max = excluded.max,
		humidity = excluded.humidity,
		pressure = excluded.pressure,
		wind = excluded.wind,
		degrees = excluded.degrees`

func forecastArgs(locationID int64, day weather.ForecastDay) []any {
	return []any{
		locationID, weather.NormalizeDate(day.Date), day.ConditionID, day.Description,
		day.MinTemp, day.MaxTemp, day.Humidity, day.Pressure,
		day.WindSpeed, day.WindDegrees,
	}
}

// InsertForecast writes one day for a location. The date is normalized to
// the local-midnight day boundary before writing.
func (db *DB) InsertForecast(ctx context.Context, locationID int64, day weather.ForecastDay) error {
	if _, err := db.ExecContext(ctx, upsertForecastSQL, forecastArgs(locationID, day)...); err != nil {
		return &StorageError{Op: "insert forecast", Err: err}
	}
	db.notify(ResourceWeather, 1)
	return nil
}

// BulkUpsertForecasts writes all days in a single transaction. If any row
// fails the whole batch rolls back and zero rows persist.
func (db *DB) BulkUpsertForecasts(ctx context.Context, locationID int64, days []weather.ForecastDay) (int, error) {
	if len(days) == 0 {
		return 0, nil
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &StorageError{Op: "begin bulk insert", Err: err}
	}
	count := 0
	for _, day := range days {
		if _, err := tx.ExecContext(ctx, upsertForecastSQL, forecastArgs(locationID, day)...); err != nil {
			tx.Rollback()
			return 0, &StorageError{Op: "bulk insert forecast", Err: err}
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, &StorageError{Op: "commit bulk insert", Err: err}
	}
	db.notify(ResourceWeather, int64(count))
	return count, nil
}

// UpdateForecast replaces the forecast fields of the (locationID, date) row
// and reports how many rows changed.
func (db *DB) UpdateForecast(ctx context.Context, locationID int64, day weather.ForecastDay) (int64, error) {
	res, err := db.ExecContext(ctx,
		`UPDATE weather SET weather_id = ?, short_desc = ?, min = ?, max = ?,
		        humidity = ?, pressure = ?, wind = ?, degrees = ?
		 WHERE location_id = ? AND date = ?`,
		day.ConditionID, day.Description, day.MinTemp, day.MaxTemp,
		day.Humidity, day.Pressure, day.WindSpeed, day.WindDegrees,
		locationID, weather.NormalizeDate(day.Date))
	if err != nil {
		return 0, &StorageError{Op: "update forecast", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &StorageError{Op: "update forecast", Err: err}
	}
	db.notify(ResourceWeather, n)
	return n, nil
}

// PruneForecastsBefore deletes rows dated strictly before cutoff across all
// locations, not just the one that was synced.
func (db *DB) PruneForecastsBefore(ctx context.Context, cutoff int64) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM weather WHERE date < ?`, cutoff)
	if err != nil {
		return 0, &StorageError{Op: "prune forecasts", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &StorageError{Op: "prune forecasts", Err: err}
	}
	db.notify(ResourceWeather, n)
	return n, nil
}

// DeleteAllForecasts removes every forecast row; used to invalidate the
// cache when the preferred location changes.
func (db *DB) DeleteAllForecasts(ctx context.Context) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM weather`)
	if err != nil {
		return 0, &StorageError{Op: "delete forecasts", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &StorageError{Op: "delete forecasts", Err: err}
	}
	db.notify(ResourceWeather, n)
	return n, nil
}
