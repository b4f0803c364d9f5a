package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/forecastd/forecastd/internal/weather"
)

// Preference keys. Persisted scalars scoped to the single user of this
// instance.
const (
	prefLocation         = "location_setting"
	prefUnit             = "temperature_unit"
	prefLatitude         = "coord_lat"
	prefLongitude        = "coord_long"
	prefSyncStatus       = "sync_status"
	prefLastNotification = "last_notification"
	prefNotifications    = "notifications_enabled"
	prefIconPack         = "icon_pack"
)

func (db *DB) getPref(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Op: "read pref " + key, Err: err}
	}
	return value, true, nil
}

func (db *DB) setPref(ctx context.Context, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO prefs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return &StorageError{Op: "write pref " + key, Err: err}
	}
	return nil
}

func (db *DB) deletePref(ctx context.Context, key string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM prefs WHERE key = ?`, key); err != nil {
		return &StorageError{Op: "delete pref " + key, Err: err}
	}
	return nil
}

// PreferredLocation returns the user's location setting, or def when unset.
func (db *DB) PreferredLocation(ctx context.Context, def string) (string, error) {
	v, ok, err := db.getPref(ctx, prefLocation)
	if err != nil || !ok {
		return def, err
	}
	return v, nil
}

func (db *DB) SetPreferredLocation(ctx context.Context, setting string) error {
	return db.setPref(ctx, prefLocation, setting)
}

// TemperatureUnit returns the preferred display unit, defaulting to metric.
func (db *DB) TemperatureUnit(ctx context.Context) (weather.Unit, error) {
	v, ok, err := db.getPref(ctx, prefUnit)
	if err != nil || !ok {
		return weather.UnitMetric, err
	}
	return weather.Unit(v), nil
}

func (db *DB) SetTemperatureUnit(ctx context.Context, unit weather.Unit) error {
	return db.setPref(ctx, prefUnit, string(unit))
}

// CachedCoordinates returns the cached lat/lon pair, if both are set.
func (db *DB) CachedCoordinates(ctx context.Context) (lat, lon float64, ok bool, err error) {
	latStr, haveLat, err := db.getPref(ctx, prefLatitude)
	if err != nil || !haveLat {
		return 0, 0, false, err
	}
	lonStr, haveLon, err := db.getPref(ctx, prefLongitude)
	if err != nil || !haveLon {
		return 0, 0, false, err
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false, nil
	}
	return lat, lon, true, nil
}

func (db *DB) SetCachedCoordinates(ctx context.Context, lat, lon float64) error {
	if err := db.setPref(ctx, prefLatitude, strconv.FormatFloat(lat, 'f', -1, 64)); err != nil {
		return err
	}
	return db.setPref(ctx, prefLongitude, strconv.FormatFloat(lon, 'f', -1, 64))
}

func (db *DB) ClearCachedCoordinates(ctx context.Context) error {
	if err := db.deletePref(ctx, prefLatitude); err != nil {
		return err
	}
	return db.deletePref(ctx, prefLongitude)
}

// SyncStatus returns the persisted status of the most recent sync attempt.
func (db *DB) SyncStatus(ctx context.Context) (weather.SyncStatus, error) {
	v, ok, err := db.getPref(ctx, prefSyncStatus)
	if err != nil || !ok {
		return weather.StatusUnknown, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return weather.StatusUnknown, nil
	}
	return weather.SyncStatus(n), nil
}

func (db *DB) SetSyncStatus(ctx context.Context, status weather.SyncStatus) error {
	return db.setPref(ctx, prefSyncStatus, strconv.Itoa(int(status)))
}

// LastNotification returns the epoch millis of the last forecast
// notification, zero when none was sent yet.
func (db *DB) LastNotification(ctx context.Context) (int64, error) {
	v, ok, err := db.getPref(ctx, prefLastNotification)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (db *DB) SetLastNotification(ctx context.Context, millis int64) error {
	return db.setPref(ctx, prefLastNotification, strconv.FormatInt(millis, 10))
}

// NotificationsEnabled defaults to true.
func (db *DB) NotificationsEnabled(ctx context.Context) (bool, error) {
	v, ok, err := db.getPref(ctx, prefNotifications)
	if err != nil || !ok {
		return true, err
	}
	return v == "true", nil
}

func (db *DB) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	return db.setPref(ctx, prefNotifications, strconv.FormatBool(enabled))
}

// IconPack returns the icon-pack URL format preference; empty means the
// bundled icon names are used as-is.
func (db *DB) IconPack(ctx context.Context) (string, error) {
	v, _, err := db.getPref(ctx, prefIconPack)
	return v, err
}

func (db *DB) SetIconPack(ctx context.Context, packFormat string) error {
	return db.setPref(ctx, prefIconPack, packFormat)
}
