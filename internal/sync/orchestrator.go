package sync

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/forecastd/forecastd/internal/store"
	"github.com/forecastd/forecastd/internal/weather"
)

// Notifier receives the debounced once-a-day forecast summary after a
// successful sync.
type Notifier interface {
	Notify(ctx context.Context, row store.ForecastRow, unit weather.Unit) error
}

// LogNotifier writes the summary to the process log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, row store.ForecastRow, unit weather.Unit) error {
	log.Printf("notification: %s - %s, high %.0f low %.0f",
		row.CityName, weather.DescriptionForCondition(row.ConditionID),
		weather.DisplayTemperature(row.MaxTemp, unit),
		weather.DisplayTemperature(row.MinTemp, unit))
	return nil
}

// Orchestrator runs one full sync per invocation: fetch, parse, upsert the
// location, bulk-insert the days, prune stale rows, record the status. Every
// failure path is terminal for that run; the scheduler owns the next attempt.
type Orchestrator struct {
	store           *store.DB
	fetcher         weather.Fetcher
	days            int
	defaultLocation string
	notifyEvery     time.Duration
	notifier        Notifier

	// OnDataUpdated runs after every successful sync, before the notifier.
	OnDataUpdated func()

	now func() time.Time
}

func New(db *store.DB, fetcher weather.Fetcher, days int, defaultLocation string, notifyEvery time.Duration, notifier Notifier) *Orchestrator {
	return &Orchestrator{
		store:           db,
		fetcher:         fetcher,
		days:            days,
		defaultLocation: defaultLocation,
		notifyEvery:     notifyEvery,
		notifier:        notifier,
		now:             time.Now,
	}
}

// Run performs one sync attempt and records its status exactly once.
func (o *Orchestrator) Run(ctx context.Context) error {
	status, err := o.run(ctx)
	if setErr := o.store.SetSyncStatus(ctx, status); setErr != nil && err == nil {
		err = setErr
	}
	return err
}

func (o *Orchestrator) run(ctx context.Context) (weather.SyncStatus, error) {
	setting, err := o.store.PreferredLocation(ctx, o.defaultLocation)
	if err != nil {
		return weather.StatusUnknown, err
	}

	q := weather.Query{LocationSetting: setting, Days: o.days}
	lat, lon, haveCoords, err := o.store.CachedCoordinates(ctx)
	if err != nil {
		return weather.StatusUnknown, err
	}
	if haveCoords {
		q.Latitude, q.Longitude = &lat, &lon
	}

	body, err := o.fetcher.Fetch(ctx, q)
	if err != nil {
		log.Printf("sync: fetch failed for %q: %v", setting, err)
		return weather.StatusForError(err), err
	}

	parsed, err := weather.ParseForecast(body, o.now())
	if err != nil {
		log.Printf("sync: parse failed for %q: %v", setting, err)
		return weather.StatusForError(err), err
	}

	locationID, err := o.store.UpsertLocation(ctx, weather.Location{
		Setting:   setting,
		CityName:  parsed.CityName,
		Latitude:  parsed.Latitude,
		Longitude: parsed.Longitude,
	})
	if err != nil {
		return weather.StatusUnknown, err
	}

	inserted, err := o.store.BulkUpsertForecasts(ctx, locationID, parsed.Days)
	if err != nil {
		return weather.StatusUnknown, err
	}

	cutoff := weather.StartOfDay(o.now()).AddDate(0, 0, -1).UnixMilli()
	if _, err := o.store.PruneForecastsBefore(ctx, cutoff); err != nil {
		return weather.StatusUnknown, err
	}

	log.Printf("sync: stored %d days for %q", inserted, setting)
	if o.OnDataUpdated != nil {
		o.OnDataUpdated()
	}
	o.maybeNotify(ctx, setting)
	return weather.StatusOK, nil
}

// maybeNotify posts the nearest-day forecast once per notifyEvery window.
// Notification failures never fail the sync.
func (o *Orchestrator) maybeNotify(ctx context.Context, setting string) {
	if o.notifier == nil {
		return
	}
	enabled, err := o.store.NotificationsEnabled(ctx)
	if err != nil || !enabled {
		return
	}
	last, err := o.store.LastNotification(ctx)
	if err != nil {
		return
	}
	now := o.now()
	if now.UnixMilli()-last < o.notifyEvery.Milliseconds() {
		return
	}

	row, err := o.store.ForecastForDay(ctx, setting, now.UnixMilli())
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("sync: notification read failed: %v", err)
		}
		return
	}
	unit, err := o.store.TemperatureUnit(ctx)
	if err != nil {
		unit = weather.UnitMetric
	}
	if err := o.notifier.Notify(ctx, *row, unit); err != nil {
		log.Printf("sync: notification failed: %v", err)
		return
	}
	if err := o.store.SetLastNotification(ctx, now.UnixMilli()); err != nil {
		log.Printf("sync: recording notification time failed: %v", err)
	}
}
