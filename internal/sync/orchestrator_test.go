package sync

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/forecastd/forecastd/internal/store"
	"github.com/forecastd/forecastd/internal/weather"
)

type fakeFetcher struct {
	body []byte
	err  error
}

func (f *fakeFetcher) Fetch(context.Context, weather.Query) ([]byte, error) {
	return f.body, f.err
}

type recordingNotifier struct {
	calls int
	last  store.ForecastRow
}

func (n *recordingNotifier) Notify(_ context.Context, row store.ForecastRow, _ weather.Unit) error {
	n.calls++
	n.last = row
	return nil
}

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func forecastBody(days int) []byte {
	body := `{"cod": "200", "city": {"name": "London", "coord": {"lat": 51.51, "lon": -0.13}}, "list": [`
	for i := 0; i < days; i++ {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"pressure": 1010, "humidity": 70, "speed": 4, "deg": 90,
			"temp": {"max": %d, "min": %d}, "weather": [{"main": "Clear", "id": 800}]}`, 20+i, 10+i)
	}
	return []byte(body + `]}`)
}

// TestRunSuccess walks a full sync: fetch, parse, store, status OK.
func TestRunSuccess(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	updated := false
	o := New(db, &fakeFetcher{body: forecastBody(3)}, 14, "London", 24*time.Hour, nil)
	o.OnDataUpdated = func() { updated = true }

	if err := o.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, err := db.SyncStatus(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != weather.StatusOK {
		t.Fatalf("expected StatusOK, got %v", status)
	}

	rows, err := db.Forecasts(ctx, "London")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].CityName != "London" {
		t.Fatalf("location not joined: %+v", rows[0])
	}

	loc, err := db.LocationBySetting(ctx, "London")
	if err != nil {
		t.Fatalf("location not upserted: %v", err)
	}
	if loc.Latitude != 51.51 || loc.Longitude != -0.13 {
		t.Fatalf("unexpected coordinates: %+v", loc)
	}

	if !updated {
		t.Fatal("expected OnDataUpdated to run")
	}
}

// TestRunInvalidLocation verifies an upstream 404 records INVALID_LOCATION
// and stores nothing.
func TestRunInvalidLocation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	body := []byte(`{"cod": "404", "message": "city not found"}`)
	o := New(db, &fakeFetcher{body: body}, 14, "Atlantis", 24*time.Hour, nil)

	if err := o.Run(ctx); err == nil {
		t.Fatal("expected an error")
	}

	status, _ := db.SyncStatus(ctx)
	if status != weather.StatusInvalidLocation {
		t.Fatalf("expected StatusInvalidLocation, got %v", status)
	}
	rows, _ := db.Forecasts(ctx, "Atlantis")
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

// TestRunNetworkFailure verifies a transport failure records SERVER_DOWN and
// leaves previously synced rows intact.
func TestRunNetworkFailure(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	good := New(db, &fakeFetcher{body: forecastBody(2)}, 14, "London", 24*time.Hour, nil)
	if err := good.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := New(db, &fakeFetcher{err: fmt.Errorf("%w: connection refused", weather.ErrNetwork)}, 14, "London", 24*time.Hour, nil)
	if err := bad.Run(ctx); err == nil {
		t.Fatal("expected an error")
	}

	status, _ := db.SyncStatus(ctx)
	if status != weather.StatusServerDown {
		t.Fatalf("expected StatusServerDown, got %v", status)
	}
	rows, _ := db.Forecasts(ctx, "London")
	if len(rows) != 2 {
		t.Fatalf("stale data should survive a failed sync, got %d rows", len(rows))
	}
}

func TestRunMalformedResponse(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	o := New(db, &fakeFetcher{body: []byte("<html>not json</html>")}, 14, "London", 24*time.Hour, nil)
	if err := o.Run(ctx); err == nil {
		t.Fatal("expected an error")
	}

	status, _ := db.SyncStatus(ctx)
	if status != weather.StatusServerInvalid {
		t.Fatalf("expected StatusServerInvalid, got %v", status)
	}
}

// TestNotificationDebounce runs two successful syncs in a row and expects a
// single notification inside the debounce window.
func TestNotificationDebounce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	notifier := &recordingNotifier{}
	o := New(db, &fakeFetcher{body: forecastBody(2)}, 14, "London", 24*time.Hour, notifier)

	if err := o.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := o.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notifier.calls != 1 {
		t.Fatalf("expected 1 notification, got %d", notifier.calls)
	}
	if notifier.last.CityName != "London" {
		t.Fatalf("unexpected notification row: %+v", notifier.last)
	}

	// Once the window passes, the next sync notifies again.
	o.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	if err := o.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notifier.calls != 2 {
		t.Fatalf("expected 2 notifications, got %d", notifier.calls)
	}
}

// TestNotificationsDisabled verifies the preference gates notifications.
func TestNotificationsDisabled(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.SetNotificationsEnabled(ctx, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	notifier := &recordingNotifier{}
	o := New(db, &fakeFetcher{body: forecastBody(1)}, 14, "London", 24*time.Hour, notifier)
	if err := o.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notifier.calls != 0 {
		t.Fatalf("expected no notifications, got %d", notifier.calls)
	}
}

type captureFetcher struct {
	fakeFetcher
	query weather.Query
}

func (f *captureFetcher) Fetch(ctx context.Context, q weather.Query) ([]byte, error) {
	f.query = q
	return f.fakeFetcher.Fetch(ctx, q)
}

// TestRunUsesCachedCoordinates verifies the fetch query carries the
// preferred location and the cached lat/lon pair.
func TestRunUsesCachedCoordinates(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.SetCachedCoordinates(ctx, 48.85, 2.35); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.SetPreferredLocation(ctx, "Paris"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fetcher := &captureFetcher{fakeFetcher: fakeFetcher{body: forecastBody(1)}}
	o := New(db, fetcher, 14, "London", 24*time.Hour, nil)
	if err := o.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := fetcher.query
	if q.LocationSetting != "Paris" {
		t.Fatalf("expected preferred location, got %q", q.LocationSetting)
	}
	if q.Latitude == nil || q.Longitude == nil || *q.Latitude != 48.85 || *q.Longitude != 2.35 {
		t.Fatalf("expected cached coordinates in query: %+v", q)
	}
	if q.Days != 14 {
		t.Fatalf("expected 14 days, got %d", q.Days)
	}
}

// TestRunPrunesStaleDays seeds an old row directly and verifies a sync
// removes everything older than yesterday.
func TestRunPrunesStaleDays(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := db.UpsertLocation(ctx, weather.Location{Setting: "London", CityName: "London"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stale := weather.ForecastDay{
		Date:        weather.StartOfDay(time.Now()).AddDate(0, 0, -3).UnixMilli(),
		ConditionID: 800,
		Description: "Clear",
	}
	if err := db.InsertForecast(ctx, id, stale); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	o := New(db, &fakeFetcher{body: forecastBody(1)}, 14, "London", 24*time.Hour, nil)
	if err := o.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := db.Forecasts(ctx, "London")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected stale row pruned, got %d rows", len(rows))
	}
	if rows[0].Date != weather.NormalizeDate(time.Now().UnixMilli()) {
		t.Fatalf("unexpected surviving date: %d", rows[0].Date)
	}
}
