package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/forecastd/forecastd/internal/weather"
)

// TestFetchQueryParameters asserts the request carries the city query, the
// fixed mode/units parameters, the day count and the API key.
func TestFetchQueryParameters(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"cod": 200}`))
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "test-key", srv.URL)
	body, err := p.Fetch(context.Background(), weather.Query{LocationSetting: "London", Days: 14})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"cod": 200}` {
		t.Fatalf("unexpected body: %s", body)
	}

	expect := map[string]string{
		"q":     "London",
		"mode":  "json",
		"units": "metric",
		"cnt":   "14",
		"APPID": "test-key",
	}
	for k, want := range expect {
		if got := query.Get(k); got != want {
			t.Errorf("param %s: expected %q, got %q", k, want, got)
		}
	}
	if query.Has("lat") || query.Has("lon") {
		t.Errorf("city query should not carry coordinates: %v", query)
	}
}

// TestFetchCoordinates verifies cached coordinates replace the city query.
func TestFetchCoordinates(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"cod": 200}`))
	}))
	defer srv.Close()

	lat, lon := 51.51, -0.13
	p := NewOpenWeatherProvider(srv.Client(), "test-key", srv.URL)
	_, err := p.Fetch(context.Background(), weather.Query{
		LocationSetting: "London",
		Latitude:        &lat,
		Longitude:       &lon,
		Days:            7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query.Get("lat") != "51.51" || query.Get("lon") != "-0.13" {
		t.Errorf("unexpected coordinates: lat=%q lon=%q", query.Get("lat"), query.Get("lon"))
	}
	if query.Has("q") {
		t.Errorf("coordinate query should not carry the city: %v", query)
	}
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "test-key", srv.URL)
	_, err := p.Fetch(context.Background(), weather.Query{LocationSetting: "London", Days: 14})
	if !errors.Is(err, weather.ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
}

func TestFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "test-key", srv.URL)
	_, err := p.Fetch(context.Background(), weather.Query{LocationSetting: "London", Days: 14})
	if !errors.Is(err, weather.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	p := NewOpenWeatherProvider(&http.Client{}, "test-key", srv.URL)
	_, err := p.Fetch(context.Background(), weather.Query{LocationSetting: "London", Days: 14})
	if !errors.Is(err, weather.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestFetchMissingKey(t *testing.T) {
	p := NewOpenWeatherProvider(&http.Client{}, "", "")
	_, err := p.Fetch(context.Background(), weather.Query{LocationSetting: "London", Days: 14})
	if err == nil {
		t.Fatal("expected an error without an api key")
	}
}
