package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// statusCode tolerates the upstream "cod" field arriving as either a JSON
// number or a quoted number.
type statusCode int

func (s *statusCode) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("status code %q: %w", data, err)
	}
	*s = statusCode(n)
	return nil
}

// owmForecast mirrors the daily-forecast payload we consume.
type owmForecast struct {
	Cod  statusCode `json:"cod"`
	City struct {
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
	} `json:"city"`
	List []struct {
		Pressure float64 `json:"pressure"`
		Humidity float64 `json:"humidity"`
		Speed    float64 `json:"speed"`
		Deg      float64 `json:"deg"`
		Temp     struct {
			Max float64 `json:"max"`
			Min float64 `json:"min"`
		} `json:"temp"`
		Weather []struct {
			Main string `json:"main"`
			ID   int    `json:"id"`
		} `json:"weather"`
	} `json:"list"`
}

// ParseForecast decodes a daily-forecast response body. The top-level status
// code is classified before any day entry is read: 404 means the location
// does not exist, any other non-200 code is a server-side failure. The
// payload carries no per-day dates, so day i is dated startOfToday + i days
// in the local timezone.
func ParseForecast(body []byte, now time.Time) (*ParsedForecast, error) {
	var payload owmForecast
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	switch int(payload.Cod) {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrLocationNotFound
	default:
		return nil, fmt.Errorf("%w: upstream status %d", ErrServer, int(payload.Cod))
	}

	startOfToday := StartOfDay(now.In(time.Local))
	days := make([]ForecastDay, 0, len(payload.List))
	for i, entry := range payload.List {
		if len(entry.Weather) == 0 {
			return nil, fmt.Errorf("%w: day %d has no weather entry", ErrMalformedResponse, i)
		}
		days = append(days, ForecastDay{
			Date:        startOfToday.AddDate(0, 0, i).UnixMilli(),
			ConditionID: entry.Weather[0].ID,
			Description: entry.Weather[0].Main,
			MaxTemp:     entry.Temp.Max,
			MinTemp:     entry.Temp.Min,
			Humidity:    entry.Humidity,
			Pressure:    entry.Pressure,
			WindSpeed:   entry.Speed,
			WindDegrees: entry.Deg,
		})
	}

	return &ParsedForecast{
		CityName:  payload.City.Name,
		Latitude:  payload.City.Coord.Lat,
		Longitude: payload.City.Coord.Lon,
		Days:      days,
	}, nil
}
