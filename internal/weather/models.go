package weather

// SyncStatus records the outcome of the most recent sync attempt. It is
// persisted once per attempt and read by API consumers to explain an empty
// forecast list.
type SyncStatus int

const (
	StatusUnknown SyncStatus = iota
	StatusOK
	StatusServerDown
	StatusServerInvalid
	StatusInvalidLocation
)

func (s SyncStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusServerDown:
		return "server_down"
	case StatusServerInvalid:
		return "server_invalid"
	case StatusInvalidLocation:
		return "invalid_location"
	default:
		return "unknown"
	}
}

// Location is a place we track forecasts for. Setting is the user-facing
// query key (a place name or "lat,lon" string) and is unique per location.
type Location struct {
	Setting   string  `json:"setting"`
	CityName  string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ForecastDay is one day-granular forecast entry. Temperatures are Celsius
// and wind speed m/s, exactly as fetched; unit conversion happens at
// presentation time.
type ForecastDay struct {
	Date        int64   `json:"date"` // epoch millis, local midnight
	ConditionID int     `json:"conditionId"`
	Description string  `json:"description"`
	MaxTemp     float64 `json:"maxTemp"`
	MinTemp     float64 `json:"minTemp"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	WindSpeed   float64 `json:"windSpeed"`
	WindDegrees float64 `json:"windDegrees"`
}

// ParsedForecast is the decoded result of one upstream response: the resolved
// location plus its per-day records.
type ParsedForecast struct {
	CityName  string
	Latitude  float64
	Longitude float64
	Days      []ForecastDay
}
