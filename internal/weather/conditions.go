package weather

import "fmt"

// Icon identifies the art asset for a condition-code range.
type Icon string

const (
	IconStorm       Icon = "storm"
	IconLightRain   Icon = "light_rain"
	IconRain        Icon = "rain"
	IconSnow        Icon = "snow"
	IconFog         Icon = "fog"
	IconClear       Icon = "clear"
	IconLightClouds Icon = "light_clouds"
	IconClouds      Icon = "clouds"
	IconUnknown     Icon = "unknown"
)

// IconForCondition maps an OpenWeatherMap condition code to an icon id over
// fixed disjoint ranges. Codes outside every range yield IconUnknown.
func IconForCondition(code int) Icon {
	switch {
	case code >= 200 && code <= 232:
		return IconStorm
	case code >= 300 && code <= 321:
		return IconLightRain
	case code >= 500 && code <= 504:
		return IconRain
	case code == 511:
		return IconSnow
	case code >= 520 && code <= 531:
		return IconRain
	case code >= 600 && code <= 622:
		return IconSnow
	case code >= 701 && code <= 760:
		return IconFog
	case code == 761 || code == 781:
		return IconStorm
	case code == 800:
		return IconClear
	case code == 801:
		return IconLightClouds
	case code >= 802 && code <= 804:
		return IconClouds
	default:
		return IconUnknown
	}
}

// ArtURL renders an icon-pack URL for a condition code. packFormat is a
// printf-style format with one %s slot for the icon name; an unknown code
// yields an empty URL.
func ArtURL(packFormat string, code int) string {
	icon := IconForCondition(code)
	if icon == IconUnknown || packFormat == "" {
		return ""
	}
	return fmt.Sprintf(packFormat, string(icon))
}

// conditionDescriptions is the exact-match table for codes outside the 2xx
// and 3xx ranges. Many-to-one on purpose: several codes share a string.
var conditionDescriptions = map[int]string{
	500: "Light Rain",
	501: "Rain",
	502: "Heavy Rain",
	503: "Intense Rain",
	504: "Extreme Rain",
	511: "Freezing Rain",
	520: "Light Shower",
	531: "Ragged Shower",
	600: "Light Snow",
	601: "Snow",
	602: "Heavy Snow",
	611: "Sleet",
	612: "Shower Sleet",
	615: "Rain and Snow",
	616: "Rain and Snow",
	620: "Shower Snow",
	621: "Shower Snow",
	622: "Shower Snow",
	701: "Mist",
	711: "Smoke",
	721: "Haze",
	731: "Sand, Dust Whirls",
	741: "Fog",
	751: "Sand",
	761: "Dust",
	762: "Volcanic Ash",
	771: "Squalls",
	781: "Tornado",
	800: "Clear",
	801: "Mostly Clear",
	802: "Scattered Clouds",
	803: "Broken Clouds",
	804: "Overcast Clouds",
	900: "Tornado",
	901: "Tropical Storm",
	902: "Hurricane",
	903: "Cold",
	904: "Hot",
	905: "Windy",
	906: "Hail",
	951: "Calm",
	952: "Light Breeze",
	953: "Gentle Breeze",
	954: "Moderate Breeze",
	955: "Fresh Breeze",
	956: "Strong Breeze",
	957: "High Wind",
	958: "Gale",
	959: "Severe Gale",
	960: "Storm",
	961: "Violent Storm",
	962: "Hurricane",
}

// DescriptionForCondition maps a condition code to a human-readable string.
// The 2xx and 3xx ranges map as ranges; everything else is exact-match.
// Unrecognized codes produce an explicit "Unknown (<code>)" rather than
// failing.
func DescriptionForCondition(code int) string {
	switch {
	case code >= 200 && code <= 232:
		return "Storm"
	case code >= 300 && code <= 321:
		return "Light Rain"
	}
	if desc, ok := conditionDescriptions[code]; ok {
		return desc
	}
	return fmt.Sprintf("Unknown (%d)", code)
}
