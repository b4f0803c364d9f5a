package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/forecastd/forecastd/internal/store"
	"github.com/forecastd/forecastd/internal/weather"
)

var validate = validator.New()

// Deps bundles what the HTTP layer needs: the store, the fallback location
// setting, and a trigger for on-demand syncs.
type Deps struct {
	Store           *store.DB
	DefaultLocation string
	SyncNow         func()
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		var q forecastQuery
		q.Days = c.QueryInt("days", 14)
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctx := c.Context()
		setting, err := deps.Store.PreferredLocation(ctx, deps.DefaultLocation)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read preferences")
		}
		unit, err := deps.Store.TemperatureUnit(ctx)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read preferences")
		}
		pack, err := deps.Store.IconPack(ctx)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read preferences")
		}

		now := time.Now()
		rows, err := deps.Store.ForecastsFrom(ctx, setting, now.UnixMilli())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read forecasts")
		}
		if len(rows) > q.Days {
			rows = rows[:q.Days]
		}

		days := make([]forecastView, 0, len(rows))
		for _, r := range rows {
			days = append(days, presentForecast(r, unit, pack, now))
		}
		return c.JSON(fiber.Map{
			"location": setting,
			"days":     days,
		})
	})

	v1.Get("/forecast/today", func(c *fiber.Ctx) error {
		ctx := c.Context()
		setting, err := deps.Store.PreferredLocation(ctx, deps.DefaultLocation)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read preferences")
		}
		unit, err := deps.Store.TemperatureUnit(ctx)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read preferences")
		}
		pack, err := deps.Store.IconPack(ctx)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read preferences")
		}

		now := time.Now()
		row, err := deps.Store.ForecastForDay(ctx, setting, now.UnixMilli())
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no forecast for today")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read forecast")
		}
		return c.JSON(presentForecast(*row, unit, pack, now))
	})

	v1.Get("/status", func(c *fiber.Ctx) error {
		status, err := deps.Store.SyncStatus(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read sync status")
		}
		return c.JSON(fiber.Map{"status": status.String()})
	})

	v1.Put("/location", func(c *fiber.Ctx) error {
		var req locationRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctx := c.Context()
		if err := deps.Store.SetPreferredLocation(ctx, req.Location); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save location")
		}
		if req.Latitude != nil && req.Longitude != nil {
			if err := deps.Store.SetCachedCoordinates(ctx, *req.Latitude, *req.Longitude); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to save coordinates")
			}
		} else if err := deps.Store.ClearCachedCoordinates(ctx); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to clear coordinates")
		}

		// Cached rows belong to the old location; drop them and resync.
		if _, err := deps.Store.DeleteAllForecasts(ctx); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to invalidate forecasts")
		}
		if err := deps.Store.SetSyncStatus(ctx, weather.StatusUnknown); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to reset sync status")
		}
		if deps.SyncNow != nil {
			deps.SyncNow()
		}
		return c.JSON(fiber.Map{"location": req.Location})
	})

	v1.Put("/units", func(c *fiber.Ctx) error {
		var req unitsRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := deps.Store.SetTemperatureUnit(c.Context(), weather.Unit(req.Unit)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save unit preference")
		}
		return c.JSON(fiber.Map{"unit": req.Unit})
	})

	v1.Put("/notifications", func(c *fiber.Ctx) error {
		var req notificationsRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := deps.Store.SetNotificationsEnabled(c.Context(), *req.Enabled); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save notification preference")
		}
		return c.JSON(fiber.Map{"enabled": *req.Enabled})
	})
}

type forecastQuery struct {
	Days int `validate:"required,min=1,max=16"`
}

type locationRequest struct {
	Location  string   `json:"location" validate:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type unitsRequest struct {
	Unit string `json:"unit" validate:"required,oneof=metric imperial"`
}

type notificationsRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// forecastView is one stored day with the presentation transforms applied:
// display units, icon, description, compass wind, friendly day label.
type forecastView struct {
	Date          int64   `json:"date"`
	Day           string  `json:"day"`
	City          string  `json:"city"`
	ConditionID   int     `json:"conditionId"`
	Icon          string  `json:"icon"`
	ArtURL        string  `json:"artUrl,omitempty"`
	Description   string  `json:"description"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Humidity      float64 `json:"humidity"`
	Pressure      float64 `json:"pressure"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection string  `json:"windDirection"`
}

func presentForecast(r store.ForecastRow, unit weather.Unit, pack string, now time.Time) forecastView {
	return forecastView{
		Date:          r.Date,
		Day:           weather.FriendlyDay(r.Date, now),
		City:          r.CityName,
		ConditionID:   r.ConditionID,
		Icon:          string(weather.IconForCondition(r.ConditionID)),
		ArtURL:        weather.ArtURL(pack, r.ConditionID),
		Description:   weather.DescriptionForCondition(r.ConditionID),
		High:          weather.DisplayTemperature(r.MaxTemp, unit),
		Low:           weather.DisplayTemperature(r.MinTemp, unit),
		Humidity:      r.Humidity,
		Pressure:      r.Pressure,
		WindSpeed:     weather.DisplayWindSpeed(r.WindSpeed, unit),
		WindDirection: weather.CompassDirection(r.WindDegrees),
	}
}
