package store

const schema = `
CREATE TABLE IF NOT EXISTS location (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	location_setting TEXT NOT NULL UNIQUE,
	city_name TEXT NOT NULL,
	coord_lat REAL NOT NULL,
	coord_long REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS weather (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	location_id INTEGER NOT NULL,
	date INTEGER NOT NULL, -- epoch millis, normalized to local midnight
	weather_id INTEGER NOT NULL CHECK (weather_id >= 0),
	short_desc TEXT NOT NULL,
	min REAL NOT NULL,
	max REAL NOT NULL,
	humidity REAL NOT NULL,
	pressure REAL NOT NULL,
	wind REAL NOT NULL,
	degrees REAL NOT NULL,
	FOREIGN KEY(location_id) REFERENCES location(id),
	UNIQUE(location_id, date)
);

CREATE INDEX IF NOT EXISTS idx_weather_date ON weather(date);

CREATE TABLE IF NOT EXISTS prefs (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`
