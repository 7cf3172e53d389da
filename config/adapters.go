package config

import (
	"os"

	"nfl-pickem-go/database"
	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"
	"nfl-pickem-go/services"
)

// ToDatabaseConfig converts Config to database.Config
func (c *Config) ToDatabaseConfig() database.Config {
	return database.Config{
		URI:      c.Database.URI,
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		Username: c.Database.Username,
		Password: c.Database.Password,
		Database: c.Database.Database,
	}
}

// ToLoggingConfig converts Config to logging.Config
func (c *Config) ToLoggingConfig() logging.Config {
	cfg := logging.Config{
		Level:       c.Logging.Level,
		Output:      os.Stdout,
		Prefix:      c.Logging.Prefix,
		EnableColor: c.Logging.EnableColor,
	}
	if c.Logging.EnableFile {
		cfg.LogDir = c.Logging.LogDir
	}
	return cfg
}

// ToOddsAPIConfig converts Config to services.OddsAPIConfig
func (c *Config) ToOddsAPIConfig() services.OddsAPIConfig {
	return services.OddsAPIConfig{
		APIKey:            c.Odds.APIKey,
		BaseURL:           c.Odds.BaseURL,
		RequestsPerSecond: c.Odds.RequestsPerSecond,
		Timeout:           c.Odds.Timeout,
	}
}

// ToSeasonCalendar converts Config to services.SeasonCalendar
func (c *Config) ToSeasonCalendar() services.SeasonCalendar {
	return services.SeasonCalendar{
		Week1Start: c.App.Week1Start,
		Weeks:      c.App.NFLWeeks,
	}
}

// ToAdmin returns the configured admin credentials
func (c *Config) ToAdmin() models.Admin {
	return models.Admin{
		Username:     c.Auth.AdminUsername,
		PasswordHash: c.Auth.AdminPasswordHash,
	}
}
