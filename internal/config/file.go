package config

import "time"

// fileConfig is the YAML shape of the config file. Durations are written as
// Go duration strings ("30m", "10s"); malformed values are ignored like their
// environment counterparts.
type fileConfig struct {
	Database struct {
		URL             string `yaml:"url"`
		MaxOpen         int    `yaml:"max_open"`
		MaxIdle         int    `yaml:"max_idle"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		ConnMaxIdleTime string `yaml:"conn_max_idle_time"`
	} `yaml:"database"`

	HTTP struct {
		Addr            string `yaml:"addr"`
		RouteStyle      string `yaml:"route_style"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"http"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

func (f fileConfig) apply(c *Config) {
	setString(&c.DatabaseURL, f.Database.URL)
	setInt(&c.MaxOpenConns, f.Database.MaxOpen)
	setInt(&c.MaxIdleConns, f.Database.MaxIdle)
	setDuration(&c.ConnMaxLifetime, f.Database.ConnMaxLifetime)
	setDuration(&c.ConnMaxIdleTime, f.Database.ConnMaxIdleTime)

	setString(&c.HTTPAddr, f.HTTP.Addr)
	setString(&c.RouteStyle, f.HTTP.RouteStyle)
	setDuration(&c.ShutdownTimeout, f.HTTP.ShutdownTimeout)

	setString(&c.LogLevel, f.Log.Level)
	setString(&c.LogFormat, f.Log.Format)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v string) {
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
	}
}
