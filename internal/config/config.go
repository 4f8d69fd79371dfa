package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	defaultAddress             = ":4001"
	defaultRadiusKm            = 25.0
	defaultSafetyTickSeconds   = 60
	defaultEmergencyCheckHours = 4
	defaultCriticalGraceHours  = 2
	defaultRetentionMinutes    = 60
	defaultRetainForHours      = 24 * 30
	defaultRedisCity           = "johannesburg"
	defaultTokenTTLHours       = 24
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		// Driver is "mysql" or "pgx". An empty URL disables the archive.
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		City     string `yaml:"city"`
	} `yaml:"redis"`
	Firebase struct {
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"firebase"`
	S3 struct {
		Endpoint  string `yaml:"endpoint"`
		Region    string `yaml:"region"`
		Bucket    string `yaml:"bucket"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		PublicURL string `yaml:"public_url"`
	} `yaml:"s3"`
	Auth struct {
		// JWTSecret enables bearer token auth. Empty means the X-User-ID header is trusted.
		JWTSecret     string `yaml:"jwt_secret"`
		TokenTTLHours int    `yaml:"token_ttl_hours"`
	} `yaml:"auth"`
	Proximity struct {
		DefaultRadiusKm float64 `yaml:"default_radius_km"`
	} `yaml:"proximity"`
	Safety struct {
		TickSeconds              int `yaml:"tick_seconds"`
		EmergencyCheckAfterHours int `yaml:"emergency_check_after_hours"`
		CriticalGraceHours       int `yaml:"critical_grace_hours"`
	} `yaml:"safety"`
	Retention struct {
		Enabled         bool `yaml:"enabled"`
		IntervalMinutes int  `yaml:"interval_minutes"`
		RetainForHours  int  `yaml:"retain_for_hours"`
	} `yaml:"retention"`
	SeedDemoData bool `yaml:"seed_demo_data"`
}

// Default returns a configuration with every default applied.
func Default() Config {
	var cfg Config
	cfg.Server.Address = defaultAddress
	cfg.Database.Driver = "mysql"
	cfg.Redis.City = defaultRedisCity
	cfg.Auth.TokenTTLHours = defaultTokenTTLHours
	cfg.Proximity.DefaultRadiusKm = defaultRadiusKm
	cfg.Safety.TickSeconds = defaultSafetyTickSeconds
	cfg.Safety.EmergencyCheckAfterHours = defaultEmergencyCheckHours
	cfg.Safety.CriticalGraceHours = defaultCriticalGraceHours
	cfg.Retention.IntervalMinutes = defaultRetentionMinutes
	cfg.Retention.RetainForHours = defaultRetainForHours
	return cfg
}

// LoadConfig reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Address = ":" + strings.TrimPrefix(v, ":")
	}
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.URL, "DB_URL")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Redis.City, "REDIS_CITY")
	setString(&cfg.Firebase.CredentialsFile, "FIREBASE_CREDENTIALS")
	setString(&cfg.S3.Endpoint, "S3_ENDPOINT")
	setString(&cfg.S3.Region, "S3_REGION")
	setString(&cfg.S3.Bucket, "S3_BUCKET")
	setString(&cfg.S3.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.S3.SecretKey, "S3_SECRET_KEY")
	setString(&cfg.S3.PublicURL, "S3_PUBLIC_URL")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")

	if v, err := readIntEnv("REDIS_DB"); err != nil {
		return fmt.Errorf("parse REDIS_DB: %w", err)
	} else if v != nil {
		cfg.Redis.DB = *v
	}
	if v := os.Getenv("DEFAULT_RADIUS_KM"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse DEFAULT_RADIUS_KM: %w", err)
		}
		cfg.Proximity.DefaultRadiusKm = f
	}
	if v, err := readIntEnv("SAFETY_TICK_SECONDS"); err != nil {
		return fmt.Errorf("parse SAFETY_TICK_SECONDS: %w", err)
	} else if v != nil {
		cfg.Safety.TickSeconds = *v
	}
	if v, err := readIntEnv("RETENTION_HOURS"); err != nil {
		return fmt.Errorf("parse RETENTION_HOURS: %w", err)
	} else if v != nil {
		cfg.Retention.RetainForHours = *v
		cfg.Retention.Enabled = true
	}
	if v := os.Getenv("SEED_DEMO_DATA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse SEED_DEMO_DATA: %w", err)
		}
		cfg.SeedDemoData = b
	}
	return nil
}

// Validate rejects values the services cannot run with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "pgx":
	default:
		return fmt.Errorf("database.driver must be mysql or pgx, got %q", c.Database.Driver)
	}
	if c.Proximity.DefaultRadiusKm <= 0 {
		return fmt.Errorf("proximity.default_radius_km must be positive")
	}
	if c.Safety.TickSeconds <= 0 {
		return fmt.Errorf("safety.tick_seconds must be positive")
	}
	if c.Safety.EmergencyCheckAfterHours <= 0 {
		return fmt.Errorf("safety.emergency_check_after_hours must be positive")
	}
	if c.Safety.CriticalGraceHours <= 0 {
		return fmt.Errorf("safety.critical_grace_hours must be positive")
	}
	if c.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("auth.token_ttl_hours must be positive")
	}
	if c.Retention.Enabled {
		if c.Retention.IntervalMinutes <= 0 {
			return fmt.Errorf("retention.interval_minutes must be positive")
		}
		if c.Retention.RetainForHours <= 0 {
			return fmt.Errorf("retention.retain_for_hours must be positive")
		}
	}
	if c.S3.Bucket != "" && (c.S3.AccessKey == "" || c.S3.SecretKey == "") {
		return fmt.Errorf("s3.access_key and s3.secret_key are required when s3.bucket is set")
	}
	return nil
}

func (c Config) SafetyTick() time.Duration {
	return time.Duration(c.Safety.TickSeconds) * time.Second
}

func (c Config) EmergencyCheckAfter() time.Duration {
	return time.Duration(c.Safety.EmergencyCheckAfterHours) * time.Hour
}

func (c Config) CriticalGrace() time.Duration {
	return time.Duration(c.Safety.CriticalGraceHours) * time.Hour
}

func (c Config) RetentionInterval() time.Duration {
	return time.Duration(c.Retention.IntervalMinutes) * time.Minute
}

func (c Config) RetainFor() time.Duration {
	return time.Duration(c.Retention.RetainForHours) * time.Hour
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

func setString(dst *string, name string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
	}
}

func readIntEnv(name string) (*int, error) {
	val := os.Getenv(name)
	if val == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(val)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
