package config

import (
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/UnknownOlympus/cellsim/internal/models"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the simulation service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port the HTTP API and monitoring endpoints listen on.
// - Workers: The number of concurrent workers evaluating devices.
// - Seed: The default random seed, 0 draws a fresh seed for every run.
// - Radio: The radio environment every simulation runs in.
// - Database: Configuration settings for the tower site catalogue.
type Config struct {
	Env          string             // Env is the current environment: local, development, production.
	Port         int                // Port is the HTTP server port.
	Workers      int                // The number of concurrent workers per run.
	Seed         uint64             // Default seed for runs without one.
	CORSOrigins  []string           // Origins allowed to call the API from a browser.
	ReadTimeout  time.Duration      // HTTP server read timeout.
	WriteTimeout time.Duration      // HTTP server write timeout.
	Geocoder     GeocoderConfig     // Geocoder resolves tower addresses.
	Radio        models.Environment // Radio is the deployment every run is simulated in.
	Tracing      TracingConfig      // Tracing holds the OpenTelemetry settings.
	Database     PostgresConfig     // Database holds the postgres database configuration.
}

// GeocoderConfig selects the address resolver.
type GeocoderConfig struct {
	Type      string // google, nominatim or none.
	APIKey    string // Required for google.
	RateLimit int    // Requests per second.
}

// TracingConfig holds the OpenTelemetry exporter settings.
type TracingConfig struct {
	Enabled     bool
	Exporter    string // stdout or otlp.
	Endpoint    string
	SampleRatio float64
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
// An empty Host disables the site catalogue.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// Enabled reports whether a database was configured.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// bindings maps configuration keys to the environment variables overriding them.
var bindings = map[string]string{
	"env":                  "CELLSIM_ENV",
	"port":                 "CELLSIM_PORT",
	"workers":              "CELLSIM_WORKERS",
	"seed":                 "CELLSIM_SEED",
	"cors_origins":         "CELLSIM_CORS_ORIGINS",
	"read_timeout":         "CELLSIM_READ_TIMEOUT",
	"write_timeout":        "CELLSIM_WRITE_TIMEOUT",
	"geocoder.type":        "CELLSIM_GEOCODER_TYPE",
	"geocoder.key":         "CELLSIM_GEOCODER_KEY",
	"geocoder.rate":        "CELLSIM_GEOCODER_RATE",
	"radio.frequency_mhz":  "CELLSIM_RADIO_FREQUENCY_MHZ",
	"radio.tower_height_m": "CELLSIM_RADIO_TOWER_HEIGHT_M",
	"radio.user_height_m":  "CELLSIM_RADIO_USER_HEIGHT_M",
	"radio.bandwidth_hz":   "CELLSIM_RADIO_BANDWIDTH_HZ",
	"radio.devices":        "CELLSIM_RADIO_DEVICES",
	"radio.radius_min_m":   "CELLSIM_RADIO_RADIUS_MIN_M",
	"radio.radius_max_m":   "CELLSIM_RADIO_RADIUS_MAX_M",
	"radio.class_shares":   "CELLSIM_RADIO_CLASS_SHARES",
	"tracing.enabled":      "CELLSIM_TRACING_ENABLED",
	"tracing.exporter":     "CELLSIM_TRACING_EXPORTER",
	"tracing.endpoint":     "CELLSIM_TRACING_ENDPOINT",
	"tracing.sample_ratio": "CELLSIM_TRACING_SAMPLE_RATIO",
	"database.host":        "DB_HOST",
	"database.port":        "DB_PORT",
	"database.username":    "DB_USERNAME",
	"database.password":    "DB_PASSWORD",
	"database.name":        "DB_NAME",
}

// MustLoad reads the configuration from the environment, a .env file and the
// optional YAML file named by CELLSIM_CONFIG_FILE, in that order of precedence.
// It panics when a value cannot be parsed or the radio parameters are unusable.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}

	if path := os.Getenv("CELLSIM_CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	port, err := cast.ToIntE(v.Get("port"))
	if err != nil {
		panic("failed to parse port for http server from configuration")
	}

	workers, err := cast.ToIntE(v.Get("workers"))
	if err != nil || workers <= 0 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	seed, err := cast.ToUint64E(v.Get("seed"))
	if err != nil {
		panic("failed to parse seed from configuration, must be an unsigned integer")
	}

	readTimeout, err := cast.ToDurationE(v.Get("read_timeout"))
	if err != nil {
		panic("failed to parse read timeout from configuration")
	}

	writeTimeout, err := cast.ToDurationE(v.Get("write_timeout"))
	if err != nil {
		panic("failed to parse write timeout from configuration")
	}

	rateLimit, err := cast.ToIntE(v.Get("geocoder.rate"))
	if err != nil || rateLimit <= 0 {
		panic("failed to parse geocoder rate limit from configuration, must be a positive integer")
	}

	tracingEnabled, err := cast.ToBoolE(v.Get("tracing.enabled"))
	if err != nil {
		panic("failed to parse tracing flag from configuration")
	}

	sampleRatio, err := cast.ToFloat64E(v.Get("tracing.sample_ratio"))
	if err != nil || sampleRatio < 0 || sampleRatio > 1 {
		panic("failed to parse tracing sample ratio from configuration, must be within [0, 1]")
	}

	return &Config{
		Env:          v.GetString("env"),
		Port:         port,
		Workers:      workers,
		Seed:         seed,
		CORSOrigins:  splitList(v.Get("cors_origins")),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Geocoder: GeocoderConfig{
			Type:      strings.ToLower(v.GetString("geocoder.type")),
			APIKey:    v.GetString("geocoder.key"),
			RateLimit: rateLimit,
		},
		Radio: mustLoadRadio(v),
		Tracing: TracingConfig{
			Enabled:     tracingEnabled,
			Exporter:    v.GetString("tracing.exporter"),
			Endpoint:    v.GetString("tracing.endpoint"),
			SampleRatio: sampleRatio,
		},
		Database: PostgresConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			User:     v.GetString("database.username"),
			Password: v.GetString("database.password"),
			Name:     v.GetString("database.name"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	radio := models.DefaultEnvironment()

	v.SetDefault("env", "production")
	v.SetDefault("port", 8080)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("seed", 0)
	v.SetDefault("cors_origins", "*")
	v.SetDefault("read_timeout", "5s")
	v.SetDefault("write_timeout", "10s")
	v.SetDefault("geocoder.type", "nominatim")
	v.SetDefault("geocoder.rate", 1)
	v.SetDefault("radio.frequency_mhz", radio.FrequencyMHz)
	v.SetDefault("radio.tower_height_m", radio.TowerHeightM)
	v.SetDefault("radio.user_height_m", radio.UserHeightM)
	v.SetDefault("radio.bandwidth_hz", radio.BandwidthHz)
	v.SetDefault("radio.devices", radio.DeviceCount)
	v.SetDefault("radio.radius_min_m", radio.RadiusMinM)
	v.SetDefault("radio.radius_max_m", radio.RadiusMaxM)
	v.SetDefault("radio.class_shares", radio.ClassDistribution.String())
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", "stdout")
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("database.port", "5432")
}

// mustLoadRadio overlays the configured radio parameters on the reference
// deployment and panics on a set the models cannot work with.
func mustLoadRadio(v *viper.Viper) models.Environment {
	radio := models.DefaultEnvironment()

	floats := []struct {
		key string
		dst *float64
	}{
		{"radio.frequency_mhz", &radio.FrequencyMHz},
		{"radio.tower_height_m", &radio.TowerHeightM},
		{"radio.user_height_m", &radio.UserHeightM},
		{"radio.bandwidth_hz", &radio.BandwidthHz},
		{"radio.radius_min_m", &radio.RadiusMinM},
		{"radio.radius_max_m", &radio.RadiusMaxM},
	}
	for _, f := range floats {
		value, err := cast.ToFloat64E(v.Get(f.key))
		if err != nil {
			panic("failed to parse radio parameters from configuration, must be numbers")
		}
		*f.dst = value
	}

	devices, err := cast.ToIntE(v.Get("radio.devices"))
	if err != nil {
		panic("failed to parse radio parameters from configuration, must be numbers")
	}
	radio.DeviceCount = devices

	shares, err := models.ParseDistribution(v.GetString("radio.class_shares"))
	if err != nil {
		panic("failed to parse service class shares from configuration, must be tag:fraction pairs summing to 1")
	}
	radio.ClassDistribution = shares

	if err = radio.Validate(); err != nil {
		panic(err.Error())
	}

	return radio
}

// splitList accepts either a YAML sequence or a comma separated string.
func splitList(raw any) []string {
	if s, ok := raw.(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}

	return cast.ToStringSlice(raw)
}
