package config // package config loads application configuration from environment variables

import (
    "errors"  // errors joins every missing variable into one report
    "fmt"     // fmt formats the per-variable messages
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Strings are used for identifiers and secrets,
// ints for durations and costs.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign JWTs
    AccessTTLMin   int    // access token time‑to‑live in minutes
    RefreshTTLDays int    // refresh token time‑to‑live in days
    BcryptCost     int    // bcrypt cost for password hashing
    RabbitURL      string // AMQP URL; empty disables booking events
    BookingLogDir  string // directory of the booking event log
    LogLevel       string // zap level name (debug, info, warn, error)
}

// Load reads configuration values from environment variables.  Required
// variables are enforced by must(); every missing or malformed value is
// reported in the returned error so a misconfigured deployment can be fixed
// in one go.
func Load() (Config, error) {
    l := &loader{}
    cfg := Config{
        Env:            l.must("APP_ENV"),                               // environment (dev/test/prod)
        Port:           l.must("APP_PORT"),                              // port to bind the HTTP server
        DBUser:         l.must("DB_USER"),                               // database user
        DBPass:         os.Getenv("DB_PASS"),                            // database password (empty allowed)
        DBHost:         l.must("DB_HOST"),                               // database host
        DBPort:         l.must("DB_PORT"),                               // database port
        DBName:         l.must("DB_NAME"),                               // database name
        JWTSecret:      l.must("JWT_SECRET"),                            // secret used for signing JWTs
        AccessTTLMin:   l.mustInt("ACCESS_TOKEN_TTL_MIN"),               // TTL for access tokens in minutes
        RefreshTTLDays: l.mustInt("REFRESH_TOKEN_TTL_DAYS"),             // TTL for refresh tokens in days
        BcryptCost:     l.mustInt("BCRYPT_COST"),                        // bcrypt cost factor
        RabbitURL:      os.Getenv("RABBITMQ_URL"),                       // optional broker
        BookingLogDir:  envStr("BOOKING_LOG_DIR", "logs"),               // consumer output directory
        LogLevel:       envStr("LOG_LEVEL", "info"),                     // logger level
    }
    if len(l.errs) > 0 {
        return Config{}, errors.Join(l.errs...)
    }
    return cfg, nil
}

// loader accumulates problems found while reading variables.
type loader struct {
    errs []error
}

// must retrieves the value of a required environment variable.  An unset
// or empty variable is recorded as an error.
func (l *loader) must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        l.errs = append(l.errs, fmt.Errorf("missing required env var: %s", key))
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func (l *loader) mustInt(key string) int {
    s := l.must(key)
    if s == "" {
        return 0
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        l.errs = append(l.errs, fmt.Errorf("invalid int for %s: %q", key, s))
    }
    return n
}
