package filings

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	VERSION = "0.1.0"

	// SecEmailEnvVar is the environment variable name for SEC email
	SecEmailEnvVar = "SEC_EMAIL"

	// DefaultRequestsPerSecond is the SEC fair-access ceiling
	DefaultRequestsPerSecond = 10
)

var errMissingSecEmail = fmt.Errorf("SEC email required: set %s environment variable or use --email flag", SecEmailEnvVar)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Config holds runtime settings read from the environment.
type Config struct {
	SecEmail          string        `validate:"omitempty,email"`
	LogLevel          string        `validate:"oneof=debug info warn warning error"`
	FetchTimeout      time.Duration `validate:"gt=0"`
	PriorFetchTimeout time.Duration `validate:"gt=0"`
	RequestsPerSecond float64       `validate:"gt=0,lte=10"`
	ConsensusFile     string        `validate:"omitempty,filepath"`
}

// LoadConfig builds a Config from environment variables and validates it.
//
//	SEC_EMAIL                contact address for the SEC User-Agent (required to fetch)
//	LOG_LEVEL                debug|info|warn|error (default info)
//	FETCH_TIMEOUT            per-document fetch timeout (default 30s)
//	PRIOR_FETCH_TIMEOUT      prior-period fetch timeout (default 15s)
//	SEC_REQUESTS_PER_SECOND  request rate ceiling (default 10)
//	CONSENSUS_FILE           optional YAML consensus estimates
//
// An unset SEC_EMAIL is not an error here; NewClientFromConfig rejects it.
func LoadConfig() (*Config, error) {
	c := ReadConfig()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ReadConfig reads the environment without validating, so callers can
// apply flag overrides before calling Validate.
func ReadConfig() *Config {
	return &Config{
		SecEmail:          getEnv(SecEmailEnvVar, ""),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		FetchTimeout:      getDuration("FETCH_TIMEOUT", "30s"),
		PriorFetchTimeout: getDuration("PRIOR_FETCH_TIMEOUT", "15s"),
		RequestsPerSecond: getFloat("SEC_REQUESTS_PER_SECOND", DefaultRequestsPerSecond),
		ConsensusFile:     getEnv("CONSENSUS_FILE", ""),
	}
}

// Validate checks field constraints and, when set, the SEC email.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.SecEmail != "" {
		if err := ValidateSecEmail(c.SecEmail); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return nil
}

// GetSecEmail retrieves email from environment variable or returns error
func GetSecEmail() (string, error) {
	email := os.Getenv(SecEmailEnvVar)
	if email == "" {
		return "", errMissingSecEmail
	}
	return email, ValidateSecEmail(email)
}

// ValidateSecEmail rejects malformed and placeholder addresses.
func ValidateSecEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	if strings.HasSuffix(email, "example.com") {
		return fmt.Errorf("use a real email address, not example.com: %s", email)
	}
	return nil
}

// BuildUserAgent creates a proper SEC User-Agent string
func BuildUserAgent(email string) string {
	return fmt.Sprintf("go-filings/%s (%s)", VERSION, email)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}
