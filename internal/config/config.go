package config

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPort             = "5000"
	defaultDatabaseURL      = "ecowaste.db"
	defaultJWTTTL           = 168 * time.Hour
	defaultCookieSecure     = "false"
	defaultCookieSameSite   = "Lax"
	defaultCookiePath       = "/"
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultRazorpayCurrency = "INR"
	defaultFallbackAmount   = 100
	defaultMaxAmount        = 10_000_000
)

// RuntimeConfig holds env-derived settings for the API process.
type RuntimeConfig struct {
	AppEnv         string
	Port           string
	DatabaseURL    string
	JWTSecret      string
	JWTTTL         time.Duration
	CookieSecure   bool
	CookieSameSite string
	CookiePath     string
	CORSOrigins    string
	Razorpay       RazorpayConfig
	Pricing        Pricing
}

type RazorpayConfig struct {
	KeyID          string
	KeySecret      string
	Currency       string
	FallbackAmount float64
	MaxAmount      float64 // rupees, per order
}

// runtimeEnv mirrors the environment variables; koanf keys are the lower-cased names.
type runtimeEnv struct {
	AppEnv             string        `koanf:"app_env"`
	Env                string        `koanf:"env"`
	Port               string        `koanf:"port"`
	DatabaseURL        string        `koanf:"database_url"`
	JWTSecret          string        `koanf:"jwt_secret"`
	JWTTTL             time.Duration `koanf:"jwt_ttl"`
	CookieSecure       string        `koanf:"cookie_secure"`
	CookieSameSite     string        `koanf:"cookie_samesite"`
	CookiePath         string        `koanf:"cookie_path"`
	CORSAllowedOrigins string        `koanf:"cors_allowed_origins"`
	RazorpayKeyID      string        `koanf:"razorpay_key_id"`
	RazorpayKeySecret  string        `koanf:"razorpay_key_secret"`
	RazorpayCurrency   string        `koanf:"razorpay_currency"`
	FallbackAmount     float64       `koanf:"payment_fallback_amount"`
	MaxAmount          float64       `koanf:"payment_max_amount"`
	PricingFile        string        `koanf:"pricing_file"`
}

var runtimeKeys = map[string]bool{
	"app_env":                 true,
	"env":                     true,
	"port":                    true,
	"database_url":            true,
	"jwt_secret":              true,
	"jwt_ttl":                 true,
	"cookie_secure":           true,
	"cookie_samesite":         true,
	"cookie_path":             true,
	"cors_allowed_origins":    true,
	"razorpay_key_id":         true,
	"razorpay_key_secret":     true,
	"razorpay_currency":       true,
	"payment_fallback_amount": true,
	"payment_max_amount":      true,
	"pricing_file":            true,
}

func defaultRuntimeEnv() runtimeEnv {
	return runtimeEnv{
		Port:             defaultPort,
		DatabaseURL:      defaultDatabaseURL,
		JWTSecret:        defaultJWTSecret,
		JWTTTL:           defaultJWTTTL,
		CookieSecure:     defaultCookieSecure,
		CookieSameSite:   defaultCookieSameSite,
		CookiePath:       defaultCookiePath,
		RazorpayCurrency: defaultRazorpayCurrency,
		FallbackAmount:   defaultFallbackAmount,
		MaxAmount:        defaultMaxAmount,
	}
}

// Load reads the runtime settings from the environment and the tariff from
// PRICING_FILE plus PRICING_* overrides. Empty variables keep their defaults.
func Load() (*RuntimeConfig, error) {
	raw := defaultRuntimeEnv()
	k := koanf.New(".")

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(key)
			if !runtimeKeys[key] || strings.TrimSpace(value) == "" {
				return "", nil
			}
			return key, strings.TrimSpace(value)
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := k.UnmarshalWithConf("", &raw, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &raw,
			WeaklyTypedInput: true,
			TagName:          "koanf",
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal runtime config failed")
	}

	appEnv := raw.AppEnv
	if appEnv == "" {
		appEnv = raw.Env
	}
	if appEnv == "" {
		appEnv = "dev"
	}

	cfg := &RuntimeConfig{
		AppEnv:         strings.ToLower(appEnv),
		Port:           raw.Port,
		DatabaseURL:    raw.DatabaseURL,
		JWTSecret:      raw.JWTSecret,
		JWTTTL:         raw.JWTTTL,
		CookieSecure:   parseBool(raw.CookieSecure),
		CookieSameSite: raw.CookieSameSite,
		CookiePath:     raw.CookiePath,
		CORSOrigins:    raw.CORSAllowedOrigins,
		Razorpay: RazorpayConfig{
			KeyID:          raw.RazorpayKeyID,
			KeySecret:      raw.RazorpayKeySecret,
			Currency:       raw.RazorpayCurrency,
			FallbackAmount: raw.FallbackAmount,
			MaxAmount:      raw.MaxAmount,
		},
	}

	var err error
	cfg.Pricing, err = LoadPricing(raw.PricingFile)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("level=info msg=config loaded env=%s port=%s cookie_secure=%t cookie_samesite=%s", cfg.AppEnv, cfg.Port, cfg.CookieSecure, cfg.CookieSameSite)

	return cfg, nil
}

func validateConfig(cfg *RuntimeConfig) error {
	if cfg.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be > 0")
	}
	if cfg.CookiePath == "" {
		return errors.New("COOKIE_PATH must not be empty")
	}
	sameSite := strings.ToLower(strings.TrimSpace(cfg.CookieSameSite))
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return errors.New("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !cfg.CookieSecure {
		return errors.New("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}
	if cfg.Razorpay.FallbackAmount <= 0 {
		return errors.New("PAYMENT_FALLBACK_AMOUNT must be > 0")
	}
	// paise must fit in int64
	if cfg.Razorpay.MaxAmount <= 0 || cfg.Razorpay.MaxAmount > 1e15 {
		return errors.Errorf("PAYMENT_MAX_AMOUNT must be within (0, 1e15], got %v", cfg.Razorpay.MaxAmount)
	}
	if cfg.Razorpay.FallbackAmount > cfg.Razorpay.MaxAmount {
		return errors.New("PAYMENT_FALLBACK_AMOUNT must not exceed PAYMENT_MAX_AMOUNT")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return errors.New("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
			return errors.New("in prod/release RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set")
		}
		if !cfg.CookieSecure {
			return errors.New("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

// SameSite maps COOKIE_SAMESITE onto net/http.
func (c *RuntimeConfig) SameSite() http.SameSite {
	switch strings.ToLower(strings.TrimSpace(c.CookieSameSite)) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseBool(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}
