package config

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "SERVICE"

type Config struct {
	HTTP       HTTPConfig       `mapstructure:"http"`
	FixedFloat FixedFloatConfig `mapstructure:"fixedfloat"`
	Exchange   ExchangeConfig   `mapstructure:"exchange"`
	DB         DBConfig         `mapstructure:"db"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Web        WebConfig        `mapstructure:"web"`
}

type HTTPConfig struct {
	Addr         string        `mapstructure:"addr" default:":8080" validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" default:"15s"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" default:"15s"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" default:"60s"`

	// AllowedOrigins is a comma separated CORS allow list.
	AllowedOrigins string `mapstructure:"allowed_origins" default:"*"`
}

type FixedFloatConfig struct {
	BaseURL   string        `mapstructure:"base_url" default:"https://ff.io/api/v2" validate:"required,url"`
	APIKey    string        `mapstructure:"api_key" validate:"required"`
	APISecret string        `mapstructure:"api_secret" validate:"required"`
	Timeout   time.Duration `mapstructure:"timeout" default:"30s"`
}

type ExchangeConfig struct {
	// SettlementCurrency is the leg every local order is paired against.
	SettlementCurrency  string `mapstructure:"settlement_currency" default:"BTCLN" validate:"required"`
	SupportedCurrencies string `mapstructure:"supported_currencies" default:"USDCETH,USDTETH,USDTTRC" validate:"required"`
	OrderType           string `mapstructure:"order_type" default:"fixed" validate:"oneof=fixed float"`
}

type DBConfig struct {
	User     string `mapstructure:"user" default:"root"`
	Password string `mapstructure:"password"`
	Addr     string `mapstructure:"addr" default:"127.0.0.1:3306"`
	Name     string `mapstructure:"name" default:"fixedfloat-go"`
}

type AuthConfig struct {
	// PwdKey is a base64url secret mixed into every password hash.
	PwdKey        string        `mapstructure:"pwd_key" validate:"required"`
	TokenDuration time.Duration `mapstructure:"token_duration" default:"30m"`
	PurgeInterval time.Duration `mapstructure:"purge_interval" default:"10m"`
	CookieSecure  bool          `mapstructure:"cookie_secure" default:"true"`
}

type WebConfig struct {
	Folder string `mapstructure:"folder" default:"web-folder/"`
}

var keys = []string{
	"http.addr", "http.read_timeout", "http.write_timeout", "http.idle_timeout", "http.allowed_origins",
	"fixedfloat.base_url", "fixedfloat.api_key", "fixedfloat.api_secret", "fixedfloat.timeout",
	"exchange.settlement_currency", "exchange.supported_currencies", "exchange.order_type",
	"db.user", "db.password", "db.addr", "db.name",
	"auth.pwd_key", "auth.token_duration", "auth.purge_interval", "auth.cookie_secure",
	"web.folder",
}

// Load builds the configuration from defaults, an optional config file named
// by SERVICE_CONFIG_FILE, and SERVICE_* environment variables, in that order
// of precedence.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}
	if err := v.BindEnv("config_file"); err != nil {
		return nil, err
	}

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := new(Config)
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("applying config defaults: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.Auth.PepperBytes(); err != nil {
		return nil, fmt.Errorf("invalid config: auth.pwd_key: %w", err)
	}

	return cfg, nil
}

func (c *ExchangeConfig) Supported() []string {
	var out []string
	for _, code := range strings.Split(c.SupportedCurrencies, ",") {
		if code = strings.TrimSpace(code); code != "" {
			out = append(out, strings.ToUpper(code))
		}
	}
	return out
}

func (c *HTTPConfig) Origins() []string {
	var out []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

func (c *AuthConfig) PepperBytes() ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(c.PwdKey, "="))
}
