package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Fallbacks       FallbackConfig       `mapstructure:"fallbacks"`
	AWS             AWSConfig            `mapstructure:"aws"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type ServiceType `mapstructure:"type"`
	Port string      `mapstructure:"port"`
	// Cron spec used by the WORKER service to pre-warm rate caches.
	PrewarmSpec string `mapstructure:"prewarmSpec"`
}

type DatabasesConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type ExternalClientConfig struct {
	Quotes      QuotesConfig  `mapstructure:"quotes"`
	Frankfurter BaseURLConfig `mapstructure:"frankfurter"`
	OpenERAPI   BaseURLConfig `mapstructure:"openERApi"`
	WorldBank   BaseURLConfig `mapstructure:"worldBank"`
	TaxFeed     BaseURLConfig `mapstructure:"taxFeed"`
	// Per-call request timeout in seconds shared by every external client.
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type QuotesConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	Token   string `mapstructure:"token"`
	// When set, the token is resolved from AWS Secrets Manager at startup.
	TokenSecretID string `mapstructure:"tokenSecretId"`
}

type BaseURLConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
}

// FallbackConfig holds the static constants used when every remote source of
// a rate kind fails. A zero value means no fallback is configured and provider
// exhaustion becomes a hard error.
type FallbackConfig struct {
	CurrencyUSDINR float64 `mapstructure:"currencyUsdInr"`
	InflationIndia float64 `mapstructure:"inflationIndia"`
	InflationUS    float64 `mapstructure:"inflationUs"`
	StaticTaxRates bool    `mapstructure:"staticTaxRates"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
