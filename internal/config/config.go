package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	AdminKey            string   // guards the catalog index refresh endpoint
	OpenFactsEndpoints  []string // priority-ordered external catalog base URLs
	OpenFactsUserAgent  string   // required by the Open Facts API policy
}

const defaultUserAgent = "PushToHold/1.0 (https://pushtohold.de; contact@pushtohold.de)"

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	userAgent := viper.GetString("OPENFACTS_USER_AGENT")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	var endpoints []string
	if raw := viper.GetString("OPENFACTS_ENDPOINTS"); raw != "" {
		for _, e := range strings.Split(raw, ",") {
			if e = strings.TrimSpace(e); e != "" {
				endpoints = append(endpoints, e)
			}
		}
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		RedisURL:            viper.GetString("REDIS_URL"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AdminKey:            viper.GetString("ADMIN_KEY"),
		OpenFactsEndpoints:  endpoints,
		OpenFactsUserAgent:  userAgent,
	}, nil
}
