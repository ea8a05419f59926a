package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	Port           string        `mapstructure:"PORT"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	GeocoderURL    string        `mapstructure:"GEOCODER_URL"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	BcryptCost     int           `mapstructure:"BCRYPT_COST"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("GEOCODER_URL", "http://ws.usig.buenosaires.gob.ar/geocoder/2.2/reversegeocoding")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("BCRYPT_COST", 10)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
