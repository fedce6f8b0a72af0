package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port                   string `env:"PORT" envDefault:"8080"`
	DBUser                 string `env:"DB_USER,required"`
	DBPassword             string `env:"DB_PASSWORD,required"`
	DBHost                 string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME,required"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID"`
	StorageBucket     string `env:"STORAGE_BUCKET"`
	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
	GeminiDetectModel string `env:"GEMINI_DETECT_MODEL" envDefault:"gemini-2.5-flash"`

	// Hours a confirmed order may sit unshipped before the expiry sweep
	// (cmd/expire-orders) flips it to expired.
	OrderExpiryHours int `env:"ORDER_EXPIRY_HOURS" envDefault:"72"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
