package config

func LoadTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8081,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Name:     "rallyround_test",
			User:     "test_user",
			Password: "test_password",
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		},
		Guard: GuardConfig{
			App:           "public",
			SessionCookie: "rr_session",
		},
	}
}
