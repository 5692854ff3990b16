package config

import "log"

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

// MustValid checks the config values the server cannot start without.
func (c Config) MustValid() {
	MustNonEmptyBytes(c.JWTAccessSecret, "JWT_SECRET")
	if c.DBDriver != "sqlite" {
		MustNonEmpty(c.DatabaseURL, "DATABASE_URL")
	}
}
