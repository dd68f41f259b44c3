package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that the values a running server cannot do
// without are present. Development defaults cover the rest.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.JWTSecret == "" && !IsDevelopment() && !IsTest() {
		errs = append(errs, "JWT_SECRET (or the jwt_secret Docker secret) is required")
	}
	if cfg.DBUser == "" && IsProduction() {
		errs = append(errs, "DB_USER (or the db_user Docker secret) is required in production")
	}
	if cfg.DBPassword == "" && IsProduction() {
		errs = append(errs, "DB_PASSWORD (or the db_password Docker secret) is required in production")
	}
	if cfg.ServerPort == "" {
		errs = append(errs, "SERVER_PORT must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
