// Package config loads service configuration.
//
// Values are layered in this order, later layers winning:
//
//  1. a YAML file (./cmd/<service>/config.yml, ./config/config.yml, ./config.yml)
//  2. a .env file loaded into the process environment (godotenv)
//  3. process environment variables
//
// Every leaf field of the target struct is bound to the environment variable
// named by its upper-cased dotted key with dots turned into underscores, so
// AUTH_JWT_SECRET populates auth.jwt.secret and AUTH_PASSWORD_BCRYPT_COST
// populates auth.password.bcrypt_cost.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("arraygate", &cfg)
package config
