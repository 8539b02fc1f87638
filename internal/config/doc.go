// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// Credentials left empty in the file are resolved from the APCA_* environment
// variables by the auth package.
package config
