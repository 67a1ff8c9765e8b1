// Package env is the raw os.Getenv shim used before the envconfig-backed
// config is loaded, e.g. for KARIKADAI_ENV in the binaries' bootstrap.
package env

import "os"

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
