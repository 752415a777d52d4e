package config

import "os"

// Config holds the settings for one app server instance. The two binaries
// (student app and admin console) load the same shape; only defaults differ.
type Config struct {
	Addr           string
	APIURL         string
	GoogleClientID string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load resolves configuration from flags and environment. Flag values win
// for the listen address; the API base URL and OAuth client id come from
// the environment so the same binary serves every deployment.
func Load(flagAddr string) Config {
	return Config{
		Addr:           flagAddr,
		APIURL:         getEnv("SUBNOTE_API_URL", "http://localhost:8000"),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
	}
}
