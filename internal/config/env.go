package config

import "os"

func applyEnv(c *Config) {
	if addr, ok := os.LookupEnv("MINES_ADDR"); ok {
		c.Addr = addr
	}
	if mode, ok := os.LookupEnv("MINES_MODE"); ok {
		c.Mode = mode
	}
	if secret, ok := os.LookupEnv("MINES_SESSION_SECRET"); ok {
		c.Session.Secret = secret
	}
	if level, ok := os.LookupEnv("MINES_LOG_LEVEL"); ok {
		c.Log.Level = level
	}
}
