package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays DIARY_* environment variables onto config. Unset
// variables leave the current values alone; malformed values panic.
func parseEnv(config *Config) {
	if err := cleanenv.ReadEnv(config); err != nil {
		panic(err)
	}
}
