// Package config loads service configuration with Viper.
//
// A service keeps its defaults in cmd/<service>/config.yml. Values can be
// overridden by environment variables (optionally from a .env file) whose
// names are the upper-cased key path joined with underscores, so
// server.port becomes SERVER_PORT and transcription.provider becomes
// TRANSCRIPTION_PROVIDER. With WithEnvPrefix("SYPNNA") the same keys read
// SYPNNA_SERVER_PORT and so on.
//
// # Usage
//
//	var cfg Config
//	if err := config.Load("sypnna", &cfg); err != nil {
//	    return err
//	}
package config
