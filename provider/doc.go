// Package provider is a small generic framework for swappable backends.
//
// A Registry maps names to factories that build a provider from a typed
// config value. Providers are built per use, so callers and tests can swap
// implementations without touching process-wide state.
//
//	reg := provider.NewRegistry[transcription.Provider, transcription.ProviderConfig]()
//	reg.RegisterFactory("supadata", supadata.NewFactory(client))
//	p, err := reg.Create("supadata", cfg)
package provider
