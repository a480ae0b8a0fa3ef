package config

const (
	DefaultLocaleSite     = "US"
	DefaultLocaleLanguage = "en"
	DefaultLocaleCurrency = "USD"

	DefaultHost = "localhost"
	DefaultPort = 8090
)

// GetDefaultConfig returns the configuration used when nothing else is set.
func GetDefaultConfig() Config {
	return Config{
		DigiKey: DigiKeyConfig{
			UseSandbox: true,
			Locale: LocaleConfig{
				Site:     DefaultLocaleSite,
				Language: DefaultLocaleLanguage,
				Currency: DefaultLocaleCurrency,
			},
		},
		Server: ServerConfig{
			Transport: MCPTransportStdio,
			Host:      DefaultHost,
			Port:      DefaultPort,
		},
		LogLevel: "info",
	}
}
