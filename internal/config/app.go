package config

type AppConfig struct {
	Server ServerConfig
	Log    LogConfig
}

// LoadApp loads logging first so a bad server config can still be reported through the logger.
func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{Log: logCfg}, err
	}
	return AppConfig{
		Server: serverCfg,
		Log:    logCfg,
	}, nil
}
