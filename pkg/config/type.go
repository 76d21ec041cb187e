package config

type ZappiMonitorConfig struct {
	// Hub serial and API key from the myenergi app
	MyenergiUsername string `toml:"myenergi_username"`
	MyenergiPassword string `toml:"myenergi_password"`
	DirectorURL      string `toml:"director_url"`

	PushoverAppToken string `toml:"pushover_app_token"`
	PushoverUserKey  string `toml:"pushover_user_key"`

	PollIntervalSeconds  int `toml:"poll_interval_seconds"`
	ExportThresholdWatts int `toml:"export_threshold_watts"`
	StatsWindowHours     int `toml:"stats_window_hours"`

	// Status API, disabled when listen_port is 0
	ListenAddress string `toml:"listen_address"`
	ListenPort    int    `toml:"listen_port"`
}

type EddiMonitorConfig struct {
	MyenergiUsername string `toml:"myenergi_username"`
	MyenergiPassword string `toml:"myenergi_password"`
	DirectorURL      string `toml:"director_url"`

	PushoverAppToken string `toml:"pushover_app_token"`
	PushoverUserKey  string `toml:"pushover_user_key"`

	PollIntervalSeconds   int `toml:"poll_interval_seconds"`
	LowTempCelsius        int `toml:"low_temp_celsius"`
	NotifyCooldownSeconds int `toml:"notify_cooldown_seconds"`
}
