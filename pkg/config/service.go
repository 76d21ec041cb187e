package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kstephens1/ZappiMon/pkg/pathing"
)

// Missing credentials are the one fatal startup condition;
// no poll cycle can do useful work without them.
var ErrMissingCredentials = errors.New("myenergi_username and myenergi_password must be set")

var (
	ActiveZappiMonitorConfig *ZappiMonitorConfig
	ActiveEddiMonitorConfig  *EddiMonitorConfig
)

func LoadZappiMonitorConfig() error {
	configPath := filepath.Join(pathing.GetConfigDir(), "zappi_monitor.toml")

	// Create default if not exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := &ZappiMonitorConfig{
			MyenergiUsername:     "",
			MyenergiPassword:     "",
			DirectorURL:          "https://director.myenergi.net",
			PushoverAppToken:     "",
			PushoverUserKey:      "",
			PollIntervalSeconds:  60,
			ExportThresholdWatts: 1000,
			StatsWindowHours:     24,
			ListenAddress:        "0.0.0.0",
			ListenPort:           9040,
		}
		// Create file
		cfgFile, err := os.Create(configPath)
		if err != nil {
			return err
		}
		defer cfgFile.Close()
		toml.NewEncoder(cfgFile).Encode(cfg)
		ActiveZappiMonitorConfig = cfg
		return ErrMissingCredentials
	}

	// Load existing config
	var config ZappiMonitorConfig
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return err
	}
	if config.MyenergiUsername == "" || config.MyenergiPassword == "" {
		return ErrMissingCredentials
	}
	ActiveZappiMonitorConfig = &config
	return nil
}

func LoadEddiMonitorConfig() error {
	configPath := filepath.Join(pathing.GetConfigDir(), "eddi_monitor.toml")

	// Create default if not exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := &EddiMonitorConfig{
			MyenergiUsername:      "",
			MyenergiPassword:      "",
			DirectorURL:           "https://s18.myenergi.net",
			PushoverAppToken:      "",
			PushoverUserKey:       "",
			PollIntervalSeconds:   300,
			LowTempCelsius:        41,
			NotifyCooldownSeconds: 3600,
		}
		// Create file
		cfgFile, err := os.Create(configPath)
		if err != nil {
			return err
		}
		defer cfgFile.Close()
		toml.NewEncoder(cfgFile).Encode(cfg)
		ActiveEddiMonitorConfig = cfg
		return ErrMissingCredentials
	}

	// Load existing config
	var config EddiMonitorConfig
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return err
	}
	if config.MyenergiUsername == "" || config.MyenergiPassword == "" {
		return ErrMissingCredentials
	}
	ActiveEddiMonitorConfig = &config
	return nil
}
