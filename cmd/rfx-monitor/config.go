package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// monitorConfig is the CLI demo's persisted defaults. The core rfe package
// never reads this file itself; it only ever takes Go values.
type monitorConfig struct {
	Port       string `yaml:"port"`
	BaudRates  []int  `yaml:"baud_rates"`
	StartKHz   int    `yaml:"start_khz"`
	StopKHz    int    `yaml:"stop_khz"`
	MinAmpDBm  int    `yaml:"min_amp_dbm"`
	MaxAmpDBm  int    `yaml:"max_amp_dbm"`
}

func defaultMonitorConfig() monitorConfig {
	return monitorConfig{
		BaudRates: []int{500000, 2400},
		StartKHz:  433050,
		StopKHz:   434790,
		MinAmpDBm: -120,
		MaxAmpDBm: 0,
	}
}

func loadMonitorConfig(path string) (monitorConfig, error) {
	cfg := defaultMonitorConfig()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
