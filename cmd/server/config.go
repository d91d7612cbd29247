package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server's on-disk configuration. The library core itself
// takes no config; everything here is specific to running the HTTP
// demo host.
type Config struct {
	Port                 string   `yaml:"port"`
	ModelPath            string   `yaml:"model_path"`
	ClassNames           []string `yaml:"class_names"`
	DefaultConfThreshold float32  `yaml:"default_conf_threshold"`
	DefaultIoUThreshold  float32  `yaml:"default_iou_threshold"`
}

func defaultConfig() Config {
	return Config{
		Port:                 "8080",
		ModelPath:            "models/model.onnx",
		DefaultConfThreshold: 0.25,
		DefaultIoUThreshold:  0.45,
	}
}

// loadConfig reads path if it exists, overlaying its values onto the
// defaults; a missing config file is not an error, the same
// fall-back-to-a-default style used for the PORT environment variable.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
