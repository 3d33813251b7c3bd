package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads, defaults and validates the configuration from the YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	config, err := ParseYAML(cfgFile)
	if err != nil {
		return nil, err
	}

	y.config = config
	return config, nil
}

// ParseYAML decodes a YAML document into a defaulted, validated ConfigData
func ParseYAML(data []byte) (*ConfigData, error) {
	var yamlConfig ConfigYAML
	if err := yaml.UnmarshalStrict(data, &yamlConfig); err != nil {
		return nil, err
	}

	config := &ConfigData{
		Ephemeris: yamlConfig.Ephemeris,
		Observers: make([]ObserverData, len(yamlConfig.Observers)),
		Server: ServerData{
			ListenAddr:   yamlConfig.Server.ListenAddr,
			HTTPPort:     yamlConfig.Server.HTTPPort,
			ReadTimeout:  yamlConfig.Server.ReadTimeout,
			WriteTimeout: yamlConfig.Server.WriteTimeout,
			TLSCertPath:  yamlConfig.Server.Cert,
			TLSKeyPath:   yamlConfig.Server.Key,
		},
	}

	for i, o := range yamlConfig.Observers {
		config.Observers[i] = ObserverData{
			Name:      o.Name,
			Latitude:  o.Latitude,
			Longitude: o.Longitude,
			Timezone:  o.Timezone,
		}
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// GetObservers returns observer configurations
func (y *YAMLProvider) GetObservers() ([]ObserverData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return y.config.Observers, nil
}

// GetServerConfig returns the REST server configuration
func (y *YAMLProvider) GetServerConfig() (*ServerData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Server, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with proper YAML tags for parsing the file format
type ConfigYAML struct {
	Ephemeris string         `yaml:"ephemeris,omitempty"`
	Observers []ObserverYAML `yaml:"observers"`
	Server    ServerYAML     `yaml:"server,omitempty"`
}

type ObserverYAML struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Timezone  string  `yaml:"timezone,omitempty"`
}

type ServerYAML struct {
	Cert         string        `yaml:"cert,omitempty"`
	Key          string        `yaml:"key,omitempty"`
	HTTPPort     int           `yaml:"http-port,omitempty"`
	ListenAddr   string        `yaml:"listen-addr,omitempty"`
	ReadTimeout  time.Duration `yaml:"read-timeout,omitempty"`
	WriteTimeout time.Duration `yaml:"write-timeout,omitempty"`
}
