package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/chrissnell/lunarday/pkg/lunar"
	"github.com/chrissnell/lunarday/pkg/moonrise"
)

// ErrUnknownObserver is returned when a named observer is not configured
var ErrUnknownObserver = errors.New("unknown observer")

const (
	DefaultListenAddr   = "0.0.0.0"
	DefaultHTTPPort     = 8080
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Second
	DefaultTimezone     = "UTC"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetObservers() ([]ObserverData, error)
	GetServerConfig() (*ServerData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Ephemeris string         `json:"ephemeris"`
	Observers []ObserverData `json:"observers"`
	Server    ServerData     `json:"server"`
}

// ObserverData is a named place snapshots can be requested for
type ObserverData struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// ServerData holds the REST server settings
type ServerData struct {
	ListenAddr   string        `json:"listen_addr"`
	HTTPPort     int           `json:"http_port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	TLSCertPath  string        `json:"tls_cert_path,omitempty"`
	TLSKeyPath   string        `json:"tls_key_path,omitempty"`
}

// Coordinate returns the observer position as engine input
func (o ObserverData) Coordinate() lunar.Coordinate {
	return lunar.Coordinate{Latitude: o.Latitude, Longitude: o.Longitude}
}

// Location loads the observer's time zone
func (o ObserverData) Location() (*time.Location, error) {
	tz := o.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("observer %s: invalid timezone %q: %w", o.Name, tz, err)
	}
	return loc, nil
}

// ApplyDefaults fills unset fields with their defaults
func (c *ConfigData) ApplyDefaults() {
	if c.Ephemeris == "" {
		c.Ephemeris = moonrise.NameMeeus
	}
	for i := range c.Observers {
		if c.Observers[i].Timezone == "" {
			c.Observers[i].Timezone = DefaultTimezone
		}
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = DefaultHTTPPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
}

// Validate checks the configuration for values the server cannot use
func (c *ConfigData) Validate() error {
	if _, err := moonrise.New(c.Ephemeris); err != nil {
		return fmt.Errorf("ephemeris: %w", err)
	}

	seen := make(map[string]bool, len(c.Observers))
	for i, o := range c.Observers {
		if o.Name == "" {
			return fmt.Errorf("observer %d has no name", i)
		}
		if seen[o.Name] {
			return fmt.Errorf("duplicate observer name %q", o.Name)
		}
		seen[o.Name] = true

		if err := ValidateCoordinate(o.Latitude, o.Longitude); err != nil {
			return fmt.Errorf("observer %s: %w", o.Name, err)
		}
		if _, err := o.Location(); err != nil {
			return err
		}
	}

	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server http port %d out of range", c.Server.HTTPPort)
	}
	if (c.Server.TLSCertPath == "") != (c.Server.TLSKeyPath == "") {
		return fmt.Errorf("server TLS needs both a certificate and a key")
	}
	return nil
}

// Observer looks up an observer by name
func (c *ConfigData) Observer(name string) (ObserverData, error) {
	for _, o := range c.Observers {
		if o.Name == name {
			return o, nil
		}
	}
	return ObserverData{}, fmt.Errorf("%w: %s", ErrUnknownObserver, name)
}

// ValidateCoordinate checks decimal-degree latitude and longitude ranges
func ValidateCoordinate(lat, lon float64) error {
	if !(lat >= -90 && lat <= 90) {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if !(lon >= -180 && lon <= 180) {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}
	return nil
}
