//go:build linux

package sim

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hostsim/hostsim/sim/simtime"
	"github.com/hostsim/hostsim/sim/syscalls"
	"github.com/hostsim/hostsim/sim/trace"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid simulation config")

// HostConfig describes a group of identical hosts.
type HostConfig struct {
	Name     string   `yaml:"name"`
	Count    int      `yaml:"count"`    // number of hosts (default 1)
	Interval string   `yaml:"interval"` // simulated time between syscalls, e.g. "250ms"
	Syscalls []string `yaml:"syscalls"` // syscall mix, drawn uniformly
}

// Config represents the full simulation YAML.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Seed        int64        `yaml:"seed"`
	StopTime    string       `yaml:"stop_time"`   // simulated run length, e.g. "30s"
	Parallelism int          `yaml:"parallelism"` // 0 = one worker per CPU
	TraceLevel  string       `yaml:"trace_level"` // "none" or "syscalls" (default)
	TraceFormat string       `yaml:"trace_format"`
	Hosts       []HostConfig `yaml:"hosts"`
}

// DefaultConfig returns the config used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Seed:        42,
		StopTime:    "10s",
		TraceLevel:  string(trace.TraceLevelSyscalls),
		TraceFormat: string(trace.FormatJSON),
		Hosts: []HostConfig{{
			Name:     "host",
			Count:    2,
			Interval: "500ms",
			Syscalls: syscalls.Names(),
		}},
	}
}

// LoadConfig reads and validates a YAML config. It also returns the raw
// bytes, which feed the run ID.
func LoadConfig(path string) (*Config, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, nil, err
	}
	return cfg, data, nil
}

// ParseConfig decodes YAML with strict field checking (typos must cause
// errors) and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field and fills defaults for omitted ones.
func (c *Config) Validate() error {
	if c.StopTime == "" {
		c.StopTime = "10s"
	}
	if _, err := c.StopDuration(); err != nil {
		return err
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism %d must be >= 0", ErrInvalidConfig, c.Parallelism)
	}
	if c.TraceLevel == "" {
		c.TraceLevel = string(trace.TraceLevelSyscalls)
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("%w: unknown trace_level %q", ErrInvalidConfig, c.TraceLevel)
	}
	if c.TraceFormat != "" && !trace.IsValidFormat(c.TraceFormat) {
		return fmt.Errorf("%w: unknown trace_format %q", ErrInvalidConfig, c.TraceFormat)
	}
	if len(c.Hosts) == 0 {
		return fmt.Errorf("%w: at least one host group is required", ErrInvalidConfig)
	}
	names := make(map[string]bool)
	for i := range c.Hosts {
		h := &c.Hosts[i]
		if h.Name == "" {
			return fmt.Errorf("%w: hosts[%d] has no name", ErrInvalidConfig, i)
		}
		if names[h.Name] {
			return fmt.Errorf("%w: duplicate host name %q", ErrInvalidConfig, h.Name)
		}
		names[h.Name] = true
		if h.Count == 0 {
			h.Count = 1
		}
		if h.Count < 0 {
			return fmt.Errorf("%w: host %q count %d must be positive", ErrInvalidConfig, h.Name, h.Count)
		}
		interval, err := h.IntervalTime()
		if err != nil {
			return err
		}
		if interval.IsZero() {
			return fmt.Errorf("%w: host %q interval must be positive", ErrInvalidConfig, h.Name)
		}
		if len(h.Syscalls) == 0 {
			return fmt.Errorf("%w: host %q has no syscalls", ErrInvalidConfig, h.Name)
		}
		for _, s := range h.Syscalls {
			if !syscalls.IsKnown(s) {
				return fmt.Errorf("%w: host %q: unknown syscall %q (known: %v)", ErrInvalidConfig, h.Name, s, syscalls.Names())
			}
		}
	}
	return nil
}

// StopDuration returns stop_time as simulation time.
func (c *Config) StopDuration() (simtime.SimulationTime, error) {
	return parseSimDuration("stop_time", c.StopTime)
}

// IntervalTime returns interval as simulation time.
func (h HostConfig) IntervalTime() (simtime.SimulationTime, error) {
	return parseSimDuration(fmt.Sprintf("host %q interval", h.Name), h.Interval)
}

// TotalHosts sums Count over all host groups.
func (c *Config) TotalHosts() int {
	n := 0
	for _, h := range c.Hosts {
		n += h.Count
	}
	return n
}

func parseSimDuration(field, s string) (simtime.SimulationTime, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return simtime.Zero, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, field, err)
	}
	st, err := simtime.FromStd(d)
	if err != nil {
		return simtime.Zero, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, field, err)
	}
	return st, nil
}
