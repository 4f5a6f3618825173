package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	internalerrors "github.com/harborwatch/agent/internal/errors"
	models "github.com/harborwatch/agent/internal/model"
)

// AgentConfig holds everything the sampling pipeline needs. It is built
// once at startup and immutable afterwards.
type AgentConfig struct {
	// Address is the telemetry endpoint URL
	Address string

	// Key is the API key sent with every batch
	Key string

	// ReportInterval is the sampling interval in seconds
	ReportInterval int

	// Metrics is the ordered set of enabled metric identifiers
	Metrics []string

	// ShipID is the host identifier stamped on every sample
	ShipID string

	// SelfTest selects the one-shot diagnostic mode instead of the run loop
	SelfTest bool
}

// fileConfig mirrors AgentConfig for the optional YAML config file.
type fileConfig struct {
	Address        string   `yaml:"address"`
	Key            string   `yaml:"api_key"`
	ReportInterval int      `yaml:"report_interval"`
	Metrics        []string `yaml:"metrics"`
	ShipID         string   `yaml:"ship_id"`
}

// NewAgentConfig builds the agent configuration from, in increasing
// precedence: defaults, the YAML config file, command-line flags and
// environment variables.
func NewAgentConfig(args []string) (*AgentConfig, error) {
	fs := flag.NewFlagSet("agent", flag.ContinueOnError)
	configPath := fs.String("c", "", "Path to YAML config file")
	address := fs.String("a", DefaultAddress, "Telemetry endpoint URL")
	key := fs.String("k", "", "API key for the telemetry endpoint")
	reportInterval := fs.Int("r", DefaultReportInterval, "Sampling interval in seconds (1, 5, 30, 60 or 300)")
	metrics := fs.String("m", "", "Comma-separated list of enabled metrics")
	shipID := fs.String("s", "", "Host identifier (defaults to the hostname)")
	selfTest := fs.Bool("t", false, "Run the collector self-test and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	config := &AgentConfig{
		Address:        DefaultAddress,
		ReportInterval: DefaultReportInterval,
	}

	path := *configPath
	if envPath := os.Getenv("CONFIG"); envPath != "" {
		path = envPath
	}
	if path != "" {
		if err := applyFile(config, path); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			config.Address = *address
		case "k":
			config.Key = *key
		case "r":
			config.ReportInterval = *reportInterval
		case "m":
			config.Metrics = splitMetrics(*metrics)
		case "s":
			config.ShipID = *shipID
		case "t":
			config.SelfTest = *selfTest
		}
	})

	envStrVars := map[string]*string{
		"ADDRESS": &config.Address,
		"API_KEY": &config.Key,
		"SHIP_ID": &config.ShipID,
	}
	for envVar, field := range envStrVars {
		if envValue := os.Getenv(envVar); envValue != "" {
			*field = envValue
		}
	}
	if envValue := os.Getenv("REPORT_INTERVAL"); envValue != "" {
		interval, err := strconv.Atoi(envValue)
		if err != nil {
			return nil, fmt.Errorf("invalid REPORT_INTERVAL value %q: %w", envValue, err)
		}
		config.ReportInterval = interval
	}
	if envValue := os.Getenv("METRICS"); envValue != "" {
		config.Metrics = splitMetrics(envValue)
	}

	if config.ShipID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("resolving hostname: %w", err)
		}
		config.ShipID = hostname
	}
	if len(config.Metrics) == 0 {
		config.Metrics = []string{models.CargoCPUUsage, models.CargoRAMUsage}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyFile(config *AgentConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if fc.Address != "" {
		config.Address = fc.Address
	}
	if fc.Key != "" {
		config.Key = fc.Key
	}
	if fc.ReportInterval != 0 {
		config.ReportInterval = fc.ReportInterval
	}
	if len(fc.Metrics) != 0 {
		config.Metrics = fc.Metrics
	}
	if fc.ShipID != "" {
		config.ShipID = fc.ShipID
	}
	return nil
}

func (c *AgentConfig) validate() error {
	valid := false
	for _, allowed := range AllowedIntervals {
		if c.ReportInterval == allowed {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: %d (allowed: 1, 5, 30, 60, 300)", internalerrors.ErrInvalidInterval, c.ReportInterval)
	}

	seen := make(map[string]struct{}, len(c.Metrics))
	deduped := make([]string, 0, len(c.Metrics))
	for _, id := range c.Metrics {
		if !models.KnownCargo(id) {
			return fmt.Errorf("%w: %s", internalerrors.ErrUnknownMetric, id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	c.Metrics = deduped
	return nil
}

func splitMetrics(s string) []string {
	var metrics []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			metrics = append(metrics, trimmed)
		}
	}
	return metrics
}

// SinkConfig holds the development sink server configuration.
type SinkConfig struct {
	// Address is the listen address
	Address string

	// Key is the API key required on ingest requests; empty disables the check
	Key string
}

// NewSinkConfig builds the sink configuration from flags and environment
// variables.
func NewSinkConfig(args []string) (*SinkConfig, error) {
	fs := flag.NewFlagSet("sink", flag.ContinueOnError)
	address := fs.String("a", DefaultSinkAddress, "Listen address")
	key := fs.String("k", "", "API key required on ingest requests")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	config := &SinkConfig{Address: *address, Key: *key}

	envVars := map[string]*string{
		"ADDRESS": &config.Address,
		"API_KEY": &config.Key,
	}
	for envVar, field := range envVars {
		if envValue := os.Getenv(envVar); envValue != "" {
			*field = envValue
		}
	}
	return config, nil
}
