package main

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"myregistry/adapters/myredis"
	"myregistry/service"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envHTTPPort         = "SERVICE_PORT_HTTP"
	envLeaseTTL         = "LEASE_TTL_SECONDS"
	envLeaseMaxTTL      = "LEASE_MAX_TTL_SECONDS"
	envSweepInterval    = "SWEEP_INTERVAL_SECONDS"
	envSelfPreservation = "SELF_PRESERVATION_THRESHOLD"
	envNodeID           = "NODE_ID"
	envPeers            = "PEERS"
	envAdvertiseAddr    = "ADVERTISE_ADDR"
	envRedisAddr        = "REDIS_ADDR"
	envConfigPath       = "CONFIG_PATH"
)

const (
	defaultLeaseTTLSeconds    = 30
	defaultLeaseMaxTTLSeconds = 3600
)

// Config holds the registry node configuration.
type Config struct {
	HTTPPort int
	NodeID   string

	LeaseTTL                  time.Duration
	LeaseMaxTTL               time.Duration
	SweepInterval             time.Duration
	SelfPreservationThreshold float64

	// Peers are the base URLs of the other registry nodes.
	Peers         []string
	AdvertiseAddr string
	Replication   service.ReplicatorConfig

	Redis myredis.RedisConfig
}

type yamlConfig struct {
	Replication yamlReplication `yaml:"replication"`
}

type yamlReplication struct {
	Peers           []string `yaml:"peers"`
	BatchSize       int      `yaml:"batch_size"`
	RetryIntervalMs int      `yaml:"retry_interval_ms"`
	QueueSize       int      `yaml:"queue_size"`
}

func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds the node configuration from environment variables and, when
// CONFIG_PATH is set, the replication section of a YAML file.
// SERVICE_PORT_HTTP is required; everything else has a default. PEERS from the
// environment are added to the peers listed in YAML.
func LoadConfig() (*Config, error) {
	httpPortStr := strings.TrimSpace(os.Getenv(envHTTPPort))
	if httpPortStr == "" {
		return nil, fmt.Errorf("%s is required", envHTTPPort)
	}
	httpPort, err := strconv.Atoi(httpPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", envHTTPPort, err)
	}
	if httpPort <= 0 || httpPort > 65535 {
		return nil, fmt.Errorf("%s must be 1-65535, got %d", envHTTPPort, httpPort)
	}

	ttlSeconds, err := positiveIntEnv(envLeaseTTL, defaultLeaseTTLSeconds)
	if err != nil {
		return nil, err
	}
	maxTTLSeconds, err := positiveIntEnv(envLeaseMaxTTL, defaultLeaseMaxTTLSeconds)
	if err != nil {
		return nil, err
	}
	if maxTTLSeconds < ttlSeconds {
		return nil, fmt.Errorf("%s must not be lower than %s", envLeaseMaxTTL, envLeaseTTL)
	}
	sweepSeconds, err := positiveIntEnv(envSweepInterval, max(ttlSeconds/3, 1))
	if err != nil {
		return nil, err
	}

	threshold := 0.0
	if s := strings.TrimSpace(os.Getenv(envSelfPreservation)); s != "" {
		threshold, err = strconv.ParseFloat(s, 64)
		if err != nil || threshold < 0 || threshold >= 1 {
			return nil, fmt.Errorf("%s must be a number in [0, 1), got %q", envSelfPreservation, s)
		}
	}

	nodeID := strings.TrimSpace(os.Getenv(envNodeID))
	if nodeID == "" {
		nodeID = uuid.NewString()
	}

	advertiseAddr := strings.TrimSpace(os.Getenv(envAdvertiseAddr))
	if advertiseAddr != "" {
		if _, _, err := net.SplitHostPort(advertiseAddr); err != nil {
			return nil, fmt.Errorf("%s must be host:port: %w", envAdvertiseAddr, err)
		}
	}

	var raw yamlConfig
	if configPath := strings.TrimSpace(os.Getenv(envConfigPath)); configPath != "" {
		if !filepath.IsAbs(configPath) {
			abs, absErr := filepath.Abs(configPath)
			if absErr != nil {
				return nil, absErr
			}
			configPath = abs
		}
		loaded, err := loadYAMLConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
		raw = *loaded
	}
	if raw.Replication.BatchSize < 0 || raw.Replication.RetryIntervalMs < 0 || raw.Replication.QueueSize < 0 {
		return nil, fmt.Errorf("replication.batch_size, retry_interval_ms and queue_size must not be negative")
	}

	peers, err := parsePeers(append(raw.Replication.Peers, strings.Split(os.Getenv(envPeers), ",")...))
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPPort:                  httpPort,
		NodeID:                    nodeID,
		LeaseTTL:                  time.Duration(ttlSeconds) * time.Second,
		LeaseMaxTTL:               time.Duration(maxTTLSeconds) * time.Second,
		SweepInterval:             time.Duration(sweepSeconds) * time.Second,
		SelfPreservationThreshold: threshold,
		Peers:                     peers,
		AdvertiseAddr:             advertiseAddr,
		Replication: service.ReplicatorConfig{
			QueueSize:     raw.Replication.QueueSize,
			BatchSize:     raw.Replication.BatchSize,
			RetryInterval: time.Duration(raw.Replication.RetryIntervalMs) * time.Millisecond,
		},
		Redis: myredis.RedisConfig{
			Addr: strings.TrimSpace(os.Getenv(envRedisAddr)),
		},
	}, nil
}

func positiveIntEnv(name string, def int) (int, error) {
	s := strings.TrimSpace(os.Getenv(name))
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return v, nil
}

// parsePeers trims, validates and de-duplicates peer base URLs. Empty entries are skipped.
func parsePeers(raw []string) ([]string, error) {
	var peers []string
	seen := make(map[string]bool, len(raw))
	for _, p := range raw {
		p = strings.TrimRight(strings.TrimSpace(p), "/")
		if p == "" || seen[p] {
			continue
		}
		u, err := url.Parse(p)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("peer %q must be an http(s) base URL", p)
		}
		seen[p] = true
		peers = append(peers, p)
	}
	return peers, nil
}
