// mode.go - resolving the render mode from injected configuration.
//
// Nothing in this file reads the process environment unless the caller asks
// for it (ContextFromOS). Resolution itself is a pure function of the
// RenderContext value, which keeps rendering deterministic and testable.
package masterror

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by ContextFromEnv.
const (
	EnvMode           = "MASTERROR_ENV"
	EnvKubernetesHost = "KUBERNETES_SERVICE_HOST"
)

// Mode selects the output shape of Render.
type Mode uint8

const (
	ModeLocal Mode = iota
	ModeStaging
	ModeProd
)

func (m Mode) String() string {
	switch m {
	case ModeStaging:
		return "staging"
	case ModeProd:
		return "prod"
	default:
		return "local"
	}
}

// ParseMode recognizes the override spellings accepted by MASTERROR_ENV.
// Matching is exact: "PROD" or " prod" are not recognized.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "local", "dev", "development":
		return ModeLocal, true
	case "staging", "stage":
		return ModeStaging, true
	case "prod", "production":
		return ModeProd, true
	default:
		return ModeLocal, false
	}
}

// Default chain caps for rendering, per mode.
const (
	defaultLocalChainLimit   = 10
	defaultStagingChainLimit = 5
)

// RenderContext carries everything rendering depends on besides the error.
type RenderContext struct {
	// Env is the explicit override (MASTERROR_ENV). Unrecognized values are
	// ignored.
	Env string
	// Orchestrated is set when a cluster orchestrator was detected.
	Orchestrated bool
	// Colored enables ANSI styling of local output. Terminal detection is
	// the caller's job.
	Colored bool
	// ChainLimit caps rendered causes. Zero selects the per-mode default.
	ChainLimit int
}

// Mode resolves the render mode: a recognized Env wins, then Orchestrated
// implies prod, else local.
func (rc RenderContext) Mode() Mode {
	if m, ok := ParseMode(rc.Env); ok {
		return m
	}
	if rc.Orchestrated {
		return ModeProd
	}
	return ModeLocal
}

func (rc RenderContext) chainLimit(m Mode) int {
	if rc.ChainLimit > 0 {
		return rc.ChainLimit
	}
	if m == ModeStaging {
		return defaultStagingChainLimit
	}
	return defaultLocalChainLimit
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ContextFromEnv builds a RenderContext from environment lookups.
func ContextFromEnv(lookup LookupFunc) RenderContext {
	var rc RenderContext
	if lookup == nil {
		return rc
	}
	if v, ok := lookup(EnvMode); ok {
		rc.Env = v
	}
	if _, ok := lookup(EnvKubernetesHost); ok {
		rc.Orchestrated = true
	}
	return rc
}

// ContextFromOS reads the process environment once.
func ContextFromOS() RenderContext { return ContextFromEnv(os.LookupEnv) }

// RenderConfig is the YAML-facing form of RenderContext, typically embedded
// in a service's config file under an "errors:" key.
type RenderConfig struct {
	Env        string `yaml:"env"`
	Colored    bool   `yaml:"colored"`
	ChainLimit int    `yaml:"chain_limit"`
}

// LoadRenderConfig parses a YAML document into a RenderConfig.
func LoadRenderConfig(data []byte) (RenderConfig, error) {
	var cfg RenderConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RenderConfig{}, fmt.Errorf("masterror: parse render config: %w", err)
	}
	if cfg.ChainLimit < 0 {
		return RenderConfig{}, fmt.Errorf("masterror: chain_limit must be >= 0, got %d", cfg.ChainLimit)
	}
	if cfg.Env != "" {
		if _, ok := ParseMode(cfg.Env); !ok {
			return RenderConfig{}, fmt.Errorf("masterror: unknown env %q", cfg.Env)
		}
	}
	return cfg, nil
}

// Context overlays environment lookups on the file configuration; a
// recognized MASTERROR_ENV replaces cfg.Env.
func (cfg RenderConfig) Context(lookup LookupFunc) RenderContext {
	rc := ContextFromEnv(lookup)
	if _, ok := ParseMode(rc.Env); !ok {
		rc.Env = cfg.Env
	}
	rc.Colored = cfg.Colored
	rc.ChainLimit = cfg.ChainLimit
	return rc
}
