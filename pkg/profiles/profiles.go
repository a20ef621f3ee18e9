package profiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/firetree/pkg/firetree"
)

// Package profiles contains named document store connection profiles
// loaded from YAML/JSON registry files.

type Profile struct {
	Name           string `json:"name" yaml:"name"`
	BaseURI        string `json:"base_uri" yaml:"base_uri"`
	AuthToken      string `json:"auth_token" yaml:"auth_token"`
	AuthTokenEnv   string `json:"auth_token_env" yaml:"auth_token_env"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	InsecureTLS    bool   `json:"insecure_tls" yaml:"insecure_tls"`
	Default        bool   `json:"default" yaml:"default"`
}

type registry struct {
	Profiles []Profile `json:"profiles" yaml:"profiles"`
}

var (
	regMu                 sync.RWMutex
	currentReg            registry
	profilesIdx           map[string]Profile
	defaultTimeoutSeconds = 10
)

// Profiles returns a copy of the currently loaded profile registry.
func Profiles() []Profile {
	regMu.RLock()
	defer regMu.RUnlock()

	if len(currentReg.Profiles) == 0 {
		return nil
	}

	out := make([]Profile, len(currentReg.Profiles))
	copy(out, currentReg.Profiles)
	return out
}

// ProfileByName returns the profile entry for the given name, if loaded.
func ProfileByName(name string) (Profile, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, false
	}

	regMu.RLock()
	defer regMu.RUnlock()

	if profilesIdx == nil {
		return Profile{}, false
	}

	p, ok := profilesIdx[name]
	return p, ok
}

// DefaultProfile returns the profile marked default, or the only loaded
// profile when exactly one exists.
func DefaultProfile() (Profile, bool) {
	regMu.RLock()
	defer regMu.RUnlock()

	for _, p := range currentReg.Profiles {
		if p.Default {
			return p, true
		}
	}
	if len(currentReg.Profiles) == 1 {
		return currentReg.Profiles[0], true
	}
	return Profile{}, false
}

// LoadProfiles loads the profile registry from file, replacing any
// previously loaded registry.
func LoadProfiles(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("profiles file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open profiles file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read profiles file: %w", err)
	}

	reg, err := parseProfiles(raw, filepath.Ext(path))
	if err != nil {
		return err
	}

	if len(reg.Profiles) == 0 {
		return errors.New("profiles file contains no profile entries")
	}

	idx := make(map[string]Profile, len(reg.Profiles))
	defaults := 0
	for i := range reg.Profiles {
		p := sanitizeProfile(reg.Profiles[i])
		if err := validateProfile(p); err != nil {
			return fmt.Errorf("profile[%d]: %w", i, err)
		}
		if _, exists := idx[p.Name]; exists {
			return fmt.Errorf("duplicate profile name %q", p.Name)
		}
		if p.Default {
			defaults++
		}
		reg.Profiles[i] = p
		idx[p.Name] = p
	}
	if defaults > 1 {
		return errors.New("more than one profile marked default")
	}

	regMu.Lock()
	currentReg = reg
	profilesIdx = idx
	regMu.Unlock()

	return nil
}

type unmarshalFn func([]byte, any) error

func parseProfiles(data []byte, ext string) (registry, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		ext string
		fn  unmarshalFn
	}{
		{ext: ".yaml", fn: yaml.Unmarshal},
		{ext: ".yml", fn: yaml.Unmarshal},
		{ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg registry
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return registry{}, errors.New("profiles file format not recognized (expected YAML or JSON)")
}

func sanitizeProfile(p Profile) Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.BaseURI = strings.TrimSpace(p.BaseURI)
	p.AuthToken = strings.TrimSpace(p.AuthToken)
	p.AuthTokenEnv = strings.TrimSpace(p.AuthTokenEnv)

	if p.TimeoutSeconds <= 0 {
		p.TimeoutSeconds = defaultTimeoutSeconds
	}

	return p
}

func validateProfile(p Profile) error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.BaseURI == "" {
		return fmt.Errorf("base_uri is required for profile %q", p.Name)
	}
	return nil
}

// Token resolves the auth token, preferring the environment variable named
// by auth_token_env over the inline value.
func (p Profile) Token() string {
	if p.AuthTokenEnv != "" {
		if v := os.Getenv(p.AuthTokenEnv); v != "" {
			return v
		}
	}
	return p.AuthToken
}

// Timeout returns the per-call timeout for the profile.
func (p Profile) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return time.Duration(defaultTimeoutSeconds) * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Client builds a document store client configured from the profile. Extra
// options are applied after the profile settings and may override them.
func (p Profile) Client(opts ...firetree.Option) (*firetree.Client, error) {
	base := []firetree.Option{firetree.WithTimeout(p.Timeout())}
	if tok := p.Token(); tok != "" {
		base = append(base, firetree.WithToken(tok))
	}
	if p.InsecureTLS {
		base = append(base, firetree.WithInsecureTLS())
	}
	return firetree.New(p.BaseURI, append(base, opts...)...)
}
