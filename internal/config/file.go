package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

// StructuredFileConfig is the on-disk shape of a config file. The same
// layout is accepted as JSON, YAML and TOML.
type StructuredFileConfig struct {
	App struct {
		Mode     string `json:"mode" yaml:"mode" toml:"mode"`
		Root     string `json:"root" yaml:"root" toml:"root"`
		LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
		NoTUI    bool   `json:"no_tui" yaml:"no_tui" toml:"no_tui"`
	} `json:"app" yaml:"app" toml:"app"`

	Server struct {
		Host       string `json:"host" yaml:"host" toml:"host"`
		Port       int    `json:"port" yaml:"port" toml:"port"`
		Open       *bool  `json:"open" yaml:"open" toml:"open"`
		StrictPort *bool  `json:"strict_port" yaml:"strict_port" toml:"strict_port"`
	} `json:"server" yaml:"server" toml:"server"`

	Preview struct {
		Port int `json:"port" yaml:"port" toml:"port"`
	} `json:"preview" yaml:"preview" toml:"preview"`

	Build struct {
		OutDir string `json:"out_dir" yaml:"out_dir" toml:"out_dir"`
	} `json:"build" yaml:"build" toml:"build"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn" toml:"dsn"`
		} `json:"db" yaml:"db" toml:"db"`
	} `json:"storage" yaml:"storage" toml:"storage"`

	Adapter struct {
		CheckTimeout Duration `json:"check_timeout" yaml:"check_timeout" toml:"check_timeout"`
	} `json:"adapter" yaml:"adapter" toml:"adapter"`

	Workers struct {
		Debounce Duration `json:"debounce" yaml:"debounce" toml:"debounce"`
	} `json:"workers" yaml:"workers" toml:"workers"`
}

func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &fileCfg)
	case ".yaml", ".yml":
		err = yaml.UnmarshalStrict(data, &fileCfg)
	case ".toml":
		err = toml.Unmarshal(data, &fileCfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}

	cfg := &StructuredConfig{
		App: App{
			Mode:     fileCfg.App.Mode,
			Root:     fileCfg.App.Root,
			LogLevel: fileCfg.App.LogLevel,
			NoTUI:    fileCfg.App.NoTUI,
		},
		Server: Server{
			Host:       fileCfg.Server.Host,
			Port:       fileCfg.Server.Port,
			Open:       fileCfg.Server.Open,
			StrictPort: fileCfg.Server.StrictPort,
		},
		Preview: Preview{Port: fileCfg.Preview.Port},
		Build:   Build{OutDir: fileCfg.Build.OutDir},
		Storage: Storage{DB: DB{DSN: fileCfg.Storage.DB.DSN}},
		Adapter: Adapter{CheckTimeout: time.Duration(fileCfg.Adapter.CheckTimeout)},
		Workers: Workers{Debounce: time.Duration(fileCfg.Workers.Debounce)},
	}
	if cfg.App.Root != "" && !filepath.IsAbs(cfg.App.Root) {
		cfg.App.Root = filepath.Join(filepath.Dir(path), cfg.App.Root)
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "300ms" in JSON, YAML and TOML, and from integer nanoseconds in
// JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

// UnmarshalText is used by the TOML decoder.
func (d *Duration) UnmarshalText(text []byte) error {
	tmp, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
