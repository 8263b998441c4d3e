// Package config loads pipeline definitions from YAML, JSON or TOML files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Observer types understood by the pipeline factory.
const (
	TypeMetric      = "metric"
	TypeMultiMetric = "multi_metric"
	TypeAccumulator = "accumulator"
	TypeLogger      = "logger"
	TypeConsole     = "console"
	TypePrometheus  = "prometheus"
	TypeRedis       = "redis"
	TypeSQLite      = "sqlite"
	TypeReport      = "report"
	TypeRecorder    = "recorder"
)

// Types lists every known observer type.
func Types() []string {
	return []string{
		TypeMetric, TypeMultiMetric, TypeAccumulator, TypeLogger, TypeConsole,
		TypePrometheus, TypeRedis, TypeSQLite, TypeReport, TypeRecorder,
	}
}

// Pipeline is the root of a pipeline file.
type Pipeline struct {
	Run       RunConfig        `json:"run" yaml:"run" toml:"run"`
	Observers []ObserverConfig `json:"observers" yaml:"observers" toml:"observers"`
}

// RunConfig describes the synthetic run driven by the CLI.
type RunConfig struct {
	Mode    string         `json:"mode" yaml:"mode" toml:"mode"`
	Epochs  int            `json:"epochs" yaml:"epochs" toml:"epochs"`
	Seed    int64          `json:"seed" yaml:"seed" toml:"seed"`
	Classes int            `json:"classes" yaml:"classes" toml:"classes"`
	Noise   float64        `json:"noise" yaml:"noise" toml:"noise"`
	Loaders []LoaderConfig `json:"loaders" yaml:"loaders" toml:"loaders"`
}

// LoaderConfig describes one synthetic loader.
type LoaderConfig struct {
	Name      string `json:"name" yaml:"name" toml:"name"`
	Batches   int    `json:"batches" yaml:"batches" toml:"batches"`
	BatchSize int    `json:"batch_size" yaml:"batch_size" toml:"batch_size"`
}

// ObserverConfig declares one observer. Fields other than Name and Type only
// apply to some types.
type ObserverConfig struct {
	Name      string         `json:"name" yaml:"name" toml:"name"`
	Type      string         `json:"type" yaml:"type" toml:"type"`
	Metric    string         `json:"metric,omitempty" yaml:"metric,omitempty" toml:"metric,omitempty"`
	Prefix    string         `json:"prefix,omitempty" yaml:"prefix,omitempty" toml:"prefix,omitempty"`
	InputKey  string         `json:"input_key,omitempty" yaml:"input_key,omitempty" toml:"input_key,omitempty"`
	OutputKey string         `json:"output_key,omitempty" yaml:"output_key,omitempty" toml:"output_key,omitempty"`
	ListArgs  []string       `json:"list_args,omitempty" yaml:"list_args,omitempty" toml:"list_args,omitempty"`
	Truncate  bool           `json:"truncate,omitempty" yaml:"truncate,omitempty" toml:"truncate,omitempty"`
	Params    map[string]any `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	Options   map[string]any `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

// RedisOptions are the options of a redis observer.
type RedisOptions struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// SQLiteOptions are the options of a sqlite observer.
type SQLiteOptions struct {
	Path string `mapstructure:"path"`
}

// PrometheusOptions are the options of a prometheus observer.
type PrometheusOptions struct {
	ConstLabels map[string]string `mapstructure:"const_labels"`
}

// Load reads a pipeline file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (*Pipeline, error) {
	if path == "" {
		return nil, fmt.Errorf("empty config path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline config: %w", err)
	}
	p, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return p, nil
}

// Parse decodes data in the format named by ext (".yaml", ".json", ...) and
// applies defaults.
func Parse(data []byte, ext string) (*Pipeline, error) {
	var p Pipeline
	switch ext = strings.ToLower(ext); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &p); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config extension: %q", ext)
	}
	p.applyDefaults()
	return &p, nil
}

func (p *Pipeline) applyDefaults() {
	if p.Run.Mode == "" {
		p.Run.Mode = "train"
	}
	if p.Run.Epochs == 0 {
		p.Run.Epochs = 1
	}
	if p.Run.Classes == 0 {
		p.Run.Classes = 4
	}
	for i := range p.Run.Loaders {
		if p.Run.Loaders[i].BatchSize == 0 {
			p.Run.Loaders[i].BatchSize = 16
		}
	}
}

// DecodeOptions decodes a loose options map into out (a pointer to one of the
// *Options structs). Unknown keys are an error; durations accept "30s".
func DecodeOptions(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
