package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/mansalskog/BadLisp/lisp"
	"github.com/mansalskog/BadLisp/lisp/lisplib"
	"github.com/mansalskog/BadLisp/parser"
	"github.com/mansalskog/BadLisp/symbol"
	"gopkg.in/yaml.v3"
)

// Config is the contents of a configuration file.
//
//	debug: true
//	prompt: "lisp> "
//	history_file: /home/me/.badlisp_history
//	symbol_max_len: 64
//	preload:
//	  - prelude.lisp
type Config struct {
	Debug       bool   `yaml:"debug"`
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	// SymbolMaxLen limits the length of symbol names.  Zero means no limit.
	SymbolMaxLen int `yaml:"symbol_max_len"`
	// Preload lists files evaluated after the standard library is loaded.
	Preload []string `yaml:"preload"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		SymbolMaxLen: symbol.DefaultMaxLen,
	}
}

// LoadConfig reads the YAML file at path over the DefaultConfig.  If path is
// empty the DefaultConfig is returned.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ParseConfig(b, config); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// ParseConfig decodes YAML into config.  Unknown keys are an error.
func ParseConfig(b []byte, config *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		if errors.Is(err, io.EOF) {
			// empty document
			return nil
		}
		return err
	}
	return config.validate()
}

func (c *Config) validate() error {
	if c.SymbolMaxLen < 0 {
		return fmt.Errorf("symbol_max_len: negative length %d", c.SymbolMaxLen)
	}
	return nil
}

// Runtime returns the lisp.Config that applies c to a runtime.
func (c *Config) Runtime() []lisp.Config {
	return []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithDebug(c.Debug),
		lisp.WithSymbolMaxLen(c.SymbolMaxLen),
	}
}

// newRuntime returns a runtime with the standard library and all preloaded
// files.
func newRuntime(c *Config, extra ...lisp.Config) (*lisp.Runtime, error) {
	rt, err := lisp.NewRuntime(append(c.Runtime(), extra...)...)
	if err != nil {
		return nil, err
	}
	if err := lisplib.LoadLibrary(rt); err != nil {
		return nil, fmt.Errorf("standard library: %w", err)
	}
	for _, path := range c.Preload {
		b, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := rt.LoadString(path, string(b), nil); err != nil {
			return nil, err
		}
	}
	return rt, nil
}
