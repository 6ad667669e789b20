package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultFilename = "soloman.yaml"

// Config holds the settings of the native build. Every field is optional.
type Config struct {
	Clang      string   `yaml:"clang"`
	Output     string   `yaml:"output"`
	KeepIR     bool     `yaml:"keepIR"`
	ClangFlags []string `yaml:"clangFlags"`
}

func Default() Config {
	return Config{
		Clang:  "clang",
		Output: "out",
	}
}

// Load reads the config at path on top of the defaults. A missing file is
// only an error when required is set.
func Load(path string, required bool) (Config, error) {
	conf := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return conf, nil
		}

		return Config{}, errors.Wrap(err, "opening config")
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(&conf); err != nil && err != io.EOF {
		return Config{}, errors.Wrapf(err, "decoding %s", path)
	}

	if conf.Clang == "" {
		conf.Clang = Default().Clang
	}

	if conf.Output == "" {
		conf.Output = Default().Output
	}

	return conf, nil
}
