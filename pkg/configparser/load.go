package configparser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

var ErrNoFilePath = errors.New("no file path provided")

// LoadAndParseYaml loads the YAML file into the environment and then fills cfg from it.
// A missing file is not an error: environment variables and defaults still apply.
func LoadAndParseYaml(filepath string, cfg any) error {
	if err := LoadYamlFile(filepath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("could not parse environment: %w", err)
	}

	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files. Missing files are skipped
// and variables already set in the environment are kept.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("could not load %s: %w", p, err)
		}
	}
	return nil
}

// LoadYamlFile reads a YAML file and loads variables into the environment.
// Nested keys are joined with "_" and upper-cased: datasets.dir becomes DATASETS_DIR.
func LoadYamlFile(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("could not open YAML file: %w", err)
	}

	vars, err := Flatten(data)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		// Set the environment variable only if it's not already set
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, vars[key]); err != nil {
			return fmt.Errorf("could not set env var %s: %w", key, err)
		}
	}

	return nil
}

// Flatten turns a YAML document into environment-style KEY=value pairs.
func Flatten(data []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error reading YAML file: %w", err)
	}

	vars := make(map[string]string)
	flatten(vars, nil, doc)
	return vars, nil
}

func flatten(dst map[string]string, prefix []string, node map[string]any) {
	for key, value := range node {
		path := append(append([]string{}, prefix...), key)

		switch v := value.(type) {
		case map[string]any:
			flatten(dst, path, v)
		case nil:
			// "key:" with no value sets nothing
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				items = append(items, expand(fmt.Sprint(item)))
			}
			dst[envKey(path)] = strings.Join(items, ",")
		default:
			dst[envKey(path)] = expand(fmt.Sprint(v))
		}
	}
}

func envKey(path []string) string {
	return strings.ToUpper(strings.Join(path, "_"))
}

// expand resolves the ${VAR:-default} form against the current environment.
func expand(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}

	inner := value[2 : len(value)-1]
	name, def, hasDefault := strings.Cut(inner, ":-")
	if env := os.Getenv(strings.TrimSpace(name)); env != "" {
		return env
	}
	if hasDefault {
		return strings.TrimSpace(def)
	}
	return ""
}
