package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var placeholder = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LoadConfig merges <configDir>/base.yaml with <configDir>/<env>.yaml, then
// substitutes ${VAR} placeholders from secrets.env and the process environment.
// 优先级: 系统环境变量 > secrets.env > <env>.yaml > base.yaml
func LoadConfig(env string, configDir string) (map[string]interface{}, error) {
	if configDir == "" {
		configDir = "config"
	}

	merged, err := readYAML(filepath.Join(configDir, "base.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load base.yaml: %w", err)
	}

	if env != "" && env != "base" {
		overlay, err := readYAML(filepath.Join(configDir, env+".yaml"))
		switch {
		case err == nil:
			merged = mergeMaps(merged, overlay)
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to load %s.yaml: %w", env, err)
		}
	}

	vars, err := readDotEnv(filepath.Join(configDir, "secrets.env"))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load secrets.env: %w", err)
	}
	if vars == nil {
		vars = make(map[string]string)
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	return expand(merged, vars).(map[string]interface{}), nil
}

// Decode loads the merged configuration into out, a pointer to a yaml-tagged struct.
func Decode(env, configDir string, out interface{}) error {
	merged, err := LoadConfig(env, configDir)
	if err != nil {
		return err
	}
	raw, err := yaml.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to re-encode config: %w", err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

func readYAML(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// readDotEnv parses KEY=VALUE lines, ignoring blanks and # comments.
func readDotEnv(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	vars := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		v = strings.Trim(v, `"'`)
		vars[strings.TrimSpace(k)] = v
	}
	return vars, sc.Err()
}

// mergeMaps returns base with overlay applied; nested maps merge recursively.
func mergeMaps(base, overlay map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		bm, bok := out[k].(map[string]interface{})
		om, ook := v.(map[string]interface{})
		if bok && ook {
			out[k] = mergeMaps(bm, om)
			continue
		}
		out[k] = v
	}
	return out
}

// expand replaces known ${VAR} placeholders in every string leaf.
// Unknown placeholders are left untouched.
func expand(v interface{}, vars map[string]string) interface{} {
	switch val := v.(type) {
	case string:
		return placeholder.ReplaceAllStringFunc(val, func(m string) string {
			name := placeholder.FindStringSubmatch(m)[1]
			if s, ok := vars[name]; ok {
				return s
			}
			return m
		})
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = expand(item, vars)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = expand(item, vars)
		}
		return out
	default:
		return v
	}
}

// GetEnv 获取环境变量，如果未设置则返回默认值
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetConfigEnv returns CONFIG_ENV, "local" when unset.
func GetConfigEnv() string {
	return GetEnv("CONFIG_ENV", "local")
}
