package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/kinship/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KINSHIP_"

// Load builds a Config from defaults, a TOML file and the environment.
//
// An explicit path must exist. With an empty path, kinship.toml is looked
// up in the working directory and then in DefaultConfigDir; finding none
// is not an error. The returned string is the file that was read, if any.
func Load(path string) (Config, string, error) {
	cfg := Default()

	file := path
	if file == "" {
		file = find()
	} else if _, err := os.Stat(file); err != nil {
		return cfg, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", file)
	}

	if file != "" {
		meta, err := toml.DecodeFile(file, &cfg)
		if err != nil {
			return cfg, file, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", file)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return cfg, file, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", file, strings.Join(keys, ", "))
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, file, err
	}
	return cfg, file, cfg.Validate()
}

func find() string {
	candidates := []string{FileName}
	if dir := DefaultConfigDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, FileName))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// applyEnv overrides cfg from KINSHIP_* variables.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	str("DATASET", &cfg.Dataset.Location)
	str("NEO4J_USER", &cfg.Dataset.Neo4jUser)
	str("NEO4J_PASSWORD", &cfg.Dataset.Neo4jPassword)
	str("LAYOUT", &cfg.Layout.Provider)
	str("ENGINE", &cfg.Render.Engine)
	str("CACHE", &cfg.Cache.Backend)
	str("CACHE_DIR", &cfg.Cache.Dir)
	str("REDIS_URL", &cfg.Cache.RedisURL)
	str("ADDR", &cfg.Server.Addr)

	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sSEED", EnvPrefix)
		}
		cfg.Layout.Seed = n
	}
	if v, ok := lookup(EnvPrefix + "ITERATIONS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sITERATIONS", EnvPrefix)
		}
		cfg.Layout.Iterations = n
	}
	for name, dst := range map[string]*bool{"CACHE_COMPRESS": &cfg.Cache.Compress, "WATCH": &cfg.Server.Watch} {
		if v, ok := lookup(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, name)
			}
			*dst = b
		}
	}
	return nil
}
