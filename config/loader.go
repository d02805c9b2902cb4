package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// fileSystem is what the loader touches on disk.
type fileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

type osFS struct{}

func (osFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFS) LoadEnv(path string) error { return godotenv.Load(path) }

type loader struct {
	fs         fileSystem
	configFile string
	envFile    string
}

// LoaderOption overrides where LoadConfig looks for files.
type LoaderOption func(*loader)

// WithConfigFile uses path instead of searching for config.yml.
func WithConfigFile(path string) LoaderOption {
	return func(l *loader) { l.configFile = path }
}

// WithEnvFile uses path instead of searching for a .env file.
func WithEnvFile(path string) LoaderOption {
	return func(l *loader) { l.envFile = path }
}

// LoadConfig fills cfg, a pointer to a struct with mapstructure tags, from
// the service's YAML file, its .env file and the process environment. A
// missing file is skipped; one that fails to parse is an error.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	l := loader{fs: osFS{}}
	for _, opt := range opts {
		opt(&l)
	}
	return l.load(serviceName, cfg)
}

func (l loader) load(serviceName string, cfg any) error {
	configFile := l.configFile
	if configFile == "" {
		configFile = l.firstExisting(configCandidates(serviceName))
	}
	envFile := l.envFile
	if envFile == "" {
		envFile = l.firstExisting(envCandidates(serviceName))
	}

	v := viper.New()
	if configFile != "" && l.fs.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}
	// godotenv never overrides variables that are already set.
	if envFile != "" && l.fs.Exists(envFile) {
		if err := l.fs.LoadEnv(envFile); err != nil {
			return fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys(reflect.TypeOf(cfg), "") {
		_ = v.BindEnv(key)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: decode %s config: %w", serviceName, err)
	}
	return nil
}

func (l loader) firstExisting(paths []string) string {
	for _, p := range paths {
		if l.fs.Exists(p) {
			return p
		}
	}
	return ""
}

func configCandidates(serviceName string) []string {
	return []string{
		"./cmd/" + serviceName + "/config.yml",
		"../cmd/" + serviceName + "/config.yml",
		"../../cmd/" + serviceName + "/config.yml",
		"./config/config.yml",
		"../config/config.yml",
		"./config.yml",
	}
}

func envCandidates(serviceName string) []string {
	var paths []string
	for _, name := range []string{".env." + serviceName, ".env"} {
		for _, dir := range []string{"./cmd/" + serviceName, "./config", ".", ".."} {
			paths = append(paths, dir+"/"+name)
		}
	}
	return paths
}

// envKeys lists the dotted key of every leaf field reachable from t through
// mapstructure tags. Viper's AutomaticEnv only consults keys it already
// knows, so each one is bound explicitly; auth.jwt.secret then reads
// AUTH_JWT_SECRET. Squashed embeds share their parent's prefix.
func envKeys(t reflect.Type, prefix string) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var keys []string
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("mapstructure")
		name, opts, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if opts == "squash" {
			keys = append(keys, envKeys(ft, prefix)...)
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		key := prefix + name
		if ft.Kind() == reflect.Struct && ft.PkgPath() != "time" {
			keys = append(keys, envKeys(ft, key+".")...)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}
