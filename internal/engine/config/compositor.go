package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewCompositor() *Compositor {
	return &Compositor{}
}

func (c *Compositor) LoadEnv() error {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading %s: %w", DotEnvFile, err)
	}

	v := viper.New()

	// defaults
	v.SetDefault("config_path", "")
	v.SetDefault("url", "")
	v.SetDefault("apikey", "")
	v.SetDefault("username", "")
	v.SetDefault("password", "")

	// GODOIT_*
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var env Env
	if err := v.Unmarshal(&env); err != nil {
		return fmt.Errorf("error unmarshaling env: %w", err)
	}

	c.Env = &env
	return nil
}

// LoadConf reads the yaml file at path on top of the defaults.
// An empty path yields the defaults alone.
func (c *Compositor) LoadConf(path string) error {
	v := viper.New()

	// defaults
	v.SetDefault("idoit.url", "")
	v.SetDefault("idoit.apikey", "")
	v.SetDefault("idoit.username", "")
	v.SetDefault("idoit.password", "")
	v.SetDefault("idoit.language", "en")
	v.SetDefault("session.file", "./.godoit/session.ini")
	v.SetDefault("log.json_format", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("mock.address", "127.0.0.1")
	v.SetDefault("mock.port", "8090")
	v.SetDefault("mock.apikey", "mock")
	v.SetDefault("mock.require_auth", false)
	v.SetDefault("mock.session_ttl", "30m")
	v.SetDefault("mock.db_path", ":memory:")
	v.SetDefault("mock.script_dir", "")
	v.SetDefault("mock.users", map[string]string{"admin": "admin"})

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Conf
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	c.Conf = &cfg
	return nil
}

// LoadCMDLine registers flags for every CMDLine field on the command its
// cmd tag points at. Fields whose command does not exist are skipped.
func (c *Compositor) LoadCMDLine(root *cobra.Command) {
	cmdLine := &CMDLine{}
	c.CMDLine = cmdLine

	t := reflect.TypeOf(cmdLine).Elem()
	v := reflect.ValueOf(cmdLine).Elem()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		ptr := v.Field(i).Addr().Interface()

		use := field.Tag.Get("cmd")
		if use == "" {
			use = strings.ToLower(field.Name)
		}

		var cmd *cobra.Command
		if use == root.Name() {
			cmd = root
		} else {
			found, rest, err := root.Find(strings.Fields(use))
			if err == nil && len(rest) == 0 && found != root {
				cmd = found
			}
		}

		if cmd == nil {
			continue
		}

		Unmarshal(cmd, ptr)
	}
}

func Unmarshal(cmd *cobra.Command, target any) {
	t := reflect.TypeOf(target).Elem()
	v := reflect.ValueOf(target).Elem()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		valPtr := v.Field(i).Addr().Interface()

		full := field.Tag.Get("full")
		short := field.Tag.Get("short")
		def := field.Tag.Get("def")
		desc := field.Tag.Get("desc")
		isPersistent := field.Tag.Get("persistent") == "true"

		flagSet := cmd.Flags()
		if isPersistent {
			flagSet = cmd.PersistentFlags()
		}

		switch field.Type.Kind() {
		case reflect.String:
			flagSet.StringVarP(valPtr.(*string), full, short, def, desc)

		case reflect.Bool:
			defVal, err := strconv.ParseBool(def)
			if err != nil && def != "" {
				fmt.Printf("warning: cannot parse default bool: %q\n", def)
			}
			flagSet.BoolVarP(valPtr.(*bool), full, short, defVal, desc)

		case reflect.Int:
			defVal, err := strconv.Atoi(def)
			if err != nil && def != "" {
				fmt.Printf("warning: cannot parse default int: %q\n", def)
			}
			flagSet.IntVarP(valPtr.(*int), full, short, defVal, desc)

		case reflect.Slice:
			elemKind := field.Type.Elem().Kind()
			switch elemKind {
			case reflect.String:
				defVals := []string{}
				if def != "" {
					defVals = strings.Split(def, ",")
				}
				flagSet.StringSliceVarP(valPtr.(*[]string), full, short, defVals, desc)
			default:
				fmt.Printf("unsupported slice element type: %s\n", elemKind)
			}

		default:
			fmt.Printf("unsupported field type: %s\n", field.Type.Kind())
		}
	}
}
