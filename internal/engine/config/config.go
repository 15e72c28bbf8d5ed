// Package config provides configuration management for godoit.
// config is built on top of viper for files and environment and cobra for flags.
package config

import (
	"time"
)

type CompositorContract interface {
	LoadEnv() error
	LoadConf(path string) error
}

type Compositor struct {
	CMDLine *CMDLine
	Conf    *Conf
	Env     *Env
}

type Conf struct {
	IDoit   *IDoit   `mapstructure:"idoit"`
	Session *Session `mapstructure:"session"`
	Log     *Log     `mapstructure:"log"`
	Mock    *Mock    `mapstructure:"mock"`
}

type IDoit struct {
	URL      *string `mapstructure:"url"`
	APIKey   *string `mapstructure:"apikey" secret:"true"`
	Username *string `mapstructure:"username"`
	Password *string `mapstructure:"password" secret:"true"`
	Language *string `mapstructure:"language"`
}

type Session struct {
	File *string `mapstructure:"file"`
}

type Log struct {
	JSON    *bool   `mapstructure:"json_format"`
	Level   *string `mapstructure:"level"`
	OutPath *string `mapstructure:"output"`
}

type Mock struct {
	Address     *string            `mapstructure:"address"`
	Port        *string            `mapstructure:"port"`
	APIKey      *string            `mapstructure:"apikey" secret:"true"`
	RequireAuth *bool              `mapstructure:"require_auth"`
	SessionTTL  *time.Duration     `mapstructure:"session_ttl"`
	DBPath      *string            `mapstructure:"db_path"`
	ScriptDir   *string            `mapstructure:"script_dir"`
	Users       *map[string]string `mapstructure:"users" secret:"true"`
}

// Env structure for environment variables, GODOIT_* (or a .env file)
type Env struct {
	ConfigPath *string `mapstructure:"config_path"`
	URL        *string `mapstructure:"url"`
	APIKey     *string `mapstructure:"apikey"`
	Username   *string `mapstructure:"username"`
	Password   *string `mapstructure:"password"`
}

// CMDLine holds flag values. The cmd tag is the command path below the root
// command; the root itself is addressed by its Use.
type CMDLine struct {
	Root         Root         `cmd:"godoit"`
	Mock         MockFlags    `cmd:"mock"`
	Login        LoginFlags   `cmd:"login"`
	ObjectCreate ObjectCreate `cmd:"object create"`
	ObjectDelete ObjectDelete `cmd:"object delete"`
}

type Root struct {
	Debug      bool   `persistent:"true" full:"debug" short:"d" def:"false" desc:"Set debug mode"`
	ConfigPath string `persistent:"true" full:"config" short:"c" def:"" desc:"Path to configuration file"`
	JSON       bool   `persistent:"true" full:"json" short:"j" def:"false" desc:"Print raw JSON results"`
}

type MockFlags struct {
	Address string `full:"address" short:"a" def:"" desc:"Listen address, overrides mock.address"`
	Port    string `full:"port" short:"p" def:"" desc:"Listen port, overrides mock.port"`
}

type LoginFlags struct {
	Prompt bool `full:"prompt" def:"false" desc:"Ask for the password even when one is configured"`
}

type ObjectCreate struct {
	Category    string `full:"category" def:"" desc:"Category attribute in category Global"`
	Purpose     string `full:"purpose" def:"" desc:"Purpose attribute in category Global"`
	CMDBStatus  string `full:"cmdb-status" def:"" desc:"CMDB status constant or id"`
	Description string `full:"description" def:"" desc:"Description attribute in category Global"`
}

type ObjectDelete struct {
	Status string `full:"status" short:"s" def:"C__RECORD_STATUS__DELETED" desc:"Target record status"`
}
