package hooks

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/akyaiy/godoit/idoit"
	"github.com/akyaiy/godoit/internal/core/corestate"
	"github.com/akyaiy/godoit/internal/core/sessionstore"
	"github.com/akyaiy/godoit/internal/engine/app"
	"github.com/akyaiy/godoit/internal/engine/config"
	"github.com/akyaiy/godoit/internal/engine/logs"
	"github.com/akyaiy/godoit/internal/engine/render"
)

var Compositor *config.Compositor = config.NewCompositor()

// ErrNoURL is reported when a command needs the i-doit endpoint and none is configured.
var ErrNoURL = errors.New("no i-doit url configured, set idoit.url or GODOIT_URL")

func Init0Hook(cs *corestate.CoreState, x *app.AppX) {
	x.Config = Compositor
	x.Log.SetOutput(os.Stderr)
	x.Log.SetPrefix(logs.SetBrightBlack(fmt.Sprintf("(%s) ", cs.Stage)))
	x.Log.SetFlags(log.Ldate | log.Ltime)
}

// First stage: pre-init
func Init1Hook(cs *corestate.CoreState, x *app.AppX) {
	*cs = *corestate.NewCorestate(&corestate.CoreState{
		BinName:            filepath.Base(os.Args[0]),
		Version:            config.Version,
		Stage:              corestate.StagePreInit,
		StartTimestampUnix: time.Now().Unix(),
	})
}

// Init2Hook loads .env, GODOIT_* and the config file. The file is taken from
// --config, then GODOIT_CONFIG_PATH, then DefaultConfigPath if it exists.
// Environment values win over the file for the idoit section.
func Init2Hook(cs *corestate.CoreState, x *app.AppX) {
	x.Log.SetPrefix(logs.SetBlue(fmt.Sprintf("(%s) ", cs.Stage)))

	if err := x.Config.LoadEnv(); err != nil {
		x.Log.Fatalf("env load error: %s", err)
	}

	cfgPath, err := resolveConfigPath(x.Config)
	if err != nil {
		x.Log.Fatalf("conf load error: %s", err)
	}
	if err := x.Config.LoadConf(cfgPath); err != nil {
		x.Log.Fatalf("conf load error: %s", err)
	}
	applyEnv(x.Config)
	if x.Config.CMDLine != nil && x.Config.CMDLine.Root.Debug {
		level := "debug"
		x.Config.Conf.Log.Level = &level
	}

	cs.ConfigPath = cfgPath
	cs.SessionFile = *x.Config.Conf.Session.File
}

// post-init stage
func Init3Hook(cs *corestate.CoreState, x *app.AppX) {
	cs.Advance(corestate.StagePostInit)
	x.Log.SetPrefix(logs.SetYellow(fmt.Sprintf("(%s) ", cs.Stage)))

	newSlog, err := logs.SetupLogger(x.Config.Conf.Log)
	if err != nil {
		x.Log.Fatalf("Unexpected failure: %s", err.Error())
	}
	x.SLog = newSlog

	asJSON := x.Config.CMDLine != nil && x.Config.CMDLine.Root.JSON
	x.Out = render.New(x.Stdout, asJSON)

	if cs.ConfigPath == "" {
		x.SLog.Debug("no config file, using defaults and environment")
	} else {
		x.SLog.Debug("config loaded", slog.String("path", cs.ConfigPath))
	}
}

// ClientHook builds the i-doit client and restores a stored session for its url.
func ClientHook(cs *corestate.CoreState, x *app.AppX) {
	cs.Advance(corestate.StageReady)
	x.Log.SetPrefix(logs.SetGreen(fmt.Sprintf("(%s) ", cs.Stage)))

	conf := x.Config.Conf.IDoit
	if *conf.URL == "" {
		x.Log.Fatalf("%s: %s", logs.PrintError(), ErrNoURL)
	}

	x.Client = idoit.New(&idoit.ClientInit{
		URL:      *conf.URL,
		APIKey:   *conf.APIKey,
		Username: *conf.Username,
		Password: *conf.Password,
		Language: *conf.Language,
		Log:      x.SLog.With(slog.String("component", "idoit")),
	})

	x.Sessions = sessionstore.New(cs.SessionFile)
	rec, err := x.Sessions.Load(*conf.URL)
	switch {
	case errors.Is(err, sessionstore.ErrNoSession):
	case err != nil:
		x.Log.Printf("%s: %s", logs.PrintWarn(), err)
	default:
		x.Client.SetSession(rec.SessionID)
		x.SLog.Debug("session restored",
			slog.String("username", rec.Username),
			slog.Time("created", rec.Created))
	}
}

func resolveConfigPath(c *config.Compositor) (string, error) {
	if c.CMDLine != nil && c.CMDLine.Root.ConfigPath != "" {
		return c.CMDLine.Root.ConfigPath, nil
	}
	if c.Env.ConfigPath != nil && *c.Env.ConfigPath != "" {
		return *c.Env.ConfigPath, nil
	}
	_, err := os.Stat(config.DefaultConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return config.DefaultConfigPath, nil
}

func applyEnv(c *config.Compositor) {
	override := func(dst **string, src *string) {
		if src != nil && *src != "" {
			*dst = src
		}
	}
	override(&c.Conf.IDoit.URL, c.Env.URL)
	override(&c.Conf.IDoit.APIKey, c.Env.APIKey)
	override(&c.Conf.IDoit.Username, c.Env.Username)
	override(&c.Conf.IDoit.Password, c.Env.Password)
}
