package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositor_LoadConfDefaults(t *testing.T) {
	c := NewCompositor()
	require.NoError(t, c.LoadConf(""))

	assert.Equal(t, "en", *c.Conf.IDoit.Language)
	assert.Equal(t, "info", *c.Conf.Log.Level)
	assert.Equal(t, "stderr", *c.Conf.Log.OutPath)
	assert.Equal(t, 30*time.Minute, *c.Conf.Mock.SessionTTL)
	assert.Equal(t, ":memory:", *c.Conf.Mock.DBPath)
	assert.Equal(t, map[string]string{"admin": "admin"}, *c.Conf.Mock.Users)
}

func TestCompositor_LoadConfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "godoit.yaml")
	data := []byte(`
idoit:
  url: https://cmdb.example.org/src/jsonrpc.php
  apikey: secret
  username: alice
log:
  level: debug
mock:
  port: "9999"
  session_ttl: 5m
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c := NewCompositor()
	require.NoError(t, c.LoadConf(path))

	assert.Equal(t, "https://cmdb.example.org/src/jsonrpc.php", *c.Conf.IDoit.URL)
	assert.Equal(t, "secret", *c.Conf.IDoit.APIKey)
	assert.Equal(t, "alice", *c.Conf.IDoit.Username)
	assert.Equal(t, "", *c.Conf.IDoit.Password)
	assert.Equal(t, "debug", *c.Conf.Log.Level)
	assert.Equal(t, "9999", *c.Conf.Mock.Port)
	assert.Equal(t, 5*time.Minute, *c.Conf.Mock.SessionTTL)
}

func TestCompositor_LoadConfMissingFile(t *testing.T) {
	c := NewCompositor()
	assert.Error(t, c.LoadConf(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestCompositor_LoadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GODOIT_URL", "http://localhost:8090/src/jsonrpc.php")
	t.Setenv("GODOIT_APIKEY", "k")
	t.Setenv("GODOIT_CONFIG_PATH", "/etc/godoit.yaml")

	c := NewCompositor()
	require.NoError(t, c.LoadEnv())

	assert.Equal(t, "http://localhost:8090/src/jsonrpc.php", *c.Env.URL)
	assert.Equal(t, "k", *c.Env.APIKey)
	assert.Equal(t, "/etc/godoit.yaml", *c.Env.ConfigPath)
	assert.Equal(t, "", *c.Env.Username)
}

func TestCompositor_LoadEnvDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GODOIT_USERNAME=bob\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("GODOIT_USERNAME") })

	c := NewCompositor()
	require.NoError(t, c.LoadEnv())
	assert.Equal(t, "bob", *c.Env.Username)
}

func TestCompositor_LoadCMDLine(t *testing.T) {
	root := &cobra.Command{Use: "godoit"}
	object := &cobra.Command{Use: "object"}
	create := &cobra.Command{Use: "create <type> <title>", Run: func(*cobra.Command, []string) {}}
	object.AddCommand(create)
	root.AddCommand(object)

	c := NewCompositor()
	c.LoadCMDLine(root)

	require.NotNil(t, root.PersistentFlags().Lookup("config"))
	require.NotNil(t, create.Flags().Lookup("cmdb-status"))
	assert.Nil(t, root.Flags().Lookup("status"))

	root.SetArgs([]string{"-c", "x.yaml", "object", "create", "--purpose", "prod", "C__OBJTYPE__SERVER", "srv1"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "x.yaml", c.CMDLine.Root.ConfigPath)
	assert.Equal(t, "prod", c.CMDLine.ObjectCreate.Purpose)
}

func TestCompositor_PrintMasksSecrets(t *testing.T) {
	c := NewCompositor()
	require.NoError(t, c.LoadConf(""))
	key := "topsecret"
	c.Conf.IDoit.APIKey = &key

	var buf bytes.Buffer
	c.Print(&buf, c.Conf)

	out := buf.String()
	assert.Contains(t, out, "apikey: "+maskedValue)
	assert.NotContains(t, out, key)
	assert.Contains(t, out, "session_ttl: 30m0s")
	assert.Contains(t, out, "language: \"en\"")
}
