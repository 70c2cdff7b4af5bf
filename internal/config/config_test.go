// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spyglass/spyglass/internal/config/data"
	"github.com/spyglass/spyglass/internal/resource"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestInitLocs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "cfg"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))

	require.NoError(t, InitLocs())
	assert.Equal(t, filepath.Join(dir, "cfg", "spyglass", "spyglass.yaml"), AppConfigFile)
	assert.Equal(t, filepath.Join(dir, "cfg", "spyglass", "overrides.yaml"), AppOverridesFile)
	assert.Equal(t, filepath.Join(dir, "state", "spyglass", "spyglass.log"), AppLogFile)
	assert.DirExists(t, AppContextsDir)
}

func TestConfigLoad(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "spyglass.yaml", `
spyglass:
  refreshRate: 2
  backendURL: http://localhost:8080
  kubeContext: kind
  namespace: kube-system
  ui:
    theme: neon
  logger:
    level: debug
    format: xml
`)

	c := NewConfig()
	require.NoError(t, c.Load(p, true))

	s := c.Spyglass
	assert.Equal(t, float32(2), s.RefreshRate)
	assert.Equal(t, 2*time.Second, s.RefreshInterval())
	assert.Equal(t, "http://localhost:8080", s.BackendURL)
	assert.Equal(t, "kind", s.KubeContext)
	assert.Equal(t, "kube-system", s.Namespace)
	assert.Equal(t, data.ThemeAuto, s.UI.Theme)
	assert.Equal(t, "debug", s.Logger.Level)
	assert.Equal(t, data.LogFormatJSON, s.Logger.Format)
	assert.Equal(t, DefaultLanguage, s.ActiveLanguage())

	d, err := s.GetAPITimeout()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPITimeout, d)
}

func TestConfigLoadMissing(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nope.yaml")

	c := NewConfig()
	require.NoError(t, c.Load(p, false))
	assert.Equal(t, float32(DefaultRefreshRate), c.Spyglass.RefreshRate)
	assert.ErrorIs(t, c.Load(p, true), ErrNoConfigFile)
}

func TestConfigSave(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "spyglass.yaml")

	c := NewConfig()
	c.Spyglass.BackendURL = "http://b"
	require.NoError(t, c.Save(p, false))
	assert.NoFileExists(t, p)

	require.NoError(t, c.Save(p, true))
	l := NewConfig()
	require.NoError(t, l.Load(p, true))
	assert.Equal(t, "http://b", l.Spyglass.BackendURL)
}

func TestConfigRefine(t *testing.T) {
	c := NewConfig()
	c.Spyglass.Namespace = "default"
	c.Spyglass.BackendURL = "http://file"

	f := NewFlags()
	*f.RefreshRate = 1.5
	*f.Backend = "http://flag"
	*f.Namespace = AllNamespaces
	*f.Theme = data.ThemeDark
	*f.LogLevel = "warn"

	require.NoError(t, c.Refine(f))
	s := c.Spyglass
	assert.Equal(t, 1500*time.Millisecond, s.RefreshInterval())
	assert.Equal(t, "http://flag", s.BackendURL)
	assert.Empty(t, s.Namespace)
	assert.Equal(t, data.ThemeDark, s.UI.Theme)
	assert.Equal(t, "warn", s.Logger.Level)
}

func TestOverrideKeepsUnsetFlags(t *testing.T) {
	s := NewSpyglass()
	s.KubeContext = "prod"
	s.Namespace = "web"

	s.Override(NewFlags())
	s.Override(nil)

	assert.Equal(t, "prod", s.KubeContext)
	assert.Equal(t, "web", s.Namespace)
	assert.Equal(t, float32(DefaultRefreshRate), s.RefreshRate)
}

func TestAliases(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "aliases.yaml", `
aliases:
  PP: pods
  d: apps/v1::deployments
`)

	a := NewAliases(resource.DefaultTaxonomy)
	require.NoError(t, a.Load(p))
	assert.Equal(t, []string{"d", "pp"}, a.Names())

	uu := map[string]struct {
		name string
		e    resource.Key
		ok   bool
	}{
		"user":     {name: "pp", e: resource.Pods, ok: true},
		"user-key": {name: "D", e: resource.Deployments, ok: true},
		"builtin":  {name: "svc", e: resource.Services, ok: true},
		"plain":    {name: "configmaps", e: resource.ConfigMaps, ok: true},
		"unknown":  {name: "bozo"},
	}
	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			key, ok := a.Resolve(u.name)
			assert.Equal(t, u.ok, ok)
			if u.ok {
				assert.Equal(t, u.e, key)
			}
		})
	}
}

func TestAliasesRejectsUnknownTarget(t *testing.T) {
	p := writeFile(t, t.TempDir(), "aliases.yaml", "aliases:\n  x: widgets\n")

	assert.Error(t, NewAliases(resource.DefaultTaxonomy).Load(p))
}

func TestAliasesSave(t *testing.T) {
	p := filepath.Join(t.TempDir(), "aliases.yaml")
	a := NewAliases(resource.DefaultTaxonomy)
	a.Set("Web", "deployments")
	require.NoError(t, a.Save(p))

	b := NewAliases(resource.DefaultTaxonomy)
	require.NoError(t, b.Load(p))
	k, ok := b.Resolve("web")
	require.True(t, ok)
	assert.Equal(t, resource.Deployments, k)
}

func TestContextState(t *testing.T) {
	d := data.NewDir(t.TempDir())

	s, err := d.Load("arn:aws:eks/prod")
	require.NoError(t, err)
	assert.Equal(t, data.DefaultView, s.Active)
	assert.Equal(t, "arn:aws:eks/prod", s.Context)

	s.Namespace = "web"
	s.Active = resource.Deployments.String()
	require.NoError(t, d.Save(s))
	assert.FileExists(t, filepath.Join(d.Root(), "arn-aws-eks-prod", "state.yaml"))

	l, err := d.Load("arn:aws:eks/prod")
	require.NoError(t, err)
	assert.Equal(t, "web", l.Namespace)
	assert.Equal(t, resource.Deployments.String(), l.Active)
	assert.Error(t, d.Save(nil))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(data.Logger{Level: "WARN", Format: data.LogFormatJSON}, &buf)
	l.Info().Msg("quiet")
	l.Warn().Str("resource", "pods").Msg("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), `"resource":"pods"`)
	assert.Contains(t, buf.String(), `"message":"loud"`)

	buf.Reset()
	l = NewLogger(data.Logger{Level: "bozo", Format: data.LogFormatConsole}, &buf)
	l.Debug().Msg("hidden")
	l.Info().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestOpenLogFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "state", "spyglass.log")

	f, err := OpenLogFile(p)
	require.NoError(t, err)
	defer f.Close()
	assert.FileExists(t, p)
}
