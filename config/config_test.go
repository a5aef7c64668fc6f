package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"chunkstream/world"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	test.That(t, cfg.Validate(), test.ShouldBeNil)
	test.That(t, cfg.Stream.ChunkSize, test.ShouldEqual, 64.0)
	test.That(t, cfg.Stream.LoadMargin, test.ShouldEqual, 50)
	test.That(t, cfg.Camera.Zoom, test.ShouldEqual, 2.0)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, Default())
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
window:
  width: 800
  height: 600
stream:
  chunk_size: 32
  viewport_width: 0
  viewport_height: 0
  load_margin: 10
  initial_load_margin: 12
  crossing_policy: single
log:
  level: debug
`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Stream.ChunkSize, test.ShouldEqual, 32.0)
	test.That(t, cfg.Stream.CrossingPolicy, test.ShouldEqual, world.CrossSingle)
	test.That(t, cfg.Stream.ViewportWidth, test.ShouldEqual, 800.0)
	test.That(t, cfg.Stream.ViewportHeight, test.ShouldEqual, 600.0)
	// untouched keys keep their defaults
	test.That(t, cfg.Stream.DrawMargin, test.ShouldEqual, 2)
	test.That(t, cfg.Motion.MaxSpeed, test.ShouldEqual, 5.0)
	test.That(t, cfg.Log.Level, test.ShouldEqual, "debug")
}

func TestParseSchemaErrors(t *testing.T) {
	for _, doc := range []string{
		"stream:\n  chunk_size: -1\n",
		"stream:\n  crossing_policy: sometimes\n",
		"window:\n  width: wide\n",
		"unknown_section: {}\n",
		"log:\n  level: loud\n",
	} {
		_, err := Parse([]byte(doc))
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "config schema")
	}
}

func TestParseCrossFieldErrors(t *testing.T) {
	_, err := Parse([]byte(`
stream:
  load_margin: 20
  initial_load_margin: 5
camera:
  zoom: 3
`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "initial_load_margin (5) must be at least load_margin (20)")
	test.That(t, err.Error(), test.ShouldContainSubstring, "camera zoom 3 outside [1, 2]")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chunkstream.yaml")
	test.That(t, os.WriteFile(path, []byte("runtime:\n  max_stream_failures: 3\n"), 0o600), test.ShouldBeNil)

	cfg, err := Load(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Runtime.MaxStreamFailures, test.ShouldEqual, 3)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "read config")
}
