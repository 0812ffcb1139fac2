package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePathDefaultDir(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}

	realTmpDir, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("resolve tmp dir symlink failed: %v", err)
	}
	realGot, err := filepath.EvalSymlinks(filepath.Dir(got))
	if err != nil {
		t.Fatalf("resolve got dir symlink failed: %v", err)
	}
	expectedDir := filepath.Join(realTmpDir, defaultLogDirName)
	if realGot != expectedDir {
		t.Fatalf("unexpected log dir: got=%s expected=%s", realGot, expectedDir)
	}
	if filepath.Base(got) != defaultLogFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
	if _, err := os.Stat(filepath.Dir(got)); err != nil {
		t.Fatalf("expected log dir to be created: %v", err)
	}
}

func TestNewReleaseWritesToConfiguredFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := Options{
		Dir:      tmpDir,
		Filename: "release.log",
	}
	log := New("release", cfg)
	log.Info("release-log-test")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "release.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	if !strings.Contains(string(content), "release-log-test") {
		t.Fatalf("expected log content to contain message, got=%s", string(content))
	}
}

func TestNewDebugDoesNotWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := Options{
		Dir:      tmpDir,
		Filename: "debug.log",
	}
	log := New("debug", cfg)
	log.Info("debug-log-test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestSetLevelRejectsUnknown(t *testing.T) {
	Init("release", Options{Dir: t.TempDir(), Level: "warn"})
	if Level() != "warn" {
		t.Fatalf("initial level want warn got %s", Level())
	}
	if err := SetLevel("debug"); err != nil {
		t.Fatalf("set level failed: %v", err)
	}
	if Level() != "debug" {
		t.Fatalf("level want debug got %s", Level())
	}
	if err := SetLevel("verbose"); err == nil {
		t.Fatalf("unknown level should fail")
	}
	if Level() != "debug" {
		t.Fatalf("level should stay debug after invalid update, got %s", Level())
	}
}

func TestResolveLevelFallsBackToMode(t *testing.T) {
	if got := resolveLevel("debug", ""); got.String() != "debug" {
		t.Fatalf("debug mode level want debug got %s", got)
	}
	if got := resolveLevel("release", ""); got.String() != "info" {
		t.Fatalf("release mode level want info got %s", got)
	}
	if got := resolveLevel("release", "error"); got.String() != "error" {
		t.Fatalf("explicit level want error got %s", got)
	}
}
