// pattern: Imperative Shell

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		FilePath:   filepath.Join(t.TempDir(), "test.log"),
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 7,
		Level:      "debug",
	}
}

func TestNewManager(t *testing.T) {
	mgr, err := NewManager(testConfig(t))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer func() { _ = mgr.Close() }()

	if mgr.For("app") == nil {
		t.Error("For() returned nil")
	}
}

func TestNewManager_RequiresFilePath(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Fatal("NewManager() with empty FilePath should fail")
	}
}

func TestNewManager_CreatesLogDirectory(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "state", "worktree.log")

	mgr, err := NewManager(Config{FilePath: logFile})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer func() { _ = mgr.Close() }()

	if _, err := os.Stat(filepath.Dir(logFile)); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}

func TestManager_For(t *testing.T) {
	mgr, err := NewManager(testConfig(t))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer func() { _ = mgr.Close() }()

	logger := mgr.For("discovery")
	if logger == nil {
		t.Fatal("For() returned nil")
	}

	// Same scope should return same logger (cached)
	if logger2 := mgr.For("discovery"); logger != logger2 {
		t.Error("For() should return cached logger for same scope")
	}

	// Different scope should return different logger
	if logger3 := mgr.For("git"); logger == logger3 {
		t.Error("For() should return different logger for different scope")
	}

	if logger.Scope() != "discovery" {
		t.Errorf("Scope() = %q, want %q", logger.Scope(), "discovery")
	}
}

func TestManager_LoggingToFile(t *testing.T) {
	cfg := testConfig(t)

	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	logger := mgr.For("file.test")
	logger.Info("file test message", "root", "/srv/code")

	// Close to flush
	_ = mgr.Close()

	data, err := os.ReadFile(cfg.FilePath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "file test message") {
		t.Errorf("log file should contain message, got: %s", content)
	}
	if !strings.Contains(content, "file.test") {
		t.Errorf("log file should contain scope, got: %s", content)
	}
	if !strings.Contains(content, "/srv/code") {
		t.Errorf("log file should contain fields, got: %s", content)
	}
}

func TestManager_LevelFiltering(t *testing.T) {
	cfg := testConfig(t)
	cfg.Level = "warn"

	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	logger := mgr.For("levels")
	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("visible warning")
	_ = mgr.Close()

	data, err := os.ReadFile(cfg.FilePath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	content := string(data)
	if strings.Contains(content, "hidden") {
		t.Errorf("entries below warn should be filtered, got: %s", content)
	}
	if !strings.Contains(content, "visible warning") {
		t.Errorf("warn entry missing, got: %s", content)
	}
}

func TestManager_ConsoleMirror(t *testing.T) {
	var console bytes.Buffer
	cfg := testConfig(t)
	cfg.Console = &console

	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	mgr.For("app").Info("console message", "roots", 3)
	_ = mgr.Close()

	out := console.String()
	if !strings.Contains(out, "console message") {
		t.Errorf("console output missing message: %q", out)
	}
	if !strings.Contains(out, "app") {
		t.Errorf("console output missing scope: %q", out)
	}
}

func TestManager_FileRotation(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxSizeMB = 1
	cfg.MaxBackups = 2

	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer func() { _ = mgr.Close() }()

	logger := mgr.For("rotation.test")

	// Smoke test; actual rotation happens at file level
	bigMessage := string(make([]byte, 1000))
	for i := range 100 {
		logger.Info(bigMessage, "iteration", i)
	}

	_ = mgr.Sync()

	if _, err := os.Stat(cfg.FilePath); os.IsNotExist(err) {
		t.Error("log file should exist after writing")
	}
}
