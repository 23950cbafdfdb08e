package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func readCategoryLog(t *testing.T, dir string, cat Category) string {
	t.Helper()
	date := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(dir, ".daydream", "logs", date+"_"+string(cat)+".log"))
	if err != nil {
		t.Fatalf("Failed to read %s log: %v", cat, err)
	}
	return string(data)
}

func TestDebugModeWritesCategoryFiles(t *testing.T) {
	tempDir := t.TempDir()
	defer CloseAll()

	if err := Initialize(tempDir, Settings{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	if !IsDebugMode() {
		t.Fatal("Expected debug mode to be enabled")
	}

	Narrative("flag %s flipped", "jumpscareViewed")
	RevealDebug("phase=%s", "silence")
	CloseAll()

	if got := readCategoryLog(t, tempDir, CategoryNarrative); !strings.Contains(got, "flag jumpscareViewed flipped") {
		t.Errorf("narrative log missing entry: %q", got)
	}
	if got := readCategoryLog(t, tempDir, CategoryReveal); !strings.Contains(got, "phase=silence") {
		t.Errorf("reveal log missing entry: %q", got)
	}
}

func TestProductionModeIsSilent(t *testing.T) {
	tempDir := t.TempDir()
	defer CloseAll()

	if err := Initialize(tempDir, Settings{DebugMode: false}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	Session("should not be written")

	if _, err := os.Stat(filepath.Join(tempDir, ".daydream", "logs")); !os.IsNotExist(err) {
		t.Errorf("expected no logs directory in production mode, stat err=%v", err)
	}
}

func TestCategoryFilter(t *testing.T) {
	tempDir := t.TempDir()
	defer CloseAll()

	err := Initialize(tempDir, Settings{
		DebugMode:  true,
		Categories: map[string]bool{"ui": false},
	})
	if err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	if IsCategoryEnabled(CategoryUI) {
		t.Error("ui category should be disabled")
	}
	if !IsCategoryEnabled(CategoryStore) {
		t.Error("unlisted categories should default to enabled")
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	tempDir := t.TempDir()
	defer CloseAll()

	if err := Initialize(tempDir, Settings{DebugMode: true, Level: "warn"}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	StoreDebug("quiet")
	StoreError("loud")
	CloseAll()

	got := readCategoryLog(t, tempDir, CategoryStore)
	if strings.Contains(got, "quiet") {
		t.Errorf("debug entry should be filtered at warn level: %q", got)
	}
	if !strings.Contains(got, "loud") {
		t.Errorf("error entry missing: %q", got)
	}
}

func TestNoopLogger(t *testing.T) {
	l := &Logger{category: CategoryUI}
	l.Info("nothing %d", 1)
	l.With("k", "v").Error("still nothing")
}

func TestInitializeRequiresWorkspace(t *testing.T) {
	if err := Initialize("", Settings{}); err == nil {
		t.Error("expected error for empty workspace")
	}
}
