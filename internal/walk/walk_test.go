package walk

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/atomicstack/fpick/internal/testutil"
)

func fixture(t *testing.T) string {
	t.Helper()
	return testutil.WriteTree(t, map[string]string{
		".gitignore":          "build/\n*.log\n",
		".env":                "SECRET=1",
		".hidden/config":      "x",
		".git/HEAD":           "ref",
		"README.md":           "readme",
		"app.log":             "log",
		"build/out.bin":       "bin",
		"src/main.go":         "package main",
		"src/ui/view.go":      "package ui",
		"src/ui/.gitignore":   "generated.go\n",
		"src/ui/generated.go": "package ui",
		"vendor/lib/lib.go":   "package lib",
	})
}

func TestFilesRespectsIgnoresAndHidden(t *testing.T) {
	root := fixture(t)
	files, stats, err := Files(context.Background(), root, Options{})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	want := []string{"README.md", "src/main.go", "src/ui/view.go", "vendor/lib/lib.go"}
	if got := testutil.Rel(t, root, files); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if stats.Files != len(want) {
		t.Fatalf("expected %d files counted, got %d", len(want), stats.Files)
	}
}

func TestFilesHiddenAndNoIgnore(t *testing.T) {
	root := fixture(t)
	files, _, err := Files(context.Background(), root, Options{Hidden: true, NoIgnore: true})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	want := []string{
		".env",
		".gitignore",
		".hidden/config",
		"README.md",
		"app.log",
		"build/out.bin",
		"src/main.go",
		"src/ui/.gitignore",
		"src/ui/generated.go",
		"src/ui/view.go",
		"vendor/lib/lib.go",
	}
	if got := testutil.Rel(t, root, files); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilesExcludeGlobs(t *testing.T) {
	root := fixture(t)
	files, _, err := Files(context.Background(), root, Options{Exclude: []string{"vendor", "**/view.go"}})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	want := []string{"README.md", "src/main.go"}
	if got := testutil.Rel(t, root, files); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilesJoinsRelativeRoot(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{"ui/input.rs": "", "main.rs": ""})
	t.Chdir(root)
	files, _, err := Files(context.Background(), ".", Options{})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	want := []string{"main.rs", filepath.Join("ui", "input.rs")}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
}

func TestFilesRootErrors(t *testing.T) {
	if _, _, err := Files(context.Background(), filepath.Join(t.TempDir(), "missing"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	root := testutil.WriteTree(t, map[string]string{"file.txt": ""})
	if _, _, err := Files(context.Background(), filepath.Join(root, "file.txt"), Options{}); err == nil {
		t.Fatalf("expected error for non-directory root")
	}
	if _, _, err := Files(context.Background(), root, Options{Exclude: []string{"[unclosed"}}); err == nil {
		t.Fatalf("expected error for invalid exclude glob")
	}
}

func TestFilesHonoursCancellation(t *testing.T) {
	root := fixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Files(ctx, root, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNestedIgnoreReincludesParentPattern(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		".gitignore":      "*.log\n",
		"logs/.gitignore": "!keep.log\n",
		"logs/keep.log":   "keep",
		"logs/drop.log":   "drop",
		"top.log":         "top",
	})
	files, _, err := Files(context.Background(), root, Options{})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	want := []string{"logs/keep.log"}
	if got := testutil.Rel(t, root, files); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestIgnoreLastMatchingLineWins(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		".gitignore": "# logs\n*.log\n!keep.log\n\nkeep.log.bak\n",
		"keep.log":   "",
		"drop.log":   "",
		"notes.txt":  "",
	})
	files, _, err := Files(context.Background(), root, Options{})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	want := []string{"keep.log", "notes.txt"}
	if got := testutil.Rel(t, root, files); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilesCountsUnreadableEntries(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := testutil.WriteTree(t, map[string]string{
		"a.txt":        "",
		"locked/x.txt": "",
		"open/z.txt":   "",
	})
	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	files, stats, err := Files(context.Background(), root, Options{})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	want := []string{"a.txt", "open/z.txt"}
	if got := testutil.Rel(t, root, files); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if stats.Skipped != 1 {
		t.Fatalf("expected 1 skipped entry, got %d", stats.Skipped)
	}
	if stats.Files != len(want) {
		t.Fatalf("expected %d files counted, got %d", len(want), stats.Files)
	}
}
