package git

import (
	"os"
	"path/filepath"
	"testing"
)

// initRepo creates a throwaway git repository with identity configured,
// skipping the test when git is unavailable.
func initRepo(t *testing.T) *Client {
	t.Helper()
	if !IsInstalled() {
		t.Skip("git is not installed")
	}

	dir := t.TempDir()
	client := NewClient(dir, nil)

	for _, args := range [][]string{
		{"init"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "test"},
	} {
		if _, err := client.Run(args...); err != nil {
			t.Fatalf("git %v failed: %v", args, err)
		}
	}
	return client
}

func TestClient_IsRepo(t *testing.T) {
	client := initRepo(t)
	if !client.IsRepo() {
		t.Error("Expected IsRepo to be true after init")
	}

	outside := NewClient(t.TempDir(), nil)
	// The outer environment may itself be a git repo; only assert when the
	// temp dir is genuinely outside one.
	if out, err := outside.Run("rev-parse", "--is-inside-work-tree"); err != nil || out != "true" {
		if outside.IsRepo() {
			t.Error("Expected IsRepo to be false outside a repository")
		}
	}
}

func TestClient_ChangedFiles(t *testing.T) {
	client := initRepo(t)

	// Commit a baseline file.
	path := filepath.Join(client.WorkDir, "a.md")
	if err := os.WriteFile(path, []byte("# A\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := client.Add("a.md"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := client.Commit("add a.md"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	// Modify the tracked file and add an untracked one.
	if err := os.WriteFile(path, []byte("# A changed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(client.WorkDir, "b.md"), []byte("# B\n"), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := client.ChangedFiles("")
	if err != nil {
		t.Fatalf("ChangedFiles failed: %v", err)
	}

	got := make(map[string]bool)
	for _, f := range files {
		got[f] = true
	}
	if !got["a.md"] {
		t.Errorf("Expected a.md in changed files, got %v", files)
	}
	if !got["b.md"] {
		t.Errorf("Expected untracked b.md in changed files, got %v", files)
	}
}

func TestClient_ChangedFiles_Subdirectory(t *testing.T) {
	repo := initRepo(t)

	// Collection rooted at a subdirectory of the repository.
	docs := filepath.Join(repo.WorkDir, "docs")
	if err := os.MkdirAll(docs, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(docs, "a.md")
	if err := os.WriteFile(path, []byte("# A\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := repo.Add("docs/a.md"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := repo.Commit("add docs/a.md"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("# A changed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	client := NewClient(docs, nil)
	files, err := client.ChangedFiles("")
	if err != nil {
		t.Fatalf("ChangedFiles failed: %v", err)
	}

	if len(files) != 1 || files[0] != "a.md" {
		t.Errorf("Expected paths relative to the work dir [a.md], got %v", files)
	}
}

func TestClient_Sync_NoRemote(t *testing.T) {
	client := initRepo(t)

	if client.HasRemote() {
		t.Fatal("Expected no remote on a fresh repository")
	}
	if err := client.Sync(); err == nil {
		t.Error("Expected Sync to fail without a remote")
	}
}

func TestClient_Status(t *testing.T) {
	client := initRepo(t)

	if err := os.WriteFile(filepath.Join(client.WorkDir, "x.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := client.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if out == "" {
		t.Error("Expected non-empty porcelain status")
	}
}
