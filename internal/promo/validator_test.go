package promo

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// setupTestFiles creates three code lists and returns their paths
func setupTestFiles(t *testing.T) []string {
	t.Helper()

	tmpDir := t.TempDir()
	contents := []string{
		"FRESHKIWI\nMANGO2024\nAPPLE001\nSOLOCODE1\n",
		"FRESHKIWI\nMANGO2024\nPEARPEAR\nBERRY002\n",
		"FRESHKIWI\nPEARPEAR\nLEMON003\nONLYONE1\n",
	}

	paths := make([]string, len(contents))
	for i, c := range contents {
		paths[i] = filepath.Join(tmpDir, "promo"+string(rune('1'+i))+".txt")
		if err := os.WriteFile(paths[i], []byte(c), 0644); err != nil {
			t.Fatalf("failed to create test file %d: %v", i+1, err)
		}
	}
	return paths
}

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(s)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestValidator_Load(t *testing.T) {
	t.Run("successful load from multiple files", func(t *testing.T) {
		validator := NewValidator()
		if err := validator.Load(context.Background(), setupTestFiles(t)); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		stats := validator.GetStats()
		if stats["total_files"] != 3 {
			t.Errorf("expected 3 files loaded, got %v", stats["total_files"])
		}
		if stats["total_codes"] != 12 {
			t.Errorf("expected 12 codes, got %v", stats["total_codes"])
		}
		if !validator.Enabled() {
			t.Error("expected validator to be enabled")
		}
	})

	t.Run("empty sources", func(t *testing.T) {
		validator := NewValidator()
		if err := validator.Load(context.Background(), nil); err == nil {
			t.Error("expected error for empty sources, got nil")
		}
	})

	t.Run("non-existent file", func(t *testing.T) {
		validator := NewValidator()
		if err := validator.Load(context.Background(), []string{"/non/existent/file.txt"}); err == nil {
			t.Error("expected error for non-existent file, got nil")
		}
		if validator.Enabled() {
			t.Error("failed load must not enable the validator")
		}
	})
}

func TestValidator_LoadGzipOverHTTP(t *testing.T) {
	lists := map[string][]byte{
		"/a.gz": gzipBytes(t, "WATERMELON\nGRAPES01\n"),
		"/b.gz": gzipBytes(t, "WATERMELON\nCHERRY01\n"),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := lists[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	validator := NewValidator()
	if err := validator.Load(context.Background(), []string{srv.URL + "/a.gz", srv.URL + "/b.gz"}); err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if !validator.IsValid(context.Background(), "WATERMELON") {
		t.Error("expected WATERMELON to be valid")
	}
	if validator.IsValid(context.Background(), "GRAPES01") {
		t.Error("expected GRAPES01 to be invalid")
	}

	if err := validator.Load(context.Background(), []string{srv.URL + "/missing.gz"}); err == nil {
		t.Error("expected error for 404 source")
	}
}

func TestValidator_IsValid(t *testing.T) {
	validator := NewValidator()
	if err := validator.Load(context.Background(), setupTestFiles(t)); err != nil {
		t.Fatalf("failed to load files: %v", err)
	}

	tests := []struct {
		name     string
		code     string
		expected bool
	}{
		{"appears in all 3 lists", "FRESHKIWI", true},
		{"appears in lists 1 and 2", "MANGO2024", true},
		{"appears in lists 2 and 3", "PEARPEAR", true},
		{"appears in only 1 list", "APPLE001", false},
		{"appears only in list 3", "ONLYONE1", false},
		{"does not exist", "NOTEXIST", false},
		{"too short", "SHORT", false},
		{"too long", "TOOLONGCODE", false},
		{"lowercase matches", "freshkiwi", true},
		{"whitespace trimmed", "  MANGO2024  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validator.IsValid(context.Background(), tt.code); got != tt.expected {
				t.Errorf("IsValid(%q) = %v, expected %v", tt.code, got, tt.expected)
			}
		})
	}
}

func TestValidator_SingleListQuorum(t *testing.T) {
	paths := setupTestFiles(t)

	validator := NewValidator()
	if err := validator.Load(context.Background(), paths[:1]); err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if !validator.IsValid(context.Background(), "SOLOCODE1") {
		t.Error("expected code from the only list to be valid")
	}
}

func TestValidator_NothingLoaded(t *testing.T) {
	validator := NewValidator()
	if validator.IsValid(context.Background(), "FRESHKIWI") {
		t.Error("expected no code to be valid before loading")
	}
	if validator.GetStats()["total_files"] != 0 {
		t.Error("expected 0 files before loading")
	}
}

func TestValidator_IsValid_CancelledContext(t *testing.T) {
	validator := NewValidator()
	if err := validator.Load(context.Background(), setupTestFiles(t)); err != nil {
		t.Fatalf("failed to load files: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if validator.IsValid(ctx, "FRESHKIWI") {
		t.Error("expected cancelled lookup to report invalid")
	}
}

func TestValidator_IsValid_ConcurrentAccess(t *testing.T) {
	paths := setupTestFiles(t)
	validator := NewValidator()
	if err := validator.Load(context.Background(), paths); err != nil {
		t.Fatalf("failed to load files: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			// reloads race with lookups
			if n%25 == 0 {
				_ = validator.Load(context.Background(), paths)
			}

			codes := []string{"FRESHKIWI", "MANGO2024", "PEARPEAR", "NOTEXIST"}
			code := codes[n%len(codes)]
			result := validator.IsValid(context.Background(), code)

			if code == "NOTEXIST" && result {
				t.Errorf("expected %s to be invalid", code)
			}
			if code != "NOTEXIST" && !result {
				t.Errorf("expected %s to be valid", code)
			}
		}(i)
	}
	wg.Wait()
}
