package ripper

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newMockFrontend(t *testing.T) *httptest.Server {
	t.Helper()

	files := map[string]string{
		"/modules.json":                  `[]`,
		"/lecturers.json":                `[{"full_name":"Max Muster","shorthands":["MM"]}]`,
		"/semester-versions.json":        `[{"semester":"hs2025","versions":["v1","v2"]}]`,
		"/hs2025/blockclasses.json":      `[]`,
		"/hs2025/config.json":            `{"blockclass_file":"blocks-hs2025.json"}`,
		"/hs2025/blocks-hs2025.json":     `[]`,
		"/hs2025/v1/classes.json":        `[]`,
		"/hs2025/v1/config.json":         `{}`,
		"/hs2025/v1/klassen.pdf":         "%PDF-1.4 fake",
		"/hs2025/v2/classes.json":        `[]`,
		"/hs2025/v2/config.json":         `{}`,
		// v2 has no klassen.pdf: the ripper must tolerate the 404.
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
}

func TestMirror_DownloadsEverything(t *testing.T) {
	server := newMockFrontend(t)
	defer server.Close()

	outputDir := t.TempDir()
	client := NewClient(server.URL, nil)

	if err := client.Mirror(outputDir); err != nil {
		t.Fatalf("unexpected mirror error: %v", err)
	}

	expected := []string{
		"modules.json",
		"lecturers.json",
		"semester-versions.json",
		filepath.Join("hs2025", "blockclasses.json"),
		filepath.Join("hs2025", "config.json"),
		filepath.Join("hs2025", "blocks-hs2025.json"),
		filepath.Join("hs2025", "v1", "classes.json"),
		filepath.Join("hs2025", "v1", "klassen.pdf"),
		filepath.Join("hs2025", "v2", "classes.json"),
	}
	for _, rel := range expected {
		if _, err := os.Stat(filepath.Join(outputDir, rel)); err != nil {
			t.Errorf("expected %s to be mirrored: %v", rel, err)
		}
	}

	// The missing v2 klassen.pdf must not exist and must not have failed
	// the mirror.
	if _, err := os.Stat(filepath.Join(outputDir, "hs2025", "v2", "klassen.pdf")); err == nil {
		t.Error("a 404 file must not be written")
	}
}

func TestFetchSemesterVersions(t *testing.T) {
	server := newMockFrontend(t)
	defer server.Close()

	client := NewClient(server.URL, nil)
	entries, err := client.FetchSemesterVersions(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected one semester entry, got %d", len(entries))
	}
	if entries[0].Semester != "hs2025" || len(entries[0].Versions) != 2 {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestDownload_UnexpectedStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	if _, err := client.Download("modules.json", filepath.Join(t.TempDir(), "modules.json")); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}
