package assets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const testGLTF = `{
  "asset": {"version": "2.0"},
  "buffers": [
    {"uri": "icon.bin", "byteLength": 4},
    {"uri": "data:application/octet-stream;base64,AAAA", "byteLength": 3}
  ],
  "images": [{"uri": "textures/skin.png"}]
}`

func TestExternalURIs(t *testing.T) {
	uris, err := ExternalURIs([]byte(testGLTF))
	if err != nil {
		t.Fatalf("ExternalURIs failed: %v", err)
	}
	if len(uris) != 2 || uris[0] != "icon.bin" || uris[1] != "textures/skin.png" {
		t.Errorf("Unexpected uris %v", uris)
	}

	if _, err := ExternalURIs([]byte("not json")); err == nil {
		t.Error("Expected parse error")
	}
}

func TestFetchBuiltin(t *testing.T) {
	f := NewFetcher(t.TempDir())
	got, err := f.Fetch(context.Background(), "builtin:torus")
	if err != nil || got != "builtin:torus" {
		t.Errorf("Expected builtin passthrough, got %q %v", got, err)
	}
}

func TestFetchLocal(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "icon.gltf")
	os.WriteFile(model, []byte(testGLTF), 0o644)

	f := NewFetcher(t.TempDir())
	if _, err := f.Fetch(context.Background(), model); err == nil {
		t.Error("Expected error while external buffers are missing")
	}

	os.WriteFile(filepath.Join(dir, "icon.bin"), []byte{1, 2, 3, 4}, 0o644)
	os.MkdirAll(filepath.Join(dir, "textures"), 0o755)
	os.WriteFile(filepath.Join(dir, "textures", "skin.png"), []byte{0}, 0o644)

	got, err := f.Fetch(context.Background(), model)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if got != model {
		t.Errorf("Expected local path unchanged, got %q", got)
	}

	if _, err := f.Fetch(context.Background(), filepath.Join(dir, "missing.gltf")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFetchRemoteWithBuffers(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/models/icon.gltf", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testGLTF))
	})
	mux.HandleFunc("/models/icon.bin", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{1, 2, 3, 4})
	})
	mux.HandleFunc("/models/textures/skin.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{9})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(t.TempDir())
	local, err := f.Fetch(context.Background(), srv.URL+"/models/icon.gltf")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if filepath.Base(local) != "icon.gltf" {
		t.Errorf("Unexpected local name %q", local)
	}
	bin, err := os.ReadFile(filepath.Join(filepath.Dir(local), "icon.bin"))
	if err != nil || len(bin) != 4 {
		t.Errorf("Buffer not fetched alongside model: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(local), "textures", "skin.png")); err != nil {
		t.Errorf("Image not fetched: %v", err)
	}
}

func TestFetchRemoteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := NewFetcher(t.TempDir())
	if _, err := f.Fetch(context.Background(), srv.URL+"/missing.gltf"); err == nil {
		t.Error("Expected error for 404")
	}
}

func TestFetchRemoteRejectsOversized(t *testing.T) {
	body := []byte("0123456789abcdef")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	cache := t.TempDir()
	f := NewFetcher(cache)
	f.MaxBytes = int64(len(body)) - 1
	if _, err := f.Fetch(context.Background(), srv.URL+"/icon.glb"); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Expected ErrTooLarge, got %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(cache, "*", "icon.glb"))
	if len(matches) != 0 {
		t.Errorf("Truncated download should not be cached, found %v", matches)
	}

	f.MaxBytes = int64(len(body))
	local, err := f.Fetch(context.Background(), srv.URL+"/icon.glb")
	if err != nil {
		t.Fatalf("Fetch at the limit failed: %v", err)
	}
	if data, _ := os.ReadFile(local); len(data) != len(body) {
		t.Errorf("Expected %d bytes cached, got %d", len(body), len(data))
	}
}

func TestFetchRemoteCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(t.TempDir())
	_, err := f.Fetch(ctx, srv.URL+"/icon.gltf")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSafeRelativeRejectsEscapes(t *testing.T) {
	for _, uri := range []string{"../secret.bin", "/etc/passwd", "a/../../b.bin", "http://evil/x.bin"} {
		if _, err := safeRelative(uri); !errors.Is(err, ErrUnsafeURI) {
			t.Errorf("safeRelative(%q) should fail, got %v", uri, err)
		}
	}
	if rel, err := safeRelative("sub/dir/ok%20name.bin"); err != nil || filepath.ToSlash(rel) != "sub/dir/ok name.bin" {
		t.Errorf("Unexpected result %q %v", rel, err)
	}
}

func TestLookupColor(t *testing.T) {
	if LookupColor("SkyBlue") != LookupColor("SkyBlue") || LookupColor("nope") != LookupColor("White") {
		t.Error("LookupColor should fall back to white")
	}
}
