package assets

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// BuiltinPrefix marks sources generated in code rather than fetched.
const BuiltinPrefix = "builtin:"

// maxDownload caps a single fetched file.
const maxDownload = 64 << 20

var (
	ErrUnsafeURI = errors.New("assets: resource uri escapes its directory")
	ErrTooLarge  = errors.New("assets: download exceeds size limit")
)

// Fetcher makes a model source available as a local file. Remote glTF
// files are downloaded together with their external buffers and images.
type Fetcher struct {
	CacheDir string
	Client   *http.Client
	MaxBytes int64 // per file; zero means maxDownload
}

func NewFetcher(cacheDir string) *Fetcher {
	return &Fetcher{
		CacheDir: cacheDir,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch returns a path the model loader can open. Builtin sources are
// returned unchanged.
func (f *Fetcher) Fetch(ctx context.Context, source string) (string, error) {
	if strings.HasPrefix(source, BuiltinPrefix) {
		return source, nil
	}
	if isRemote(source) {
		return f.fetchRemote(ctx, source)
	}
	return checkLocal(source)
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func checkLocal(p string) (string, error) {
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("model %s: %w", p, err)
	}
	if !isGLTF(p) {
		return p, nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", p, err)
	}
	uris, err := ExternalURIs(data)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", p, err)
	}
	dir := filepath.Dir(p)
	for _, uri := range uris {
		rel, err := safeRelative(uri)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			return "", fmt.Errorf("model %s: resource %s: %w", p, uri, err)
		}
	}
	return p, nil
}

func (f *Fetcher) fetchRemote(ctx context.Context, source string) (string, error) {
	base, err := url.Parse(source)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", source, err)
	}

	sum := sha1.Sum([]byte(source))
	dir := filepath.Join(f.CacheDir, hex.EncodeToString(sum[:6]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cache dir: %w", err)
	}

	name := path.Base(base.Path)
	if name == "." || name == "/" || name == "" {
		name = "model.gltf"
	}
	data, err := f.download(ctx, source)
	if err != nil {
		return "", err
	}
	local := filepath.Join(dir, name)
	if err := os.WriteFile(local, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", local, err)
	}

	if !isGLTF(name) {
		return local, nil
	}

	uris, err := ExternalURIs(data)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", source, err)
	}
	for _, uri := range uris {
		rel, err := safeRelative(uri)
		if err != nil {
			return "", err
		}
		ref, err := base.Parse(uri)
		if err != nil {
			return "", fmt.Errorf("resource %s: %w", uri, err)
		}
		body, err := f.download(ctx, ref.String())
		if err != nil {
			return "", err
		}
		dst := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return "", fmt.Errorf("cache dir: %w", err)
		}
		if err := os.WriteFile(dst, body, 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", dst, err)
		}
	}
	return local, nil
}

func (f *Fetcher) download(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", u, resp.Status)
	}
	limit := f.MaxBytes
	if limit <= 0 {
		limit = maxDownload
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("fetch %s: %w (%d bytes)", u, ErrTooLarge, limit)
	}
	return data, nil
}

func isGLTF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".gltf")
}

// gltfRefs is the subset of a glTF document that names external files.
type gltfRefs struct {
	Buffers []struct {
		URI string `json:"uri"`
	} `json:"buffers"`
	Images []struct {
		URI string `json:"uri"`
	} `json:"images"`
}

// ExternalURIs lists the buffer and image URIs of a glTF document that
// refer to separate files. Embedded data: URIs are skipped.
func ExternalURIs(gltf []byte) ([]string, error) {
	var refs gltfRefs
	if err := json.Unmarshal(gltf, &refs); err != nil {
		return nil, fmt.Errorf("parse gltf: %w", err)
	}
	var uris []string
	seen := make(map[string]bool)
	add := func(uri string) {
		if uri == "" || strings.HasPrefix(uri, "data:") || seen[uri] {
			return
		}
		seen[uri] = true
		uris = append(uris, uri)
	}
	for _, b := range refs.Buffers {
		add(b.URI)
	}
	for _, img := range refs.Images {
		add(img.URI)
	}
	return uris, nil
}

func safeRelative(uri string) (string, error) {
	decoded, err := url.PathUnescape(uri)
	if err != nil {
		return "", fmt.Errorf("resource %s: %w", uri, err)
	}
	clean := path.Clean(decoded)
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") || strings.Contains(clean, "://") {
		return "", fmt.Errorf("%w: %s", ErrUnsafeURI, uri)
	}
	return filepath.FromSlash(clean), nil
}
