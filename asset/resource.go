package asset

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Name of the env var that points at the directory where render assets
// (textures, meshes, skyboxes) are stored.
const assetDirEnvVar = "CRUCIBLE_ASSET_DIR"

// How many directory levels above the working directory are searched for an
// assets/ folder when the env var is unset.
const assetSearchDepth = 6

// The Resource type wraps a streamable local file or remote resource.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns true if the resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Create a new resource data stream. If relTo is specified and pathToResource
// does not define a scheme, the new resource path is resolved relative to the
// directory of relTo. The caller must close the returned resource.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	res, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	// Relative url; clone the parent url and adjust its path.
	if res.Scheme == "" && relTo != nil {
		path := res.Path
		res, _ = url.Parse(relTo.url.String())
		prefix := res.Path
		if res.Scheme == "" {
			prefix, err = filepath.Abs(relTo.url.String())
			if err != nil {
				return nil, fmt.Errorf("asset: could not detect abs path for %s: %s", relTo.url.String(), err.Error())
			}
		}
		res.Path = filepath.Dir(prefix) + "/" + path
	}

	var reader io.ReadCloser
	switch res.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(res.Path))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := http.Get(res.String())
		if err != nil {
			return nil, fmt.Errorf("asset: could not fetch '%s': %s", res.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("asset: could not fetch '%s': status %d", res.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("asset: unsupported scheme '%s'", res.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        res,
	}, nil
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	res, _ := url.Parse(name)
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        res,
	}
}

// Open a named asset. Remote URLs open directly. Local names resolve against
// the directory named by CRUCIBLE_ASSET_DIR, falling back to an assets/
// folder in the working directory or up to assetSearchDepth levels above it.
func Open(name string) (*Resource, error) {
	if strings.Contains(name, "://") {
		return NewResource(name, nil)
	}

	if dir := os.Getenv(assetDirEnvVar); dir != "" {
		return NewResource(filepath.Join(dir, name), nil)
	}

	prefix := "assets"
	for depth := 0; depth <= assetSearchDepth; depth++ {
		candidate := filepath.Join(prefix, name)
		if _, err := os.Stat(candidate); err == nil {
			return NewResource(candidate, nil)
		}
		prefix = filepath.Join("..", prefix)
	}

	return nil, fmt.Errorf("asset: could not locate '%s'; set %s or add an assets/ folder", name, assetDirEnvVar)
}
