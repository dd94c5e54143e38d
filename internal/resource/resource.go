// Package resource loads icon and gradient images for themes. A Provider is
// created by the application (or a test) and passed to whatever needs it.
package resource

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"sync"

	_ "golang.org/x/image/bmp"
)

// ErrNotFound is returned when a named resource does not exist.
var ErrNotFound = errors.New("resource not found")

// Provider resolves named images.
type Provider interface {
	Image(name string) (image.Image, error)
}

// FSProvider decodes images from a file system and caches them by name.
// Icons live under "icons/", gradient strips under "gradients/".
type FSProvider struct {
	fsys fs.FS

	mu    sync.Mutex
	cache map[string]image.Image
}

// NewFSProvider returns a provider reading from fsys.
func NewFSProvider(fsys fs.FS) *FSProvider {
	return &FSProvider{fsys: fsys, cache: make(map[string]image.Image)}
}

// NewDirProvider returns a provider rooted at a directory on disk.
func NewDirProvider(dir string) *FSProvider {
	return NewFSProvider(os.DirFS(dir))
}

// Image returns the decoded image at name.
func (p *FSProvider) Image(name string) (image.Image, error) {
	name = path.Clean(name)

	p.mu.Lock()
	defer p.mu.Unlock()

	if img, ok := p.cache[name]; ok {
		return img, nil
	}

	f, err := p.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	p.cache[name] = img
	return img, nil
}

// Icon loads an icon image by file name.
func Icon(p Provider, file string) (image.Image, error) {
	return p.Image(path.Join("icons", file))
}

// Gradient loads a gradient strip by file name.
func Gradient(p Provider, file string) (image.Image, error) {
	return p.Image(path.Join("gradients", file))
}

// Map is an in-memory Provider, mostly for tests.
type Map map[string]image.Image

// Image implements Provider.
func (m Map) Image(name string) (image.Image, error) {
	img, ok := m[path.Clean(name)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return img, nil
}
