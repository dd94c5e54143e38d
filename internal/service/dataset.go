package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/joeblew999/foldingmap/internal/feature"
	"github.com/joeblew999/foldingmap/internal/style"
)

// ErrDatasetNotFound is returned for an unknown dataset name.
var ErrDatasetNotFound = errors.New("dataset not found")

// DatasetService serves map objects read from GeoJSON files under
// <dataDir>/sources. Files are parsed on first use and kept in memory;
// selection and visibility edits live in memory only.
type DatasetService struct {
	sourcesDir string
	bus        *EventBus

	mu     sync.RWMutex
	loaded map[string]*feature.Collection
}

// NewDatasetService creates a new dataset service. bus may be nil.
func NewDatasetService(dataDir string, bus *EventBus) *DatasetService {
	return &DatasetService{
		sourcesDir: filepath.Join(dataDir, "sources"),
		bus:        bus,
		loaded:     make(map[string]*feature.Collection),
	}
}

// SourcesDir returns the path to the sources directory.
func (s *DatasetService) SourcesDir() string {
	return s.sourcesDir
}

// List returns the GeoJSON files on disk plus any datasets registered in
// memory only, sorted by name.
func (s *DatasetService) List() ([]DatasetFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var files []DatasetFile

	entries, err := os.ReadDir(s.sourcesDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() || !isGeoJSON(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		_, loaded := s.loaded[entry.Name()]
		files = append(files, DatasetFile{
			Name:   entry.Name(),
			Size:   formatSize(info.Size()),
			Loaded: loaded,
		})
		seen[entry.Name()] = true
	}
	for name := range s.loaded {
		if !seen[name] {
			files = append(files, DatasetFile{Name: name, Loaded: true})
		}
	}
	slices.SortFunc(files, func(a, b DatasetFile) int { return strings.Compare(a.Name, b.Name) })
	if files == nil {
		files = []DatasetFile{}
	}
	return files, nil
}

// Put registers a collection under name, replacing any loaded copy.
func (s *DatasetService) Put(name string, c *feature.Collection) {
	s.mu.Lock()
	s.loaded[name] = c
	s.mu.Unlock()
	s.publish("updated", name)
}

// Snapshot returns a copy of the named dataset that later selection and
// visibility edits do not touch.
func (s *DatasetService) Snapshot(name string) (*feature.Collection, error) {
	c, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.Clone(), nil
}

// Objects returns copies of the objects of a dataset within scope.
func (s *DatasetService) Objects(name string, scope feature.Scope) ([]*feature.Object, error) {
	c, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	objs := c.In(scope)
	out := make([]*feature.Object, len(objs))
	for i, o := range objs {
		out[i] = o.Clone()
	}
	return out, nil
}

// FieldNames returns the custom field names of a dataset.
func (s *DatasetService) FieldNames(name string) ([]string, error) {
	c, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.FieldNames(), nil
}

// collection returns the live dataset, parsing its file on first use.
// Callers take s.mu before reading object state.
func (s *DatasetService) collection(name string) (*feature.Collection, error) {
	s.mu.RLock()
	c, ok := s.loaded[name]
	s.mu.RUnlock()
	if ok {
		return c, nil
	}

	if name == "" || filepath.Base(name) != name || !isGeoJSON(name) {
		return nil, fmt.Errorf("%q: %w", name, ErrDatasetNotFound)
	}
	f, err := os.Open(filepath.Join(s.sourcesDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%q: %w", name, ErrDatasetNotFound)
		}
		return nil, err
	}
	defer f.Close()

	c, err = feature.FromGeoJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.loaded[name]; ok {
		return existing, nil
	}
	s.loaded[name] = c
	return c, nil
}

// FieldValues returns the distinct values of a field in a dataset.
func (s *DatasetService) FieldValues(name, variable string, scope feature.Scope) ([]string, error) {
	c, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.FieldValues(variable, scope), nil
}

// Select marks exactly the objects with the given IDs as selected and
// returns how many matched.
func (s *DatasetService) Select(name string, ids []string) (int, error) {
	c, err := s.collection(name)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	n := 0
	for _, o := range c.Objects {
		o.Selected = slices.Contains(ids, o.ID)
		if o.Selected {
			n++
		}
	}
	s.mu.Unlock()
	s.publish("updated", name)
	return n, nil
}

// AggregateVisibility merges the visibility of the selected objects.
func (s *DatasetService) AggregateVisibility(name string) (*style.Visibility, int, error) {
	c, err := s.collection(name)
	if err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sel := c.Selected()
	return feature.AggregateVisibility(sel), len(sel), nil
}

// ApplyVisibility writes an edit to every selected object and returns how
// many were changed.
func (s *DatasetService) ApplyVisibility(name string, e feature.VisibilityEdit) (int, error) {
	c, err := s.collection(name)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	sel := c.Selected()
	err = feature.ApplyVisibility(sel, e)
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}
	s.publish("updated", name)
	return len(sel), nil
}

func (s *DatasetService) publish(action, name string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(Event{Resource: "datasets", Action: action, ID: name})
}

func isGeoJSON(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".geojson", ".json":
		return true
	}
	return false
}

// formatSize returns a human-readable file size.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
