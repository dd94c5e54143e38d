package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/joeblew999/foldingmap/internal/ramp"
	"github.com/joeblew999/foldingmap/internal/resource"
	"github.com/joeblew999/foldingmap/internal/style"
	"github.com/joeblew999/foldingmap/internal/theme"
	"github.com/joeblew999/foldingmap/internal/themefile"
)

var (
	ErrThemeNotFound   = errors.New("theme not found")
	ErrThemeExists     = errors.New("theme already exists")
	ErrBuiltinReadOnly = errors.New("built-in themes cannot be modified")
	ErrStyleNotFound   = errors.New("style not found")
)

// ThemeService holds the built-in themes and the user themes stored as YAML
// under <dataDir>/themes. Theme names are matched ignoring case.
type ThemeService struct {
	dataDir string
	res     resource.Provider
	bus     *EventBus

	mu     sync.RWMutex
	themes map[string]*theme.MapTheme
}

// NewThemeService creates the service and loads user themes from disk.
// Files that fail to load are logged and skipped. bus may be nil.
func NewThemeService(dataDir string, res resource.Provider, bus *EventBus) *ThemeService {
	s := &ThemeService{
		dataDir: dataDir,
		res:     res,
		bus:     bus,
		themes:  make(map[string]*theme.MapTheme),
	}
	for _, t := range theme.Builtins(res) {
		s.themes[key(t.Name)] = t
	}
	s.loadFromDisk()
	return s
}

// List returns a summary of every theme, sorted by name.
func (s *ThemeService) List() []ThemeInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ThemeInfo, 0, len(s.themes))
	for _, t := range s.themes {
		out = append(out, infoOf(t))
	}
	slices.SortFunc(out, func(a, b ThemeInfo) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Get returns a theme by name. MapTheme guards its own state, so the value
// is shared rather than copied.
func (s *ThemeService) Get(name string) (*theme.MapTheme, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.themes[key(name)]
	return t, ok
}

// Create adds a user theme. When base is set the new theme starts as a copy
// of it; otherwise it holds only the unspecified fallbacks.
func (s *ThemeService) Create(name, base string, background style.Color) (*theme.MapTheme, error) {
	name = strings.TrimSpace(name)
	if generateID(name) == "" {
		return nil, fmt.Errorf("theme name %q has no usable characters", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.themes[key(name)]; exists {
		return nil, fmt.Errorf("%q: %w", name, ErrThemeExists)
	}
	// Two themes must not share a file.
	id := generateID(name)
	for _, t := range s.themes {
		if generateID(t.Name) == id {
			return nil, fmt.Errorf("%q is saved as %s.yaml like %q: %w", name, id, t.Name, ErrThemeExists)
		}
	}

	var t *theme.MapTheme
	if base != "" {
		src, ok := s.themes[key(base)]
		if !ok {
			return nil, fmt.Errorf("base %q: %w", base, ErrThemeNotFound)
		}
		t = src.Copy(name)
	} else {
		t = theme.New(name, background, s.res)
	}

	if err := s.saveToDisk(t); err != nil {
		return nil, err
	}
	s.themes[key(name)] = t
	s.publish("created", t.Name)
	return t, nil
}

// Delete removes a user theme and its file.
func (s *ThemeService) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.writable(name)
	if err != nil {
		return err
	}
	if err := os.Remove(s.themeFile(t.Name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	delete(s.themes, key(name))
	s.publish("deleted", t.Name)
	return nil
}

// PutStyle adds or replaces a style in a user theme and saves it. A failed
// save restores the previous style.
func (s *ThemeService) PutStyle(name string, st style.Style) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.writable(name)
	if err != nil {
		return err
	}
	prev := t.Style(st.Kind(), st.Base().ID)
	if err := t.AddStyle(st); err != nil {
		return err
	}
	if err := s.saveToDisk(t); err != nil {
		if prev != nil {
			_ = t.AddStyle(prev)
		} else {
			t.RemoveStyle(st.Kind(), st.Base().ID)
		}
		return err
	}
	s.publish("updated", t.Name)
	return nil
}

// RemoveStyle deletes a style from a user theme and saves it. A failed save
// puts the style back.
func (s *ThemeService) RemoveStyle(name string, kind style.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.writable(name)
	if err != nil {
		return err
	}
	prev := t.Style(kind, id)
	if !t.RemoveStyle(kind, id) {
		return fmt.Errorf("%s %q: %w", kind, id, ErrStyleNotFound)
	}
	if err := s.saveToDisk(t); err != nil {
		_ = t.AddStyle(prev)
		return err
	}
	s.publish("updated", t.Name)
	return nil
}

// PutRamp stores a colour ramp. Ramps are overlays rather than styles, so
// built-in themes accept them too; only user themes are saved.
func (s *ThemeService) PutRamp(name string, r *ramp.ColorRamp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.themes[key(name)]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrThemeNotFound)
	}
	prev, existed := t.ColorRamp(r.ID)
	if err := t.AddColorRamp(r); err != nil {
		return err
	}
	if !theme.IsBuiltin(t.Name) {
		if err := s.saveToDisk(t); err != nil {
			if existed {
				_ = t.AddColorRamp(prev)
			} else {
				t.RemoveColorRamp(r.ID)
			}
			return err
		}
	}
	s.publish("updated", t.Name)
	return nil
}

// writable returns a user theme. Callers hold the write lock.
func (s *ThemeService) writable(name string) (*theme.MapTheme, error) {
	t, ok := s.themes[key(name)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrThemeNotFound)
	}
	if theme.IsBuiltin(t.Name) {
		return nil, fmt.Errorf("%q: %w", t.Name, ErrBuiltinReadOnly)
	}
	return t, nil
}

func (s *ThemeService) publish(action, name string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(Event{Resource: "themes", Action: action, ID: name})
}

// themesDir returns the directory holding user theme files.
func (s *ThemeService) themesDir() string {
	return filepath.Join(s.dataDir, "themes")
}

// themeFile returns the path a user theme is saved at.
func (s *ThemeService) themeFile(name string) string {
	return filepath.Join(s.themesDir(), generateID(name)+".yaml")
}

// loadFromDisk loads every *.yaml file in the themes directory.
func (s *ThemeService) loadFromDisk() {
	paths, err := filepath.Glob(filepath.Join(s.themesDir(), "*.yaml"))
	if err != nil {
		return
	}
	for _, p := range paths {
		t, err := themefile.Load(p, s.res)
		if err != nil {
			slog.Warn("skipping theme file", "path", p, "err", err)
			continue
		}
		if theme.IsBuiltin(t.Name) {
			slog.Warn("theme file shadows a built-in theme, skipping", "path", p, "name", t.Name)
			continue
		}
		s.themes[key(t.Name)] = t
	}
}

// saveToDisk writes a user theme to its file.
func (s *ThemeService) saveToDisk(t *theme.MapTheme) error {
	return themefile.Save(s.themeFile(t.Name), t)
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// generateID creates a file-safe ID from a name.
func generateID(name string) string {
	id := strings.ToLower(name)
	id = strings.ReplaceAll(id, " ", "_")
	var result strings.Builder
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
