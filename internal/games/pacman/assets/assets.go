// Package assets bundles the mazes and attract-mode demos of both cabinets.
// Files live under levels/<variant>/ and demos/<variant>/; the same layout
// can be loaded from disk with NewLoader(os.DirFS(dir)).
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/model"
)

//go:embed levels demos
var embedded embed.FS

// FS returns the embedded asset tree.
func FS() fs.FS { return embedded }

// Level is a maze file and the variant it belongs to.
type Level struct {
	Variant model.Variant
	Level   *level.Level
	Path    string
}

// DemoFile is a demo and the variant it belongs to.
type DemoFile struct {
	Variant model.Variant
	Demo    *model.Demo
	Path    string
}

// Loader reads levels and demos from a file tree.
type Loader struct {
	FS fs.FS
}

// NewLoader creates a loader over fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{FS: fsys}
}

// Default returns a loader over the embedded assets.
func Default() *Loader {
	return NewLoader(embedded)
}

// LoadLevels parses every .txt file under levels/, sorted by path.
// A malformed maze is an error: levels are not optional.
func (l *Loader) LoadLevels() ([]Level, error) {
	var out []Level
	err := l.walk("levels", ".txt", func(p string, v model.Variant) error {
		f, err := l.FS.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		lv, err := level.Parse(f)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		out = append(out, Level{Variant: v, Level: lv, Path: p})
		return nil
	})
	return out, err
}

// LoadDemos parses every .dem file under demos/, sorted by path.
func (l *Loader) LoadDemos() ([]DemoFile, error) {
	var out []DemoFile
	err := l.walk("demos", ".dem", func(p string, v model.Variant) error {
		f, err := l.FS.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		d, err := model.ParseDemo(path.Base(p), f)
		if err != nil {
			return err
		}
		out = append(out, DemoFile{Variant: v, Demo: d, Path: p})
		return nil
	})
	return out, err
}

// walk calls fn for each file under root with the given extension. The
// first directory below root names the variant; files elsewhere are skipped.
func (l *Loader) walk(root, ext string, fn func(p string, v model.Variant) error) error {
	if _, err := fs.Stat(l.FS, root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return fs.WalkDir(l.FS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(p), ext) {
			return nil
		}
		parts := strings.Split(p, "/")
		if len(parts) != 3 {
			return nil
		}
		v, err := model.ParseVariant(parts[1])
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		return fn(p, v)
	})
}

// Install adds every level to m, then every demo. Demos for the model's own
// variant are checked against its levels first.
func (l *Loader) Install(m *model.Model) error {
	levels, err := l.LoadLevels()
	if err != nil {
		return err
	}
	for _, lv := range levels {
		if err := m.AddLevel(lv.Level, lv.Variant); err != nil {
			return fmt.Errorf("%s: %w", lv.Path, err)
		}
	}

	demos, err := l.LoadDemos()
	if err != nil {
		return err
	}
	for _, d := range demos {
		if d.Variant == m.Variant() {
			if err := m.ValidateDemo(d.Demo); err != nil {
				return fmt.Errorf("%s: %w", d.Path, err)
			}
		}
		if err := m.AddDemo(d.Demo, d.Variant); err != nil {
			return fmt.Errorf("%s: %w", d.Path, err)
		}
	}
	return nil
}

// Install adds the embedded assets to m.
func Install(m *model.Model) error {
	return Default().Install(m)
}
