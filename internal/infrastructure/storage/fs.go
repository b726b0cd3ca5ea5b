package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"svw.info/sodo/internal/domain"
)

// FS stores puzzles as pretty-printed JSON files under
// <dir>/<difficulty>/<id>.json. Files directly in <dir> are accepted on
// read for backward compatibility with the flat layout.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) pathFor(id string, d domain.Difficulty) string {
	return filepath.Join(s.dir, d.String(), strings.TrimSpace(id)+".json")
}

func (s *FS) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	target := s.pathFor(p.ID, p.Difficulty)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	candidates := make([]string, 0, 5)
	for _, d := range []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard, domain.Expert} {
		candidates = append(candidates, s.pathFor(id, d))
	}
	candidates = append(candidates, filepath.Join(s.dir, id+".json")) // legacy flat layout

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		var out domain.Puzzle
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, os.ErrNotExist
}

func (s *FS) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	var out []domain.PuzzleMeta
	dirs := []string{
		filepath.Join(s.dir, domain.Easy.String()),
		filepath.Join(s.dir, domain.Medium.String()),
		filepath.Join(s.dir, domain.Hard.String()),
		filepath.Join(s.dir, domain.Expert.String()),
		s.dir, // legacy flat files
	}
	for _, dir := range dirs {
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var meta domain.PuzzleMeta
			if err := json.Unmarshal(data, &meta); err != nil || meta.ID == "" {
				continue
			}
			out = append(out, meta)
		}
	}
	return out, nil
}
