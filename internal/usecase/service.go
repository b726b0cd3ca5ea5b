package usecase

import (
	"context"
	"errors"

	"svw.info/sodo/internal/domain"
	"svw.info/sodo/internal/ports"
)

// Service is the engine's public face: every binding layer (HTTP, CLI)
// goes through it. Calls are synchronous and stateless; each delegates to
// one port and returns.
type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Storage   ports.Storage
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator, h ports.Hinter, st ports.Storage) *Service {
	return &Service{Solver: s, Generator: g, Validator: v, Hinter: h, Storage: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Solve(ctx context.Context, g *domain.Grid) (*domain.Grid, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, g)
}

func (u *Service) CountSolutions(ctx context.Context, g *domain.Grid, limit int) (int, ports.Stats, error) {
	if u.Solver == nil {
		return 0, ports.Stats{}, errNotConfigured
	}
	return u.Solver.CountSolutions(ctx, g, limit)
}

func (u *Service) IsSolvable(ctx context.Context, g *domain.Grid) (bool, error) {
	if u.Solver == nil {
		return false, errNotConfigured
	}
	return u.Solver.IsSolvable(ctx, g)
}

func (u *Service) Generate(ctx context.Context, seed int64, d domain.Difficulty, box int) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, d, box)
}

func (u *Service) ValidateGrid(ctx context.Context, g *domain.Grid) (bool, []domain.CellCoord, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.ValidateGrid(ctx, g)
}

func (u *Service) ValidateSolution(ctx context.Context, puzzle, candidate *domain.Grid) (bool, error) {
	if u.Validator == nil {
		return false, errNotConfigured
	}
	return u.Validator.ValidateSolution(ctx, puzzle, candidate)
}

func (u *Service) Hint(ctx context.Context, g *domain.Grid) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(ctx, g)
}

// Persistence
func (u *Service) Save(ctx context.Context, p *domain.Puzzle) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, p)
}

func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}

func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
