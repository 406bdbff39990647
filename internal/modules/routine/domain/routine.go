package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "cronos/internal/platform/errors"
)

type BlockKind string

const (
	BlockKindPrep  BlockKind = "PREP"
	BlockKindWork  BlockKind = "WORK"
	BlockKindRest  BlockKind = "REST"
	BlockKindOther BlockKind = "OTHER"
)

const SchemaVersion = 1

// MaxBlockSeconds caps a block at one day.
const MaxBlockSeconds = 24 * 60 * 60

func (k BlockKind) Validate() error {
	switch k {
	case BlockKindPrep, BlockKindWork, BlockKindRest, BlockKindOther:
		return nil
	default:
		return fmt.Errorf("%w: unsupported block kind %q", apperrors.ErrInvalidRoutine, string(k))
	}
}

// ParseBlockKind accepts any letter case.
func ParseBlockKind(raw string) (BlockKind, error) {
	kind := BlockKind(strings.ToUpper(strings.TrimSpace(raw)))
	if err := kind.Validate(); err != nil {
		return "", err
	}
	return kind, nil
}

type Block struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Duration int       `json:"duration"`
	Kind     BlockKind `json:"type"`
}

func (b Block) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("%w: block id is required", apperrors.ErrInvalidRoutine)
	}
	if b.Duration <= 0 {
		return fmt.Errorf("%w: block %q duration must be positive", apperrors.ErrInvalidRoutine, b.Name)
	}
	if b.Duration > MaxBlockSeconds {
		return fmt.Errorf("%w: block %q is longer than %d seconds", apperrors.ErrInvalidRoutine, b.Name, MaxBlockSeconds)
	}
	return b.Kind.Validate()
}

// Routine is a template. TotalDuration is derived from Blocks and is only ever set by
// recompute; every edit below returns a fresh value with its own block slice.
type Routine struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Blocks        []Block   `json:"blocks"`
	TotalDuration int       `json:"totalDuration"`
	LastPlayed    time.Time `json:"lastPlayed,omitempty"`
}

func New(id, name string, blocks []Block) Routine {
	return Routine{ID: id, Name: strings.TrimSpace(name)}.withBlocks(blocks)
}

func (r Routine) withBlocks(blocks []Block) Routine {
	r.Blocks = append([]Block(nil), blocks...)
	r.TotalDuration = 0
	for _, b := range r.Blocks {
		r.TotalDuration += b.Duration
	}
	return r
}

// Clone returns a deep copy safe to hand to a running session.
func (r Routine) Clone() Routine {
	return r.withBlocks(r.Blocks)
}

func (r Routine) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: routine id is required", apperrors.ErrInvalidRoutine)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: routine name is required", apperrors.ErrInvalidRoutine)
	}
	if len(r.Blocks) == 0 {
		return fmt.Errorf("%w: routine needs at least one block", apperrors.ErrInvalidRoutine)
	}
	seen := make(map[string]struct{}, len(r.Blocks))
	for _, b := range r.Blocks {
		if err := b.Validate(); err != nil {
			return err
		}
		if _, ok := seen[b.ID]; ok {
			return fmt.Errorf("%w: duplicate block id %s", apperrors.ErrInvalidRoutine, b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}

func (r Routine) Rename(name string) Routine {
	r = r.Clone()
	r.Name = strings.TrimSpace(name)
	return r
}

func (r Routine) IndexOf(blockID string) int {
	for i, b := range r.Blocks {
		if b.ID == blockID {
			return i
		}
	}
	return -1
}

func (r Routine) AppendBlock(block Block) Routine {
	return r.InsertBlock(len(r.Blocks), block)
}

// InsertBlock clamps at into [0, len(Blocks)].
func (r Routine) InsertBlock(at int, block Block) Routine {
	if at < 0 {
		at = 0
	}
	if at > len(r.Blocks) {
		at = len(r.Blocks)
	}
	blocks := make([]Block, 0, len(r.Blocks)+1)
	blocks = append(blocks, r.Blocks[:at]...)
	blocks = append(blocks, block)
	blocks = append(blocks, r.Blocks[at:]...)
	return r.withBlocks(blocks)
}

// BlockPatch carries optional field updates; nil fields are left untouched.
type BlockPatch struct {
	Name     *string
	Duration *int
	Kind     *BlockKind
}

func (r Routine) UpdateBlock(blockID string, patch BlockPatch) (Routine, error) {
	idx := r.IndexOf(blockID)
	if idx < 0 {
		return r, fmt.Errorf("block %s: %w", blockID, apperrors.ErrNotFound)
	}
	out := r.Clone()
	b := out.Blocks[idx]
	if patch.Name != nil {
		b.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Duration != nil {
		b.Duration = *patch.Duration
	}
	if patch.Kind != nil {
		b.Kind = *patch.Kind
	}
	out.Blocks[idx] = b
	return out.withBlocks(out.Blocks), nil
}

func (r Routine) RemoveBlock(blockID string) (Routine, error) {
	idx := r.IndexOf(blockID)
	if idx < 0 {
		return r, fmt.Errorf("block %s: %w", blockID, apperrors.ErrNotFound)
	}
	blocks := make([]Block, 0, len(r.Blocks)-1)
	blocks = append(blocks, r.Blocks[:idx]...)
	blocks = append(blocks, r.Blocks[idx+1:]...)
	return r.withBlocks(blocks), nil
}

// MoveBlock swaps the block at index with its neighbour in direction (-1 up, +1 down).
// Moving past either edge leaves the routine unchanged.
func (r Routine) MoveBlock(index, direction int) Routine {
	if direction != -1 && direction != 1 {
		return r.Clone()
	}
	target := index + direction
	if index < 0 || index >= len(r.Blocks) || target < 0 || target >= len(r.Blocks) {
		return r.Clone()
	}
	out := r.Clone()
	out.Blocks[index], out.Blocks[target] = out.Blocks[target], out.Blocks[index]
	return out
}

// DuplicateBlock appends a copy of the block with a fresh id and a " (copy)" name suffix.
func (r Routine) DuplicateBlock(blockID, newID string) (Routine, error) {
	idx := r.IndexOf(blockID)
	if idx < 0 {
		return r, fmt.Errorf("block %s: %w", blockID, apperrors.ErrNotFound)
	}
	copied := r.Blocks[idx]
	copied.ID = newID
	copied.Name = copied.Name + " (copy)"
	return r.AppendBlock(copied), nil
}

func (r Routine) MarkPlayed(at time.Time) Routine {
	out := r.Clone()
	out.LastPlayed = at
	return out
}
