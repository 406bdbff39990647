package dto

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "cronos/internal/platform/errors"
)

// ParseBlockSpec reads the compact KIND:seconds[:name] form used by the command line
// and the palette. A missing name defaults to the capitalised kind.
func ParseBlockSpec(spec string) (BlockInput, error) {
	parts := strings.SplitN(strings.TrimSpace(spec), ":", 3)
	if len(parts) < 2 || parts[0] == "" {
		return BlockInput{}, fmt.Errorf("%w: block %q must look like KIND:seconds[:name]", apperrors.ErrInvalidInput, spec)
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil {
		return BlockInput{}, fmt.Errorf("%w: block %q has a bad duration", apperrors.ErrInvalidInput, spec)
	}
	name := DefaultBlockName(parts[0])
	if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
		name = strings.TrimSpace(parts[2])
	}
	return BlockInput{Name: name, Duration: seconds, Type: strings.ToUpper(parts[0])}, nil
}

func DefaultBlockName(kind string) string {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		return ""
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}
