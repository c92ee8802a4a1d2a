// Package splitter режет артефакт на N частей — обратная операция к склейке в loader.
package splitter

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/sir_venger/wasm_merge/internal/models"
)

// WriteFunc получает очередную часть; r нужно дочитать до конца.
type WriteFunc func(idx int, name string, r io.Reader) error

// PartNames возвращает имена частей base.part1 … base.partN.
func PartNames(base string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s.part%d", base, i+1)
	}
	return names
}

// Split читает size байт из r и раздаёт их n частям по плану Plan.
// Последняя часть может быть короче остальных.
func Split(ctx context.Context, r io.Reader, size int64, base string, n int, write WriteFunc) ([]models.Part, error) {
	if size < 0 {
		return nil, fmt.Errorf("size is required")
	}

	plan := Plan(size, n)
	names := PartNames(base, plan.Total)
	parts := make([]models.Part, 0, plan.Total)

	remaining := size
	for idx := 0; idx < plan.Total; idx++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		partSize := min(plan.Size, remaining)
		limited := &io.LimitedReader{R: r, N: partSize}
		if err := write(idx, names[idx], limited); err != nil {
			return nil, fmt.Errorf("write %s: %w", names[idx], err)
		}

		written := partSize - limited.N
		if written != partSize {
			return nil, fmt.Errorf("unexpected part length: want %d, got %d", partSize, written)
		}
		parts = append(parts, models.Part{Index: idx, Name: names[idx], Size: written})
		remaining -= written
	}

	if remaining != 0 {
		return nil, fmt.Errorf("incomplete split: %d bytes left", remaining)
	}

	return parts, nil
}

// Plan вычисляет размер каждой из desired частей.
func Plan(length int64, desired int) models.ChunkPlan {
	if desired <= 0 {
		desired = 1
	}
	if length <= 0 {
		return models.ChunkPlan{Total: desired, Size: 0}
	}

	chunkSize := int64(math.Ceil(float64(length) / float64(desired)))
	if chunkSize <= 0 {
		chunkSize = 1
	}

	return models.ChunkPlan{
		Total: desired,
		Size:  chunkSize,
	}
}
