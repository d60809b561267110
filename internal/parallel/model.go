package parallel

import (
	"fmt"
	"strconv"
	"strings"
)

// Model selects how a render pass partitions the image among workers.
// Values match the numeric codes accepted on the command line.
type Model int

const (
	// RowStride gives worker t the rows t, t+W, t+2W, ...
	RowStride Model = iota + 1

	// BlockStride gives worker t the blocks t, t+W, ...
	BlockStride

	// PixelStride gives worker t the flat pixel indices t, t+W, ...
	PixelStride

	// NextFreeRow lets workers pop row indices from a shared queue.
	NextFreeRow

	// NextFreePixel lets workers pop flat pixel indices from a shared queue.
	NextFreePixel

	// NextFreeBlock lets workers pop block indices from a shared queue.
	NextFreeBlock
)

// DefaultBlockSize is the number of rows in a block unit.
const DefaultBlockSize = 2

var modelNames = [...]string{
	RowStride:     "Row Stride",
	BlockStride:   "Block Stride",
	PixelStride:   "Pixel Stride",
	NextFreeRow:   "Next Free Row",
	NextFreePixel: "Next Free Pixel",
	NextFreeBlock: "Next Free Block",
}

// Models returns all models in code order.
func Models() []Model {
	return []Model{RowStride, BlockStride, PixelStride, NextFreeRow, NextFreePixel, NextFreeBlock}
}

// Valid reports whether m is one of the six known models.
func (m Model) Valid() bool {
	return m >= RowStride && m <= NextFreeBlock
}

// String returns the human readable model name.
func (m Model) String() string {
	if !m.Valid() {
		return "Model(" + strconv.Itoa(int(m)) + ")"
	}
	return modelNames[m]
}

// Queued reports whether the model drains a shared queue.
func (m Model) Queued() bool {
	return m >= NextFreeRow && m <= NextFreeBlock
}

// UnitKind returns the kind of unit the model hands out.
func (m Model) UnitKind() UnitKind {
	switch m {
	case BlockStride, NextFreeBlock:
		return UnitBlock
	case PixelStride, NextFreePixel:
		return UnitPixel
	default:
		return UnitRow
	}
}

// ParseModel parses a model from its numeric code ("4") or its name
// ("next free row", "Next-Free-Row", "nextfreerow").
func ParseModel(s string) (Model, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		m := Model(n)
		if !m.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrUnknownModel, n)
		}
		return m, nil
	}

	key := normalizeModelName(s)
	for _, m := range Models() {
		if normalizeModelName(m.String()) == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

func normalizeModelName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(s))
}
