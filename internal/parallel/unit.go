// Package parallel provides the work-distribution core for workdist render passes.
//
// A render pass splits a size x size raster into work units (rows, single pixels or
// blocks of consecutive rows) and hands them to a fixed set of workers. How units are
// assigned is decided by a Model:
//
//   - Stride models derive each worker's units from its own index and the worker
//     count. No state is shared between workers.
//   - Next-free models drain a shared ItemQueue that is pre-filled before any
//     worker starts.
//
// Workers write into a shared buffer without locks. This is safe only because
// every model assigns each pixel to exactly one worker. A new model must keep that
// property; WriteTracker can check it at runtime.
package parallel

// UnitKind identifies what a Unit index refers to.
type UnitKind uint8

const (
	// UnitRow is a full image row.
	UnitRow UnitKind = iota

	// UnitPixel is a single pixel addressed by its flat index row*size+col.
	UnitPixel

	// UnitBlock is a run of BlockSize consecutive rows.
	UnitBlock
)

// String returns the unit kind name.
func (k UnitKind) String() string {
	switch k {
	case UnitRow:
		return "row"
	case UnitPixel:
		return "pixel"
	case UnitBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Unit is the indivisible piece of work handed to a worker in one scheduling decision.
type Unit struct {
	Kind  UnitKind
	Index int
}

// BlockCount returns the number of blocks needed to cover size rows.
// The last block is short when size is not a multiple of blockSize.
func BlockCount(size, blockSize int) int {
	if size <= 0 || blockSize <= 0 {
		return 0
	}
	return (size + blockSize - 1) / blockSize
}

// ItemCount returns the size of the unit space for the given kind.
func ItemCount(kind UnitKind, size, blockSize int) int {
	switch kind {
	case UnitRow:
		return size
	case UnitPixel:
		return size * size
	case UnitBlock:
		return BlockCount(size, blockSize)
	default:
		return 0
	}
}

// Rows returns the half-open row range [start, end) covered by a row or block unit.
// Pixel units cover part of a single row and return that row.
func (u Unit) Rows(size, blockSize int) (start, end int) {
	switch u.Kind {
	case UnitBlock:
		start = u.Index * blockSize
		end = min(start+blockSize, size)
		return start, end
	case UnitPixel:
		row := u.Index / size
		return row, row + 1
	default:
		return u.Index, u.Index + 1
	}
}

// Each calls fn for every pixel of the unit, row by row, left to right.
func (u Unit) Each(size, blockSize int, fn func(col, row int)) {
	if u.Kind == UnitPixel {
		fn(u.Index%size, u.Index/size)
		return
	}

	start, end := u.Rows(size, blockSize)
	for row := start; row < end; row++ {
		for col := 0; col < size; col++ {
			fn(col, row)
		}
	}
}

// Pixels returns the number of pixels in the unit.
func (u Unit) Pixels(size, blockSize int) int {
	if u.Kind == UnitPixel {
		return 1
	}
	start, end := u.Rows(size, blockSize)
	return (end - start) * size
}
