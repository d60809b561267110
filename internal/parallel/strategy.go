package parallel

import "fmt"

// Strategy decides which unit a worker handles next.
//
// Next is called only from the worker's own goroutine. It returns false when the
// worker has no work left. Implementations must partition the unit space: across
// all workers of a pass, every unit id in [0, Space()) is returned exactly once.
type Strategy interface {
	Model() Model
	Space() int
	Next(w *Worker) (Unit, bool)
}

// stride hands worker t the ids t, t+W, t+2W, ... below space.
// The position lives in the worker, so one stride value is shared by all workers
// without coordination.
type stride struct {
	kind  UnitKind
	space int
}

func (s stride) Space() int { return s.space }

func (s stride) Next(w *Worker) (Unit, bool) {
	id := w.cursor
	if id >= s.space {
		return Unit{}, false
	}
	w.cursor += w.workers
	return Unit{Kind: s.kind, Index: id}, true
}

// nextFree hands out whatever id is at the head of the shared queue.
type nextFree struct {
	kind  UnitKind
	queue *ItemQueue
}

func (n nextFree) Space() int { return n.queue.Total() }

func (n nextFree) Next(*Worker) (Unit, bool) {
	id, ok := n.queue.Poll()
	if !ok {
		return Unit{}, false
	}
	return Unit{Kind: n.kind, Index: id}, true
}

// Queue returns the shared queue.
func (n nextFree) Queue() *ItemQueue { return n.queue }

// RowStrideStrategy implements RowStride.
type RowStrideStrategy struct{ stride }

// Model returns RowStride.
func (RowStrideStrategy) Model() Model { return RowStride }

// BlockStrideStrategy implements BlockStride.
type BlockStrideStrategy struct{ stride }

// Model returns BlockStride.
func (BlockStrideStrategy) Model() Model { return BlockStride }

// PixelStrideStrategy implements PixelStride.
type PixelStrideStrategy struct{ stride }

// Model returns PixelStride.
func (PixelStrideStrategy) Model() Model { return PixelStride }

// NextFreeRowStrategy implements NextFreeRow.
type NextFreeRowStrategy struct{ nextFree }

// Model returns NextFreeRow.
func (NextFreeRowStrategy) Model() Model { return NextFreeRow }

// NextFreePixelStrategy implements NextFreePixel.
type NextFreePixelStrategy struct{ nextFree }

// Model returns NextFreePixel.
func (NextFreePixelStrategy) Model() Model { return NextFreePixel }

// NextFreeBlockStrategy implements NextFreeBlock.
type NextFreeBlockStrategy struct{ nextFree }

// Model returns NextFreeBlock.
func (NextFreeBlockStrategy) Model() Model { return NextFreeBlock }

// NewStrategy builds the strategy for model over a size x size raster.
// Next-free strategies get a freshly filled queue; build one strategy per pass.
func NewStrategy(model Model, size, blockSize int) (Strategy, error) {
	if !model.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownModel, int(model))
	}

	kind := model.UnitKind()
	space := ItemCount(kind, size, blockSize)

	switch model {
	case RowStride:
		return RowStrideStrategy{stride{kind, space}}, nil
	case BlockStride:
		return BlockStrideStrategy{stride{kind, space}}, nil
	case PixelStride:
		return PixelStrideStrategy{stride{kind, space}}, nil
	case NextFreeRow:
		return NextFreeRowStrategy{nextFree{kind, NewItemQueue(space)}}, nil
	case NextFreePixel:
		return NextFreePixelStrategy{nextFree{kind, NewItemQueue(space)}}, nil
	default:
		return NextFreeBlockStrategy{nextFree{kind, NewItemQueue(space)}}, nil
	}
}
