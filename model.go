package workdist

import "github.com/gogpu/workdist/internal/parallel"

// Model selects how a render pass partitions the image among workers.
type Model = parallel.Model

// Distribution models, numbered as on the command line.
const (
	RowStride     = parallel.RowStride
	BlockStride   = parallel.BlockStride
	PixelStride   = parallel.PixelStride
	NextFreeRow   = parallel.NextFreeRow
	NextFreePixel = parallel.NextFreePixel
	NextFreeBlock = parallel.NextFreeBlock
)

// DefaultBlockSize is the number of rows in a block unit.
const DefaultBlockSize = parallel.DefaultBlockSize

// Models returns the six distribution models in code order.
func Models() []Model {
	return parallel.Models()
}

// ParseModel parses a model from its numeric code or its name.
func ParseModel(s string) (Model, error) {
	return parallel.ParseModel(s)
}
