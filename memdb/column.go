package memdb

const blockRows = 64

// column stores the fixed-size rows of one component type in blocks of
// blockRows rows. Row indices are assigned by the owning table.
type column struct {
	size   int
	blocks [][]byte
}

func newColumn(size int) *column {
	return &column{size: size}
}

// ensure grows the column so that row is addressable.
func (c *column) ensure(row uint32) {
	blockIdx := int(row) / blockRows
	for blockIdx >= len(c.blocks) {
		c.blocks = append(c.blocks, make([]byte, blockRows*c.size))
	}
}

// get returns the bytes of row. The slice aliases column memory.
func (c *column) get(row uint32) []byte {
	blockIdx := int(row) / blockRows
	slotIdx := int(row) % blockRows
	if blockIdx >= len(c.blocks) {
		return nil
	}
	start := slotIdx * c.size
	return c.blocks[blockIdx][start : start+c.size : start+c.size]
}

func (c *column) set(row uint32, data []byte) {
	c.ensure(row)
	copy(c.get(row), data)
}

// zero clears row so a recycled slot starts from the zero value.
func (c *column) zero(row uint32) {
	if data := c.get(row); data != nil {
		clear(data)
	}
}

// compact copies rows to their new positions, given as old->new, and drops
// blocks that are no longer needed.
func (c *column) compact(indexMap map[uint32]uint32, rows uint32) {
	numBlocks := (int(rows) + blockRows - 1) / blockRows
	newBlocks := make([][]byte, numBlocks)
	for i := range newBlocks {
		newBlocks[i] = make([]byte, blockRows*c.size)
	}

	for oldRow, newRow := range indexMap {
		src := c.get(oldRow)
		start := (int(newRow) % blockRows) * c.size
		copy(newBlocks[int(newRow)/blockRows][start:start+c.size], src)
	}

	c.blocks = newBlocks
}
