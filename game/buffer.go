package game

// scratchPool hands out transfer buffers for component copies. Buffers are
// recycled per size and zeroed on release so no component bytes outlive a copy.
type scratchPool struct {
	free        map[int][][]byte
	outstanding int
}

func newScratchPool() scratchPool {
	return scratchPool{free: make(map[int][][]byte)}
}

func (sp *scratchPool) acquire(size int) []byte {
	sp.outstanding++
	if bufs := sp.free[size]; len(bufs) > 0 {
		buf := bufs[len(bufs)-1]
		sp.free[size] = bufs[:len(bufs)-1]
		return buf
	}
	return make([]byte, size)
}

func (sp *scratchPool) release(buf []byte) {
	clear(buf)
	sp.free[len(buf)] = append(sp.free[len(buf)], buf)
	sp.outstanding--
}

// with runs fn with a buffer of exactly size bytes. The buffer is released on
// every exit path, including a panic inside fn.
func (sp *scratchPool) with(size int, fn func(buf []byte) error) error {
	buf := sp.acquire(size)
	defer sp.release(buf)
	return fn(buf)
}
