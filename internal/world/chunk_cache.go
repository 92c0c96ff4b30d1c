package world

// chunkCache maps coordinates to resident chunk data. It is not safe for
// concurrent use; ChunkStreamer guards it and replaces it wholesale on reset.
type chunkCache struct {
	chunks   map[ChunkCoord]*ChunkData
	modCount uint64 // increases on every insert
}

func newChunkCache() *chunkCache {
	return &chunkCache{chunks: make(map[ChunkCoord]*ChunkData)}
}

func (c *chunkCache) get(coord ChunkCoord) (*ChunkData, bool) {
	data, ok := c.chunks[coord]
	return data, ok
}

func (c *chunkCache) has(coord ChunkCoord) bool {
	_, ok := c.chunks[coord]
	return ok
}

// insert stores data unless coord is already resident; it reports whether
// the entry was added.
func (c *chunkCache) insert(coord ChunkCoord, data *ChunkData) bool {
	if _, ok := c.chunks[coord]; ok {
		return false
	}
	c.chunks[coord] = data
	c.modCount++
	return true
}

func (c *chunkCache) len() int {
	return len(c.chunks)
}

// appendAll appends every resident chunk to dst.
func (c *chunkCache) appendAll(dst []ChunkView) []ChunkView {
	for coord, data := range c.chunks {
		dst = append(dst, ChunkView{Coord: coord, Chunk: data})
	}
	return dst
}
