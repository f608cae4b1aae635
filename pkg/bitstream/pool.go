package bitstream

import "sync"

// maxPooledWords bounds the word storage kept by pooled readers (64 KiB).
const maxPooledWords = 8192

var readerPool = sync.Pool{
	New: func() any {
		return &Reader{}
	},
}

// GetReader gets a Reader from the pool, reset to read data.
// The Reader should be returned with PutReader when done.
func GetReader(data []byte) *Reader {
	r := readerPool.Get().(*Reader)
	r.Reset(data)
	return r
}

// PutReader returns a Reader to the pool.
// The Reader must not be used after calling this.
func PutReader(r *Reader) {
	if r == nil {
		return
	}
	// Don't pool large buffers to avoid memory bloat
	if cap(r.words) > maxPooledWords {
		return
	}
	r.Reset(nil)
	readerPool.Put(r)
}
