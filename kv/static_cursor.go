package kv

import "bytes"

// Pair is a struct for key value pairs.
type Pair struct {
	Key   []byte
	Value []byte
}

type staticCursor struct {
	idx   int
	pairs []Pair
}

// NewStaticCursor returns an instance of a static cursor. It allows
// iteration on a set of key value pairs that cannot change over the life
// of the cursor.
func NewStaticCursor(pairs []Pair) Cursor {
	return &staticCursor{
		pairs: pairs,
	}
}

// Seek searches the slice for the first key with the provided prefix.
func (c *staticCursor) Seek(prefix []byte) ([]byte, []byte) {
	for i, pair := range c.pairs {
		if bytes.HasPrefix(pair.Key, prefix) {
			c.idx = i
			return pair.Key, pair.Value
		}
	}

	return nil, nil
}

func (c *staticCursor) getValueAtIndex() ([]byte, []byte) {
	if c.idx < 0 || c.idx >= len(c.pairs) {
		return nil, nil
	}

	pair := c.pairs[c.idx]
	return pair.Key, pair.Value
}

// First retrieves the first element in the cursor.
func (c *staticCursor) First() ([]byte, []byte) {
	c.idx = 0
	return c.getValueAtIndex()
}

// Last retrieves the last element in the cursor.
func (c *staticCursor) Last() ([]byte, []byte) {
	c.idx = len(c.pairs) - 1
	return c.getValueAtIndex()
}

// Next retrieves the next entry in the cursor.
func (c *staticCursor) Next() ([]byte, []byte) {
	c.idx++
	return c.getValueAtIndex()
}

// Prev retrieves the previous entry in the cursor.
func (c *staticCursor) Prev() ([]byte, []byte) {
	c.idx--
	return c.getValueAtIndex()
}
