package session

import "sync"

// Cache holds the document a session is currently querying. It is a
// read-through cache: the text is always the stored text of the selected
// document as of the last fetch, never independently mutated.
type Cache struct {
	mu         sync.RWMutex
	documentID int64
	text       string
	populated  bool
}

// SetSelection records the selected document and its text.
func (c *Cache) SetSelection(documentID int64, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.documentID = documentID
	c.text = text
	c.populated = true
}

// Selection returns the selected document id and its cached text.
// ok is false when no document has been selected yet.
func (c *Cache) Selection() (documentID int64, text string, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.populated {
		return 0, "", false
	}
	return c.documentID, c.text, true
}

// Clear drops the current selection.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.documentID = 0
	c.text = ""
	c.populated = false
}
