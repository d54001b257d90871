package items

// Item represents a single to-do entry.
//
// The ID is assigned by storage. Application code creates items with NewItem
// and never sets the ID; only the storage layer hydrates it via ItemFromRow.
type Item struct {
	ID          int64  `json:"id,omitempty"`
	Description string `json:"description"`
}

// NewItem creates a pre-persistence item carrying only a description.
func NewItem(description string) Item {
	return Item{Description: description}
}

// ItemFromRow hydrates an item from a persisted row.
func ItemFromRow(id int64, description string) Item {
	return Item{
		ID:          id,
		Description: description,
	}
}

// Persisted reports whether the item was read from or written to storage.
func (i Item) Persisted() bool {
	return i.ID != 0
}
