// Package items defines the to-do item entity and its two construction paths:
// NewItem for items that have not been stored yet, and ItemFromRow for items
// hydrated from a storage row.
package items
