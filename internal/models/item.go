package models

// ItemsTable is the table backing Item.
const ItemsTable = "items"

// Item is the example synced entity.
type Item struct {
	Base
	Title    string `json:"title"`
	Content  string `json:"content"`
	Priority int64  `json:"priority"`
}
