package models

// Category represents a transaction category. Categories are global:
// they carry no owner and every user sees the same list.
type Category struct {
	Base
	Name  string `gorm:"uniqueIndex;not null" json:"name"`
	Color string `json:"color"`
}
