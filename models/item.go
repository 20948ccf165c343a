package models

// Item is a billable service from the catalog (minibar, laundry, ...).
type Item struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Name   string  `gorm:"column:item_name;size:255;not null" json:"name"`
	Price  float64 `gorm:"not null" json:"price"`
	Status string  `gorm:"size:32;index" json:"status"`
	Image  string  `gorm:"size:255" json:"image,omitempty"`

	ItemTypeID *uint     `gorm:"index" json:"itemTypeId"`
	ItemType   *ItemType `gorm:"foreignKey:ItemTypeID" json:"itemType,omitempty"`
}

type ItemType struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TypeName string `gorm:"size:100;not null" json:"typeName"`
}
