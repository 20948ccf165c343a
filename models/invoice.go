package models

import "time"

const (
	InvoiceUnpaid    = "unpaid"
	InvoicePaid      = "paid"
	InvoiceCancelled = "cancelled"

	DefaultCurrency = "VND"
)

type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// one invoice per stay
	StayID uint  `gorm:"uniqueIndex;not null;column:stay_id" json:"stayId"`
	Stay   *Stay `gorm:"foreignKey:StayID" json:"stay,omitempty"`

	GuestID *uint  `gorm:"index;column:guest_id" json:"guestId"`
	Guest   *Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`

	Currency      string  `gorm:"size:8;default:'VND'" json:"currency"`
	Balance       float64 `gorm:"column:balance" json:"balance"`
	Status        string  `gorm:"size:32;index;default:'unpaid'" json:"status"`
	PaymentMethod string  `gorm:"column:payment_method;size:32" json:"paymentMethod"`

	CreatedByUserID *uint     `gorm:"column:created_by_user_id" json:"createdByUserId"`
	CreatedAt       time.Time `gorm:"index" json:"createdAt"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

type InvoiceItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	InvoiceID uint `gorm:"index;not null;column:invoice_id" json:"invoiceId"`

	ItemID uint  `gorm:"index;not null;column:item_id" json:"itemId"`
	Item   *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`

	Amount   float64   `json:"amount"`
	PostedAt time.Time `gorm:"column:posted_date" json:"postedAt"`

	PostedByUserID *uint `gorm:"column:posted_by_user_id" json:"postedByUserId"`
	PostedByUser   *User `gorm:"foreignKey:PostedByUserID" json:"postedByUser,omitempty"`
}
