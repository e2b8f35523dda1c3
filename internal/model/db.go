package model

import "time"

type Category struct {
	ID          string `gorm:"primaryKey;size:36;not null"`
	Name        string `gorm:"size:128;uniqueIndex;not null"`
	Description string `gorm:"size:512"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Product struct {
	ID            string  `gorm:"primaryKey;size:36;not null"`
	Name          string  `gorm:"size:255;not null"`
	Description   string  `gorm:"type:text"`
	Price         float64 `gorm:"not null"` // USD
	OriginalPrice *float64
	ShippingPrice float64 `gorm:"not null;default:0"` // flat per item, not quantity-scaled
	ImageURL      string  `gorm:"size:512"`
	CategoryID    *string `gorm:"size:36;index"`
	Rating        float64
	Reviews       int
	InStock       bool `gorm:"not null;default:true"`
	// On-hand stock. Never negative: decremented only by the webhook
	// finalizer via a conditional update.
	Quantity  int `gorm:"not null;default:0"`
	Featured  bool
	OnSale    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductImage struct {
	ID           string `gorm:"primaryKey;size:36;not null"`
	ProductID    string `gorm:"size:36;index;not null"`
	ImageURL     string `gorm:"size:512;not null"`
	ThumbnailURL string `gorm:"size:512"`
	DisplayOrder int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

type Order struct {
	ID             string `gorm:"primaryKey;size:36;not null"`
	UserID         string `gorm:"size:36;index;not null"`
	OrderDate      time.Time
	SubtotalAmount float64 `gorm:"not null"`
	TaxAmount      float64 `gorm:"not null"`
	ShippingAmount float64 `gorm:"not null"`
	TotalAmount    float64 `gorm:"not null"`
	// Unique so a redelivered checkout.session.completed event cannot
	// materialize a second order for the same payment. Nullable: fully
	// discounted sessions carry no payment intent, and NULLs never
	// collide in the index.
	StripePaymentIntentID *string `gorm:"size:64;uniqueIndex"`
	Status                string `gorm:"size:32;index;not null"` // completed, refunded
	Shipped               bool   `gorm:"not null;default:false"`
	ShippedAt             *time.Time
	TrackingNumber        string `gorm:"size:128"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → orders.id
	OrderID string `gorm:"size:36;index;not null"`
	// FK → products.id
	ProductID string `gorm:"size:36;index;not null"`
	// Captured at purchase time; product rows mutate later.
	ProductName  string  `gorm:"size:255;not null"`
	ProductPrice float64 `gorm:"not null"`
	Quantity     int     `gorm:"not null"`
	Subtotal     float64 `gorm:"not null"`
	CreatedAt    time.Time
}

type ShippingAddress struct {
	ID                  string `gorm:"primaryKey;size:36;not null"`
	UserID              string `gorm:"size:36;index;not null"`
	FullName            string `gorm:"size:255;not null"`
	AddressLine1        string `gorm:"size:255;not null"`
	AddressLine2        string `gorm:"size:255"`
	City                string `gorm:"size:128;not null"`
	State               string `gorm:"size:128"`
	PostalCode          string `gorm:"size:32;not null"`
	Country             string `gorm:"size:64;not null"`
	Phone               string `gorm:"size:32"`
	SpecialInstructions string `gorm:"size:512"`
	// At most one default per user, enforced by the repository.
	IsDefault bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewsletterSubscription struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time
}

type ContactSubmission struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255;not null"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

type UserRole struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:36;uniqueIndex;not null"`
	Role      string `gorm:"size:32;not null"`
	IsAdmin   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
