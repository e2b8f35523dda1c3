package dto

type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	CartItems         []*CartItem `json:"cart_items"`
	ShippingAddressID string      `json:"shipping_address_id,omitempty"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

type OrderEmailRequest struct {
	OrderID        string `json:"orderId"`
	UserEmail      string `json:"userEmail"`
	UserName       string `json:"userName"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
}

type ContactEmailRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type AddressRequest struct {
	FullName            string `json:"full_name"`
	AddressLine1        string `json:"address_line1"`
	AddressLine2        string `json:"address_line2,omitempty"`
	City                string `json:"city"`
	State               string `json:"state,omitempty"`
	PostalCode          string `json:"postal_code"`
	Country             string `json:"country"`
	Phone               string `json:"phone,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
	IsDefault           bool   `json:"is_default"`
}

type ProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	ShippingPrice float64  `json:"shipping_price"`
	ImageURL      string   `json:"image_url"`
	CategoryID    *string  `json:"category_id,omitempty"`
	InStock       bool     `json:"in_stock"`
	Quantity      int      `json:"quantity"`
	Featured      bool     `json:"featured"`
	OnSale        bool     `json:"on_sale"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ShippingUpdateRequest struct {
	Shipped        bool   `json:"shipped"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	// Buyer contact for the shipping notification; supplied by the
	// admin screen, optional.
	UserEmail string `json:"user_email,omitempty"`
	UserName  string `json:"user_name,omitempty"`
}

type NewsletterRequest struct {
	Email string `json:"email"`
}
