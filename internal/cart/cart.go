// Package cart holds the ephemeral, display-only cart state. Totals
// computed here are never authoritative: checkout re-prices every line
// from the product store and the webhook finalizer trusts only what
// Stripe reports as paid.
package cart

import (
	"github.com/shopspring/decimal"

	"lampstore/internal/dto"
	"lampstore/internal/model"
)

// TaxRate is the flat display tax rate applied to the cart subtotal.
var TaxRate = decimal.NewFromFloat(0.095)

type Item struct {
	Product  model.Product
	Quantity int
}

// Cart keys items by product id and keeps insertion order. Not safe
// for concurrent use; each cart belongs to a single session.
type Cart struct {
	items map[string]*Item
	order []string
}

func New() *Cart {
	return &Cart{
		items: make(map[string]*Item),
	}
}

// Add inserts the product at quantity 1 or bumps an existing line by
// one. Additions past the product's on-hand stock are silently
// ignored.
func (c *Cart) Add(product model.Product) {
	if item, ok := c.items[product.ID]; ok {
		if item.Quantity+1 > product.Quantity {
			return
		}
		item.Quantity++
		return
	}

	if product.Quantity < 1 {
		return
	}

	c.items[product.ID] = &Item{Product: product, Quantity: 1}
	c.order = append(c.order, product.ID)
}

// UpdateQuantity sets a line's quantity, clamped to on-hand stock.
// Zero removes the line.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	item, ok := c.items[productID]
	if !ok {
		return
	}

	if quantity <= 0 {
		c.Remove(productID)
		return
	}

	if quantity > item.Product.Quantity {
		quantity = item.Product.Quantity
	}
	item.Quantity = quantity
}

func (c *Cart) Remove(productID string) {
	if _, ok := c.items[productID]; !ok {
		return
	}

	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart, as on a successful checkout redirect.
func (c *Cart) Clear() {
	c.items = make(map[string]*Item)
	c.order = nil
}

func (c *Cart) Items() []Item {
	items := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, *c.items[id])
	}
	return items
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Subtotal is Σ(unit price × quantity).
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.items {
		price := decimal.NewFromFloat(item.Product.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// Shipping is Σ(per-item shipping price), flat per line regardless of
// quantity.
func (c *Cart) Shipping() decimal.Decimal {
	shipping := decimal.Zero
	for _, item := range c.items {
		shipping = shipping.Add(decimal.NewFromFloat(item.Product.ShippingPrice))
	}
	return shipping
}

// Tax applies TaxRate to the subtotal, rounded to cents.
func (c *Cart) Tax() decimal.Decimal {
	return c.Subtotal().Mul(TaxRate).Round(2)
}

func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Shipping()).Add(c.Tax())
}

// CheckoutItems builds the checkout request lines for the cart.
func (c *Cart) CheckoutItems() []*dto.CartItem {
	items := make([]*dto.CartItem, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, &dto.CartItem{
			ProductID: id,
			Quantity:  c.items[id].Quantity,
		})
	}
	return items
}
