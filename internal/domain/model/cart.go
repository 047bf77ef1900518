package model

// AddOn is an optional product extra selected with a cart line, e.g. a lens
// coating or progressive lens option.
type AddOn struct {
	Name  string
	Price int64
}

// CartItem is a single cart line captured at submission time.
type CartItem struct {
	ProductID string
	Name      string
	UnitPrice int64
	Quantity  int64
	AddOn     *AddOn
}

// LineTotal returns (unit price + add-on price) * quantity.
func (i CartItem) LineTotal() int64 {
	price := i.UnitPrice
	if i.AddOn != nil {
		price += i.AddOn.Price
	}
	return price * i.Quantity
}

// CartTotal sums line totals over all items.
func CartTotal(items []CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
