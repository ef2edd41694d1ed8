package domain

// ProductLookup resolves a product identifier against a catalog snapshot.
type ProductLookup interface {
	Lookup(productID string) (Product, bool)
}

// Catalog is a read-only snapshot of products keyed by id.
type Catalog map[string]Product

func NewCatalog(products []Product) Catalog {
	c := make(Catalog, len(products))
	for _, p := range products {
		c[p.ID] = p
	}
	return c
}

func (c Catalog) Lookup(productID string) (Product, bool) {
	p, ok := c[productID]
	return p, ok
}
