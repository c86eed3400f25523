// Package catalog holds the static product catalogue and site content.
package catalog

import (
	"fmt"

	"github.com/teconavi/alitaramdemo2/internal/domain"
)

// Catalog is a read-only, ordered product index.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// New builds a catalogue from the given products. IDs must be unique and non-empty.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %q has no id", p.Name)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		seen := make(map[string]struct{}, len(p.Specs))
		for _, s := range p.Specs {
			if _, dup := seen[s.Key]; dup {
				return nil, fmt.Errorf("product %s: duplicate spec key %q", p.ID, s.Key)
			}
			seen[s.Key] = struct{}{}
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Default returns the bundled catalogue.
func Default() *Catalog {
	c, err := New(defaultProducts())
	if err != nil {
		panic(fmt.Sprintf("bundled catalogue is invalid: %v", err))
	}
	return c
}

// List returns every product in declaration order.
func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Lookup returns the product with the given id.
func (c *Catalog) Lookup(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Get is Lookup with a sentinel error for unknown ids.
func (c *Catalog) Get(id string) (domain.Product, error) {
	p, ok := c.Lookup(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return p, nil
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
