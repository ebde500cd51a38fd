package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// ProductRepository implementa repository.ProductRepository en memoria.
type ProductRepository struct {
	store *Store
	tx    *state
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.store.with(r.tx, func(st *state) error {
		if findByName(st, p.Name) != nil {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateName, p.Name)
		}
		st.nextProductID++
		p.ID = st.nextProductID
		st.products[p.ID] = copyProduct(p)
		return nil
	})
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.store.with(r.tx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = copyProduct(p)
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de TxRunner.Run el almacén ya está bloqueado; equivale a GetByID.
func (r *ProductRepository) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	var out *entity.Product
	err := r.store.with(r.tx, func(st *state) error {
		if p := findByName(st, name); p != nil {
			out = copyProduct(p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	return r.store.with(r.tx, func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, p.ID)
		}
		if other := findByName(st, p.Name); other != nil && other.ID != p.ID {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateName, p.Name)
		}
		st.products[p.ID] = copyProduct(p)
		return nil
	})
}

// Delete elimina el producto y, como ON DELETE CASCADE en PostgreSQL, sus movimientos restantes.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.store.with(r.tx, func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
		}
		delete(st.products, id)
		removeMovements(st, id)
		return nil
	})
}

func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return page(all, limit, offset), nil
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.store.with(r.tx, func(st *state) error {
		out = make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			out = append(out, copyProduct(p))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.store.with(r.tx, func(st *state) error {
		n = len(st.products)
		return nil
	})
	return n, err
}

func (r *ProductRepository) SearchByName(ctx context.Context, text string) ([]*entity.Product, error) {
	return r.search(text, func(p *entity.Product) string { return p.Name })
}

func (r *ProductRepository) SearchByCategory(ctx context.Context, text string) ([]*entity.Product, error) {
	return r.search(text, func(p *entity.Product) string { return p.Category })
}

func (r *ProductRepository) search(text string, field func(*entity.Product) string) ([]*entity.Product, error) {
	fold := cases.Fold()
	needle := fold.String(text)
	out := []*entity.Product{}
	err := r.store.with(r.tx, func(st *state) error {
		for _, p := range st.products {
			if strings.Contains(fold.String(field(p)), needle) {
				out = append(out, copyProduct(p))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func findByName(st *state, name string) *entity.Product {
	for _, p := range st.products {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
