package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// StockMovementRepository implementa repository.StockMovementRepository en memoria.
type StockMovementRepository struct {
	store *Store
	tx    *state
}

func (r *StockMovementRepository) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.store.with(r.tx, func(st *state) error {
		if _, ok := st.products[m.ProductID]; !ok {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, m.ProductID)
		}
		st.nextMovementID++
		m.ID = st.nextMovementID
		st.movements = append(st.movements, copyMovement(m))
		return nil
	})
}

func (r *StockMovementRepository) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	var matched []*entity.StockMovement
	err := r.store.with(r.tx, func(st *state) error {
		for _, m := range st.movements {
			if matches(m, f) {
				matched = append(matched, copyMovement(m))
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return page(matched, f.Limit, f.Offset), len(matched), nil
}

func (r *StockMovementRepository) CountByProduct(ctx context.Context, productID int64) (int, error) {
	var n int
	err := r.store.with(r.tx, func(st *state) error {
		for _, m := range st.movements {
			if m.ProductID == productID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *StockMovementRepository) DeleteByProduct(ctx context.Context, productID int64) (int64, error) {
	var n int64
	err := r.store.with(r.tx, func(st *state) error {
		n = removeMovements(st, productID)
		return nil
	})
	return n, err
}

func matches(m *entity.StockMovement, f repository.MovementFilter) bool {
	if f.ProductID != nil && m.ProductID != *f.ProductID {
		return false
	}
	if f.ActingUser != "" && m.ActingUser != f.ActingUser {
		return false
	}
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.From != nil && m.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && m.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

func removeMovements(st *state, productID int64) int64 {
	kept := st.movements[:0:0]
	var removed int64
	for _, m := range st.movements {
		if m.ProductID == productID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	st.movements = kept
	return removed
}
