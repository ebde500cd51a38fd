// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa en tests y con APP_STORAGE=memory; los datos se pierden al reiniciar.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

type state struct {
	products       map[int64]*entity.Product
	movements      []*entity.StockMovement // en orden de inserción (ID creciente)
	users          map[string]*entity.User
	nextProductID  int64
	nextMovementID int64
}

func newState() *state {
	return &state{
		products: make(map[int64]*entity.Product),
		users:    make(map[string]*entity.User),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:       make(map[int64]*entity.Product, len(s.products)),
		movements:      make([]*entity.StockMovement, len(s.movements)),
		users:          make(map[string]*entity.User, len(s.users)),
		nextProductID:  s.nextProductID,
		nextMovementID: s.nextMovementID,
	}
	for id, p := range s.products {
		c.products[id] = copyProduct(p)
	}
	// los movimientos no se modifican después de insertados
	copy(c.movements, s.movements)
	for id, u := range s.users {
		c.users[id] = copyUser(u)
	}
	return c
}

// Store guarda productos, movimientos y usuarios detrás de un mutex.
// Una transacción trabaja sobre una copia del estado y la publica solo si termina sin error.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepository {
	return &ProductRepository{store: s}
}

// Movements repositorio del historial fuera de transacción.
func (s *Store) Movements() *StockMovementRepository {
	return &StockMovementRepository{store: s}
}

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

// TxRunner devuelve el ejecutor de transacciones del almacén.
func (s *Store) TxRunner() *TxRunner {
	return &TxRunner{store: s}
}

// with ejecuta fn sobre el estado de la transacción o, fuera de ella, sobre el estado publicado con el lock tomado.
func (s *Store) with(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// TxRunner ejecuta funciones de forma serializada sobre una copia del estado (commit al terminar sin error).
type TxRunner struct {
	store *Store
}

// Run implementa inventory.TxRunner. Mientras dura fn ninguna otra operación del almacén avanza,
// lo que equivale a bloquear las filas leídas.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx := r.store.st.clone()
	if err := fn(
		&ProductRepository{store: r.store, tx: tx},
		&StockMovementRepository{store: r.store, tx: tx},
	); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.st = tx
	return nil
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func copyMovement(m *entity.StockMovement) *entity.StockMovement {
	c := *m
	return &c
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	c.Roles = append([]string(nil), u.Roles...)
	return &c
}
