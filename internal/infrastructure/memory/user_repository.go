package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// UserRepository implementa repository.UserRepository en memoria.
type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	return r.store.with(nil, func(st *state) error {
		for _, other := range st.users {
			if other.Username == u.Username {
				return fmt.Errorf("%w: %q", domain.ErrUsernameExists, u.Username)
			}
		}
		st.users[u.ID] = copyUser(u)
		return nil
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.store.with(nil, func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = copyUser(u)
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.store.with(nil, func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				out = copyUser(u)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	return r.store.with(nil, func(st *state) error {
		if _, ok := st.users[u.ID]; !ok {
			return domain.ErrUserNotFound
		}
		st.users[u.ID] = copyUser(u)
		return nil
	})
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	err := r.store.with(nil, func(st *state) error {
		out = make([]*entity.User, 0, len(st.users))
		for _, u := range st.users {
			out = append(out, copyUser(u))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return page(out, limit, offset), err
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.store.with(nil, func(st *state) error {
		n = len(st.users)
		return nil
	})
	return n, err
}

func (r *UserRepository) CountEnabledWithRole(ctx context.Context, role string) (int, error) {
	var n int
	err := r.store.with(nil, func(st *state) error {
		for _, u := range st.users {
			if u.Enabled && u.HasRole(role) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.store.with(nil, func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return domain.ErrUserNotFound
		}
		delete(st.users, id)
		return nil
	})
}
