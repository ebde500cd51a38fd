package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

func TestMovementWhere_SinFiltros(t *testing.T) {
	where, args := movementWhere(repository.MovementFilter{Limit: 10})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestMovementWhere_TodosLosFiltros(t *testing.T) {
	id := int64(7)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	where, args := movementWhere(repository.MovementFilter{
		ProductID:  &id,
		ActingUser: "ana",
		Type:       entity.MovementTypeExit,
		From:       &from,
		To:         &to,
	})
	assert.Equal(t,
		" WHERE product_id = $1 AND acting_user = $2 AND movement_type = $3 AND created_at >= $4 AND created_at <= $5",
		where)
	assert.Equal(t, []any{int64(7), "ana", "EXIT", from, to}, args)
}

func TestMovementWhere_Parcial(t *testing.T) {
	where, args := movementWhere(repository.MovementFilter{ActingUser: "luis", Type: entity.MovementTypeEntry})
	assert.Equal(t, " WHERE acting_user = $1 AND movement_type = $2", where)
	assert.Equal(t, []any{"luis", "ENTRY"}, args)
}
