package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// MovementHistoryUseCase consultas de solo lectura sobre el historial de movimientos.
type MovementHistoryUseCase struct {
	movRepo repository.StockMovementRepository
}

// NewMovementHistoryUseCase construye el caso de uso.
func NewMovementHistoryUseCase(movRepo repository.StockMovementRepository) *MovementHistoryUseCase {
	return &MovementHistoryUseCase{movRepo: movRepo}
}

// List devuelve una página del historial filtrada por producto, usuario, tipo y rango de fechas,
// ordenada del más reciente al más antiguo.
func (uc *MovementHistoryUseCase) List(ctx context.Context, req dto.MovementHistoryRequest) (*dto.MovementListResponse, error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.NewMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

func buildFilter(req dto.MovementHistoryRequest) (repository.MovementFilter, error) {
	page := dto.PageRequest{Limit: req.Limit, Offset: req.Offset}
	page.DefaultPage(defaultHistoryLimit, maxHistoryLimit)
	filter := repository.MovementFilter{
		ActingUser: strings.TrimSpace(req.User),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	if req.ProductID > 0 {
		id := req.ProductID
		filter.ProductID = &id
	}
	if req.Type != "" {
		t := entity.MovementType(strings.ToUpper(req.Type))
		if !t.Valid() {
			return filter, fmt.Errorf("%w: tipo de movimiento %q desconocido", domain.ErrInvalidInput, req.Type)
		}
		filter.Type = t
	}
	from, err := parseTime(req.From, false)
	if err != nil {
		return filter, err
	}
	to, err := parseTime(req.To, true)
	if err != nil {
		return filter, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return filter, fmt.Errorf("%w: 'to' es anterior a 'from'", domain.ErrInvalidInput)
	}
	filter.From, filter.To = from, to
	return filter, nil
}

// parseTime acepta RFC3339 o YYYY-MM-DD. Una fecha sin hora usada como límite superior cubre todo el día.
func parseTime(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q inválida (RFC3339 o YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
