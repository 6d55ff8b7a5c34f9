package service

import (
	"context"
	"time"

	"inventorybi/internal/dto"
	"inventorybi/internal/repository"
)

// FinanceService is the read side of the financial ledger, for report collaborators.
type FinanceService interface {
	ListEntries(ctx context.Context, filter dto.FinanceFilter) (*dto.FinanceListResponse, error)
}

type financeService struct{ repo repository.FinanceRepository }

func NewFinanceService(repo repository.FinanceRepository) FinanceService {
	return &financeService{repo: repo}
}

func (s *financeService) ListEntries(ctx context.Context, filter dto.FinanceFilter) (*dto.FinanceListResponse, error) {
	from, to, err := parseDateRange(filter.DateFrom, filter.DateTo)
	if err != nil {
		return nil, err
	}
	entries, total, err := s.repo.List(ctx, repository.FinanceFilter{
		Type:      filter.Type,
		PartnerID: filter.PartnerID,
		DeptID:    filter.DeptID,
		DateFrom:  from,
		DateTo:    to,
		Page:      filter.Page,
		Limit:     filter.Limit,
	})
	if err != nil {
		return nil, err
	}

	data := make([]dto.FinanceEntryResponse, 0, len(entries))
	for _, e := range entries {
		data = append(data, dto.FinanceEntryResponse{
			ID:              e.ID,
			Type:            e.Type,
			TransDate:       e.TransDate.Format(dateLayout),
			Amount:          e.Amount,
			Balance:         e.Balance,
			ExpenseCategory: e.ExpenseCategory,
			PartnerID:       e.PartnerID,
			DeptID:          e.DeptID,
			SalesmanID:      e.SalesmanID,
			Description:     e.Description,
			CreatedAt:       e.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.FinanceListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}
