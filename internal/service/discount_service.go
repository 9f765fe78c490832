package service

import (
	"context"
	"errors"
	"time"

	"parfumpos/internal/dto"
	"parfumpos/internal/model"
	"parfumpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// DiscountService manages transaction-level discounts.
type DiscountService interface {
	Create(ctx context.Context, req dto.CreateDiscountRequest) (*dto.DiscountResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.DiscountResponse, error)
	List(ctx context.Context, page, perPage int) (*dto.DiscountListResponse, error)
	ListActive(ctx context.Context) ([]dto.DiscountResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateDiscountRequest) (*dto.DiscountResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type discountService struct {
	repo repository.DiscountRepository
}

func NewDiscountService(repo repository.DiscountRepository) DiscountService {
	return &discountService{repo: repo}
}

func (s *discountService) Create(ctx context.Context, req dto.CreateDiscountRequest) (*dto.DiscountResponse, error) {
	if req.Type == "percent" && req.Value.GreaterThan(decimalHundred) {
		return nil, errors.New("percent discount cannot exceed 100")
	}
	d := model.Discount{
		Name:     req.Name,
		Type:     req.Type,
		Value:    req.Value,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Active:   true,
	}
	if req.Active != nil {
		d.Active = *req.Active
	}
	if err := s.repo.Create(ctx, &d); err != nil {
		return nil, err
	}
	resp := discountToResponse(&d)
	return &resp, nil
}

func (s *discountService) Get(ctx context.Context, id uuid.UUID) (*dto.DiscountResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("discount not found")
	}
	resp := discountToResponse(d)
	return &resp, nil
}

func (s *discountService) List(ctx context.Context, page, perPage int) (*dto.DiscountListResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	list, total, err := s.repo.List(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	data := make([]dto.DiscountResponse, 0, len(list))
	for i := range list {
		data = append(data, discountToResponse(&list[i]))
	}
	return &dto.DiscountListResponse{
		Data:       data,
		Pagination: dto.NewPagination(page, perPage, total),
	}, nil
}

func (s *discountService) ListActive(ctx context.Context) ([]dto.DiscountResponse, error) {
	list, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.DiscountResponse, 0, len(list))
	for i := range list {
		if list[i].Usable(now) {
			out = append(out, discountToResponse(&list[i]))
		}
	}
	return out, nil
}

func (s *discountService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateDiscountRequest) (*dto.DiscountResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("discount not found")
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Type != nil {
		d.Type = *req.Type
	}
	if req.Value != nil {
		d.Value = *req.Value
	}
	if req.StartsAt != nil {
		d.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		d.EndsAt = req.EndsAt
	}
	if req.Active != nil {
		d.Active = *req.Active
	}
	if d.Type == "percent" && d.Value.GreaterThan(decimalHundred) {
		return nil, errors.New("percent discount cannot exceed 100")
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	resp := discountToResponse(d)
	return &resp, nil
}

func (s *discountService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("discount not found")
	}
	return s.repo.Deactivate(ctx, id)
}

func discountToResponse(d *model.Discount) dto.DiscountResponse {
	return dto.DiscountResponse{
		ID:       d.ID.String(),
		Name:     d.Name,
		Type:     d.Type,
		Value:    d.Value,
		StartsAt: d.StartsAt,
		EndsAt:   d.EndsAt,
		Active:   d.Active,
		Usable:   d.Usable(time.Now()),
	}
}
