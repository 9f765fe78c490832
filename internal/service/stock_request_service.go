package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parfumpos/internal/dto"
	"parfumpos/internal/model"
	"parfumpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrStockRequestNotFound = errors.New("stock request not found")
	ErrAlreadyReviewed      = errors.New("stock request has already been reviewed")
)

// StockRequestService handles outlet requests for warehouse stock.
type StockRequestService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateStockRequestRequest) (*dto.StockRequestResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.StockRequestResponse, error)
	List(ctx context.Context, filter dto.StockRequestFilter) (*dto.StockRequestListResponse, error)
	// Review approves or rejects a pending request. Approval credits the
	// requested stock to each variant in one transaction and records the
	// movements; rejection only flips the status.
	Review(ctx context.Context, id, reviewerID uuid.UUID, req dto.ReviewStockRequestRequest) (*dto.StockRequestResponse, error)
}

type stockRequestService struct {
	repo       repository.StockRequestRepository
	products   repository.ProductRepository
	outlets    repository.OutletRepository
	warehouses repository.WarehouseRepository
	movements  repository.StockMovementRepository
}

func NewStockRequestService(
	repo repository.StockRequestRepository,
	products repository.ProductRepository,
	outlets repository.OutletRepository,
	warehouses repository.WarehouseRepository,
	movements repository.StockMovementRepository,
) StockRequestService {
	return &stockRequestService{
		repo:       repo,
		products:   products,
		outlets:    outlets,
		warehouses: warehouses,
		movements:  movements,
	}
}

func (s *stockRequestService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateStockRequestRequest) (*dto.StockRequestResponse, error) {
	outletID, err := uuid.Parse(req.OutletID)
	if err != nil {
		return nil, errors.New("invalid outlet_id")
	}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return nil, errors.New("invalid warehouse_id")
	}
	if _, err := s.outlets.FindByID(ctx, outletID); err != nil {
		return nil, errors.New("outlet not found")
	}
	if _, err := s.warehouses.FindByID(ctx, warehouseID); err != nil {
		return nil, errors.New("warehouse not found")
	}

	sr := model.StockRequest{
		OutletID:    outletID,
		WarehouseID: warehouseID,
		Status:      "pending",
		RequestedBy: userID,
		Note:        req.Note,
	}
	for _, item := range req.Items {
		vid, err := uuid.Parse(item.ProductDetailID)
		if err != nil {
			return nil, errors.New("invalid product_detail_id")
		}
		if _, err := s.products.FindVariantByID(ctx, vid); err != nil {
			return nil, fmt.Errorf("variant %s not found", item.ProductDetailID)
		}
		line := model.StockRequestItem{
			ProductDetailID: vid,
			RequestedStock:  item.RequestedStock,
		}
		if item.UnitID != nil {
			uid, err := uuid.Parse(*item.UnitID)
			if err != nil {
				return nil, errors.New("invalid unit_id")
			}
			line.UnitID = &uid
		}
		sr.Items = append(sr.Items, line)
	}

	if err := s.repo.Create(ctx, &sr); err != nil {
		return nil, err
	}
	resp := stockRequestToResponse(&sr)
	return &resp, nil
}

func (s *stockRequestService) Get(ctx context.Context, id uuid.UUID) (*dto.StockRequestResponse, error) {
	sr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrStockRequestNotFound
	}
	resp := stockRequestToResponse(sr)
	return &resp, nil
}

func (s *stockRequestService) List(ctx context.Context, filter dto.StockRequestFilter) (*dto.StockRequestListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 20
	}
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.StockRequestResponse, 0, len(list))
	for i := range list {
		data = append(data, stockRequestToResponse(&list[i]))
	}
	return &dto.StockRequestListResponse{
		Data:       data,
		Pagination: dto.NewPagination(filter.Page, filter.PerPage, total),
	}, nil
}

func (s *stockRequestService) Review(ctx context.Context, id, reviewerID uuid.UUID, req dto.ReviewStockRequestRequest) (*dto.StockRequestResponse, error) {
	sr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrStockRequestNotFound
	}
	if sr.Status != "pending" {
		return nil, ErrAlreadyReviewed
	}

	now := time.Now()
	sr.Status = req.Status
	sr.ReviewedBy = &reviewerID
	sr.ReviewedAt = &now

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if req.Status == "approved" {
			requestRef := sr.ID
			for _, item := range sr.Items {
				v, err := s.products.FindVariantByID(ctx, item.ProductDetailID)
				if err != nil {
					return fmt.Errorf("variant %s not found", item.ProductDetailID)
				}
				if err := s.products.UpdateStockTx(tx, item.ProductDetailID, item.RequestedStock); err != nil {
					return err
				}
				mov := &model.StockMovement{
					VariantID:   item.ProductDetailID,
					Type:        "stock_request",
					Quantity:    item.RequestedStock,
					StockBefore: v.Stock,
					StockAfter:  v.Stock + item.RequestedStock,
					Reason:      fmt.Sprintf("Stock request approved for outlet %s", sr.OutletID),
					ReferenceID: &requestRef,
				}
				if err := s.movements.CreateTx(tx, mov); err != nil {
					return err
				}
			}
		}
		return s.repo.UpdateStatusTx(tx, sr)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := stockRequestToResponse(sr)
	return &resp, nil
}

func stockRequestToResponse(sr *model.StockRequest) dto.StockRequestResponse {
	items := make([]dto.StockRequestItemResponse, 0, len(sr.Items))
	for _, it := range sr.Items {
		var unitID *string
		if it.UnitID != nil {
			v := it.UnitID.String()
			unitID = &v
		}
		name := ""
		if it.Variant != nil {
			name = it.Variant.Name
		}
		items = append(items, dto.StockRequestItemResponse{
			ProductDetailID: it.ProductDetailID.String(),
			VariantName:     name,
			RequestedStock:  it.RequestedStock,
			UnitID:          unitID,
		})
	}
	return dto.StockRequestResponse{
		ID:          sr.ID.String(),
		OutletID:    sr.OutletID.String(),
		WarehouseID: sr.WarehouseID.String(),
		Status:      sr.Status,
		Note:        sr.Note,
		Items:       items,
		CreatedAt:   sr.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
