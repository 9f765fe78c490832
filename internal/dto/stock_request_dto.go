package dto

// StockRequestItemRequest is one line of the flat stock-request body.
type StockRequestItemRequest struct {
	ProductDetailID string  `json:"product_detail_id" validate:"required,uuid"`
	RequestedStock  int     `json:"requested_stock"   validate:"required,gt=0"`
	UnitID          *string `json:"unit_id"           validate:"omitempty,uuid"`
}

type CreateStockRequestRequest struct {
	OutletID    string                    `json:"outlet_id"    validate:"required,uuid"`
	WarehouseID string                    `json:"warehouse_id" validate:"required,uuid"`
	Note        *string                   `json:"note"`
	Items       []StockRequestItemRequest `json:"items" validate:"required,min=1,dive"`
}

type ReviewStockRequestRequest struct {
	Status string  `json:"status" validate:"required,oneof=approved rejected"`
	Note   *string `json:"note"`
}

type StockRequestItemResponse struct {
	ProductDetailID string  `json:"product_detail_id"`
	VariantName     string  `json:"variant_name,omitempty"`
	RequestedStock  int     `json:"requested_stock"`
	UnitID          *string `json:"unit_id,omitempty"`
}

type StockRequestResponse struct {
	ID          string                     `json:"id"`
	OutletID    string                     `json:"outlet_id"`
	WarehouseID string                     `json:"warehouse_id"`
	Status      string                     `json:"status"`
	Note        *string                    `json:"note,omitempty"`
	Items       []StockRequestItemResponse `json:"items"`
	CreatedAt   string                     `json:"created_at"`
}

type StockRequestFilter struct {
	Status  string `form:"status"` // pending | approved | rejected | all
	Page    int    `form:"page,default=1"      validate:"min=1"`
	PerPage int    `form:"per_page,default=20" validate:"min=1,max=100"`
}

type StockRequestListResponse struct {
	Data       []StockRequestResponse `json:"data"`
	Pagination Pagination             `json:"pagination"`
}
