package dto

// BlendMaterialRequest is one consumed variant of a blend composition.
type BlendMaterialRequest struct {
	ProductDetailID string  `json:"product_detail_id" validate:"required,uuid"`
	UsedStock       int     `json:"used_stock"        validate:"required,gt=0"`
	UnitID          *string `json:"unit_id"           validate:"omitempty,uuid"`
}

// CreateBlendRequest is the nested body of POST /v1/product-blend.
type CreateBlendRequest struct {
	Name            string                 `json:"name"              validate:"required,min=2,max=120"`
	Description     *string                `json:"description"`
	ResultVariantID string                 `json:"result_variant_id" validate:"required,uuid"`
	Quantity        int                    `json:"quantity"          validate:"required,gt=0"`
	UnitID          *string                `json:"unit_id"           validate:"omitempty,uuid"`
	Materials       []BlendMaterialRequest `json:"materials"         validate:"required,min=1,dive"`
}

type BlendMaterialResponse struct {
	ProductDetailID string  `json:"product_detail_id"`
	VariantName     string  `json:"variant_name,omitempty"`
	UsedStock       int     `json:"used_stock"`
	UnitID          *string `json:"unit_id,omitempty"`
}

type BlendResponse struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Description     *string                 `json:"description,omitempty"`
	ResultVariantID string                  `json:"result_variant_id"`
	Quantity        int                     `json:"quantity"`
	UnitID          *string                 `json:"unit_id,omitempty"`
	Materials       []BlendMaterialResponse `json:"materials"`
	CreatedAt       string                  `json:"created_at"`
}

type BlendFilter struct {
	Search  string `form:"search"`
	Page    int    `form:"page,default=1"      validate:"min=1"`
	PerPage int    `form:"per_page,default=20" validate:"min=1,max=100"`
}

type BlendListResponse struct {
	Data       []BlendResponse `json:"data"`
	Pagination Pagination      `json:"pagination"`
}
