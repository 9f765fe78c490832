package dto

// Categories, units, outlets, and warehouses share the same small CRUD shape.

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=80"`
	Description *string `json:"description"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Active      bool    `json:"active"`
}

type CreateUnitRequest struct {
	Name string `json:"name" validate:"required,min=1,max=40"`
	Code string `json:"code" validate:"required,min=1,max=10"`
}

type UnitResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type CreateOutletRequest struct {
	Name    string  `json:"name"    validate:"required,min=2,max=120"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

type OutletResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Active  bool    `json:"active"`
}

type CreateWarehouseRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=120"`
	Address *string `json:"address"`
}

type WarehouseResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Active  bool    `json:"active"`
}

type ListResponse[T any] struct {
	Data []T `json:"data"`
}
