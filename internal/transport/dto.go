package transport

// CreateProductRequest keeps name and price as pointers so a missing field
// can be told apart from a zero value.
type CreateProductRequest struct {
	Name        *string  `json:"name"        validate:"required,max=120"`
	Price       *float64 `json:"price"       validate:"required"`
	Description *string  `json:"description"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,max=120"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CreatedResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}
