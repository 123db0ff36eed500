package dto

// PlanLookupRequest - lookup for a single point; address is passed through unchanged
type PlanLookupRequest struct {
	Lat     float64 `json:"lat" validate:"min=-90,max=90"`
	Lng     float64 `json:"lng" validate:"min=-180,max=180"`
	Address string  `json:"address" validate:"max=300"`
}

// BatchPlanLookupRequest - up to 100 points in one request
type BatchPlanLookupRequest struct {
	Points []PlanLookupRequest `json:"points" validate:"required,min=1,max=100,dive"`
}

// AddressSearchRequest - free text address search inside the municipality
type AddressSearchRequest struct {
	Query string `json:"q" validate:"required,min=2,max=200"`
}

// CreateUserRequest - POST /api/users body
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email,max=254"`
	Age   *int   `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
}

// UpdateUserRequest - PUT /api/users/:id body, empty fields keep the stored value
type UpdateUserRequest struct {
	Name  string `json:"name" validate:"omitempty,max=200"`
	Email string `json:"email" validate:"omitempty,email,max=254"`
	Age   *int   `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
}
