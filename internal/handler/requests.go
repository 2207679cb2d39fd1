package handler

// Request bodies of the JSON API.

type signUpRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"display_name" validate:"required,max=64"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type pageRequest struct {
	Page string `json:"page" validate:"required"`
}

type chatNameRequest struct {
	Name string `json:"name" validate:"max=100"`
}

type documentNameRequest struct {
	Name string `json:"name" validate:"required"`
}

type enhanceRequest struct {
	Instruction string `json:"instruction" validate:"max=2000"`
}

type messageRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}
