package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	CPF      string `json:"cpf"      validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userProfile is the redacted account view returned to clients. The
// password hash never leaves the service layer.
type userProfile struct {
	ID               string   `json:"id"`
	CPF              string   `json:"cpf"`
	Name             string   `json:"name"`
	Email            string   `json:"email,omitempty"`
	Role             string   `json:"role"`
	Permissions      []string `json:"permissions"`
	MunicipalityID   string   `json:"municipality_id,omitempty"`
	MunicipalityName string   `json:"municipality_name,omitempty"`
	SchoolID         string   `json:"school_id,omitempty"`
	SchoolName       string   `json:"school_name,omitempty"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userProfile `json:"user"`
}

type provisionUserRequest struct {
	CPF              string `json:"cpf"      validate:"required"`
	Name             string `json:"name"     validate:"required"`
	Email            string `json:"email"    validate:"omitempty,email"`
	Password         string `json:"password" validate:"required,min=8"`
	Role             string `json:"role"     validate:"required"`
	MunicipalityID   string `json:"municipality_id"`
	MunicipalityName string `json:"municipality_name"`
	SchoolID         string `json:"school_id"`
	SchoolName       string `json:"school_name"`
}

type provisionUserResponse struct {
	User userProfile `json:"user"`
}

type listUsersResponse struct {
	Users []userProfile `json:"users"`
}
