package dto

// CreateContactDTO is validated with the schema validator in declaration
// order: fullName, email, phone (digits only), message.
type CreateContactDTO struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,digits"`
	Company  string `json:"company"`
	Subject  string `json:"subject"`
	Message  string `json:"message" validate:"required,min=5,max=8000"`
}

type UpdateContactStatusDTO struct {
	Status string `json:"status" binding:"required"`
}
