package dto

// CreateCategoryDTO — slug is auto-generated from Name when empty.
type CreateCategoryDTO struct {
	Name        string `json:"name" binding:"required"`
	NameEn      string `json:"nameEn"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
	ImageUrl    string `json:"imageUrl"`
}

type UpdateCategoryDTO struct {
	Name        *string `json:"name"`
	NameEn      *string `json:"nameEn"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
	ImageUrl    *string `json:"imageUrl"`
}
