package dto

// CreateServiceDTO — rich-text fields accept either an HTML string or a
// string array (rendered to a <ul> list by forms.ParseRichText).
type CreateServiceDTO struct {
	Name         string   `json:"name" validate:"required"`
	NameEn       string   `json:"nameEn"`
	Description  string   `json:"description"`
	Features     any      `json:"features"`
	Technologies any      `json:"technologies"`
	Benefits     any      `json:"benefits"`
	Customers    any      `json:"customers"`
	ImageUrls    []string `json:"imageUrls"`
	Status       string   `json:"status" validate:"omitempty,oneof=active draft archived"`
	ThemeVariant string   `json:"themeVariant"`
	Tags         []string `json:"tags"`
	OrderIndex   int      `json:"orderIndex"`
}

type UpdateServiceDTO struct {
	Name         *string   `json:"name"`
	NameEn       *string   `json:"nameEn"`
	Description  *string   `json:"description"`
	Features     any       `json:"features"`
	Technologies any       `json:"technologies"`
	Benefits     any       `json:"benefits"`
	Customers    any       `json:"customers"`
	ImageUrls    *[]string `json:"imageUrls"`
	Status       *string   `json:"status" validate:"omitempty,oneof=active draft archived"`
	ThemeVariant *string   `json:"themeVariant"`
	Tags         *[]string `json:"tags"`
	OrderIndex   *int      `json:"orderIndex"`
}

type UpdateServiceOrderDTO struct {
	OrderIndex int `json:"orderIndex" binding:"gte=0"`
}
