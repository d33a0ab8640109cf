package dto

// ProjectDataDTO is parsed from the "data" multipart field (JSON), same
// convention as products.
type ProjectDataDTO struct {
	Title       string   `json:"title"`
	TitleEn     string   `json:"titleEn"`
	Description string   `json:"description"`
	Client      string   `json:"client"`
	Location    string   `json:"location"`
	Year        int      `json:"year"`
	CategoryId  string   `json:"categoryId"`
	IsFeatured  *bool    `json:"isFeatured"`
	KeepImages  []string `json:"keepImages"`
}
