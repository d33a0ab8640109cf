package dto

// ProductDataDTO is parsed from the "data" multipart field (JSON). The
// loosely-typed fields (description, technicalSpecs, price) are normalized
// by the forms package, so anything the admin clients historically sent —
// structured object, JSON string, bare string — is accepted here.
type ProductDataDTO struct {
	Name           string   `json:"name"`
	NameEn         string   `json:"nameEn"`
	CategoryId     string   `json:"categoryId"`
	Description    any      `json:"description"`
	TechnicalSpecs any      `json:"technicalSpecs"`
	Price          any      `json:"price"`
	WarrantyPolicy string   `json:"warrantyPolicy"`
	IsFeatured     *bool    `json:"isFeatured"`
	KeepImages     []string `json:"keepImages"` // update only: persisted URLs the form kept, in order
}
