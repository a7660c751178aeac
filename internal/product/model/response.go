package model

type ProductListResponse struct {
	Products      []Product `json:"products"`
	ProductCount  int64     `json:"product_count"`
	FilteredCount int64     `json:"filtered_count"`
	ResultPerPage int       `json:"result_per_page"`
}
