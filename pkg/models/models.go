package models

// PaginationResult represents paginated results
type PaginationResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

// TotalPages returns ceil(total/perPage); 0 when there are no rows.
func TotalPages(total int64, perPage int) int {
	if perPage < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// SafePage clamps page into [1, totalPages]. With no pages it returns 1 so
// callers always query a valid offset.
func SafePage(page, totalPages int) int {
	if totalPages < 1 || page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate builds a PaginationResult from a page of rows
func Paginate[T any](data []T, total int64, page, perPage int) PaginationResult[T] {
	return PaginationResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: TotalPages(total, perPage),
	}
}

// GetAllModels returns all models for GORM AutoMigrate
func GetAllModels() []interface{} {
	return []interface{}{
		&User{},
		&Brand{},
		&Marketplace{},
		&ShippingCompany{},
		&Product{},
		&ProductImage{},
		&Listing{},
		&ListingItem{},
		&Inventory{},
		&Setting{},
		&BrandSetting{},
		&ImportJob{},
	}
}
