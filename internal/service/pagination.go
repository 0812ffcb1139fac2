package service

import "github.com/oscoderuz/django-shablon/internal/constants"

func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = constants.CatalogPageSizeDefault
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
