package service

// Pagination limits
const (
	DefaultPageNumber = 1
	MinPageNumber     = 1
	DefaultPageSize   = 20
	MinPageSize       = 1
	MaxPageSize       = 100
)

// sanitizePagination clamps caller-supplied pagination values into their
// allowed ranges. Nil means the caller sent nothing usable and takes the
// default; an explicit out-of-range value clamps, so pageSize=0 becomes 1,
// not 20.
func sanitizePagination(pageNumber, pageSize *int) (int, int) {
	number := DefaultPageNumber
	if pageNumber != nil {
		number = *pageNumber
	}
	if number < MinPageNumber {
		number = MinPageNumber
	}

	size := DefaultPageSize
	if pageSize != nil {
		size = *pageSize
	}
	if size < MinPageSize {
		size = MinPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return number, size
}
