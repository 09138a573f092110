package search

// PageSize is the number of results shown per page.
const PageSize = 10

// Ellipsis marks a gap in a PageList.
const Ellipsis = 0

// Page is one page of results. Number is 1-based and always within
// [1, TotalPages]; TotalPages is at least 1 even for empty results.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	Total      int
}

// Paginate returns page number of items, clamping the number into range.
func Paginate[T any](items []T, number int) Page[T] {
	total := len(items)
	pages := max(1, (total+PageSize-1)/PageSize)
	number = min(max(number, 1), pages)

	start := (number - 1) * PageSize
	end := min(start+PageSize, total)
	return Page[T]{
		Items:      items[start:end],
		Number:     number,
		TotalPages: pages,
		Total:      total,
	}
}

// PageList returns the page buttons to show for a pager: every page when
// there are at most 7, otherwise the first and last page, a window around
// current, and Ellipsis for the gaps.
func PageList(totalPages, current int) []int {
	if totalPages <= 7 {
		out := make([]int, totalPages)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}
	switch {
	case current <= 4:
		return []int{1, 2, 3, 4, 5, Ellipsis, totalPages}
	case current >= totalPages-3:
		return []int{1, Ellipsis, totalPages - 4, totalPages - 3, totalPages - 2, totalPages - 1, totalPages}
	default:
		return []int{1, Ellipsis, current - 1, current, current + 1, Ellipsis, totalPages}
	}
}
