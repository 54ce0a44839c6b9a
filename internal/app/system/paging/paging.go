// internal/app/system/paging/paging.go
package paging

// PageSize is the default number of rows returned by paged lists.
const PageSize = 50

// LimitPlusOne returns PageSize+1 as int64 for look-ahead pagination
// (fetch one extra row to detect hasNext).
func LimitPlusOne() int64 { return int64(PageSize + 1) }

// Result holds the output of TrimPage for keyset pagination.
type Result struct {
	HasNext bool
}

// TrimPage trims a slice fetched with LimitPlusOne: if more than PageSize
// rows came back, the extra row is dropped and HasNext is set.
func TrimPage[T any](rows *[]T) Result {
	if len(*rows) > PageSize {
		*rows = (*rows)[:PageSize]
		return Result{HasNext: true}
	}
	return Result{}
}
