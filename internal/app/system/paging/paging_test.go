package paging

import "testing"

func TestLimitPlusOne(t *testing.T) {
	if got, want := LimitPlusOne(), int64(PageSize+1); got != want {
		t.Errorf("LimitPlusOne() = %d, want %d", got, want)
	}
}

func TestTrimPage(t *testing.T) {
	tests := []struct {
		name     string
		rows     []int
		wantLen  int
		wantNext bool
	}{
		{"empty", nil, 0, false},
		{"partial page", []int{1, 2, 3}, 3, false},
		{"exactly full page", make([]int, PageSize), PageSize, false},
		{"full page with extra", make([]int, PageSize+1), PageSize, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := tt.rows
			res := TrimPage(&rows)
			if len(rows) != tt.wantLen {
				t.Errorf("len(rows) = %d, want %d", len(rows), tt.wantLen)
			}
			if res.HasNext != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", res.HasNext, tt.wantNext)
			}
		})
	}
}
