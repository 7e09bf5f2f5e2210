package api

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		current     int
		total       int
		wantPages   int
	}{
		{"exact pages", 1, 10, 10, 30, 3},
		{"remainder page", 2, 10, 10, 25, 3},
		{"empty list", 1, 10, 0, 0, 0},
		{"single partial page", 1, 20, 5, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.current, tt.total)
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.CurrentPage != tt.page || p.CurrentItems != tt.current || p.TotalItems != tt.total || p.Limit != tt.limit {
				t.Errorf("unexpected pagination: %+v", p)
			}
		})
	}
}
