package models

import "testing"

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		perPage int
		want    int
	}{
		{"empty", 0, 20, 0},
		{"exact multiple", 40, 20, 2},
		{"partial last page", 41, 20, 3},
		{"single row", 1, 20, 1},
		{"perPage one", 7, 1, 7},
		{"invalid perPage", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPages(tt.total, tt.perPage); got != tt.want {
				t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
			}
		})
	}
}

func TestSafePage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       int
	}{
		{"in range", 2, 5, 2},
		{"below range", 0, 5, 1},
		{"negative", -3, 5, 1},
		{"above range", 9, 5, 5},
		{"no pages", 4, 0, 1},
		{"no pages first page", 1, 0, 1},
		{"negative total pages", 4, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafePage(tt.page, tt.totalPages); got != tt.want {
				t.Errorf("SafePage(%d, %d) = %d, want %d", tt.page, tt.totalPages, got, tt.want)
			}
		})
	}
}

func TestListingSKU(t *testing.T) {
	l := Listing{SKUPrefix: "TV-55", SKUSuffix: "AMZ"}
	if got := l.SKU(); got != "TV-55-AMZ" {
		t.Errorf("SKU() = %q, want %q", got, "TV-55-AMZ")
	}

	l.SKUSuffix = ""
	if got := l.SKU(); got != "TV-55" {
		t.Errorf("SKU() with empty suffix = %q, want %q", got, "TV-55")
	}
}

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		from ListingStatus
		to   ListingStatus
		want bool
	}{
		{ListingStatusDraft, ListingStatusPending, true},
		{ListingStatusDraft, ListingStatusEnded, true},
		{ListingStatusDraft, ListingStatusLive, false},
		{ListingStatusPending, ListingStatusLive, true},
		{ListingStatusLive, ListingStatusEnded, true},
		{ListingStatusEnded, ListingStatusLive, false},
		{ListingStatusLive, ListingStatusLive, true},
	}

	for _, tt := range tests {
		if got := ValidStatusTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("ValidStatusTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestProductSubSKUs(t *testing.T) {
	p := Product{SubSKU: "A1, A2,,A3 "}
	got := p.SubSKUs()
	want := []string{"A1", "A2", "A3"}
	if len(got) != len(want) {
		t.Fatalf("SubSKUs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SubSKUs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	p.SubSKU = ""
	if got := p.SubSKUs(); got != nil {
		t.Errorf("SubSKUs() on empty = %v, want nil", got)
	}
}

func TestInventoryAvailable(t *testing.T) {
	inv := Inventory{OnHand: 10, Reserved: 3, ReorderThreshold: 5}
	if got := inv.Available(); got != 7 {
		t.Errorf("Available() = %d, want 7", got)
	}
	if inv.IsLowStock() {
		t.Error("IsLowStock() = true, want false")
	}

	inv.Reserved = 12
	if got := inv.Available(); got != 0 {
		t.Errorf("Available() over-reserved = %d, want 0", got)
	}
	if !inv.IsLowStock() {
		t.Error("IsLowStock() = false, want true")
	}
}
