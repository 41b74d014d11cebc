package params

import (
	"net/url"
	"testing"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query      string
		limit      int
		page       int
		wantOffset int
	}{
		{"", DefaultLimit, 1, 0},
		{"limit=10&page=3", 10, 3, 20},
		{"limit=0", DefaultLimit, 1, 0},
		{"limit=1000", MaxLimit, 1, 0},
		{"limit=abc&page=-2", DefaultLimit, 1, 0},
	}
	for _, tc := range cases {
		q, _ := url.ParseQuery(tc.query)
		p := ParsePagination(q)
		if p.Limit != tc.limit || p.Page != tc.page || p.Offset != tc.wantOffset {
			t.Fatalf("%q: expected %d/%d/%d, got %+v", tc.query, tc.limit, tc.page, tc.wantOffset, p)
		}
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := Pagination{Limit: 2, Page: 3, Offset: 4}
	got := Slice(items, &p)
	if len(got) != 1 || got[0] != 5 {
		t.Fatalf("expected [5], got %v", got)
	}
	if p.Total != 5 || p.TotalPages != 3 || p.HasNext || !p.HasPrev {
		t.Fatalf("unexpected meta %+v", p)
	}

	p = Pagination{Limit: 2, Page: 9, Offset: 16}
	if got := Slice(items, &p); len(got) != 0 {
		t.Fatalf("expected empty page, got %v", got)
	}

	p = Pagination{Limit: 2, Page: 1, Offset: -216}
	if got := Slice(items, &p); len(got) != 0 {
		t.Fatalf("expected empty page for negative offset, got %v", got)
	}
}

func TestParsePaginationClampsHugePage(t *testing.T) {
	for _, page := range []string{"92233720368547758", "99999999999999999999999"} {
		p := ParsePagination(url.Values{"page": {page}, "limit": {"200"}})
		if p.Page != MaxPage {
			t.Fatalf("page %s: expected page clamped to %d, got %d", page, MaxPage, p.Page)
		}
		if p.Offset < 0 {
			t.Fatalf("page %s: offset overflowed to %d", page, p.Offset)
		}
		if got := Slice([]int{1, 2, 3}, &p); len(got) != 0 {
			t.Fatalf("page %s: expected empty page, got %v", page, got)
		}
		if p.HasNext || !p.HasPrev {
			t.Fatalf("page %s: unexpected meta %+v", page, p)
		}
	}
}
