package sequence

import (
	"testing"
	"time"

	"storefront/internal/domain"
)

func TestNumberAssignsCreationOrderAndReverses(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	orders := []domain.Order{
		{ID: "c", Date: t1.Add(2 * time.Hour)},
		{ID: "a", Date: t1},
		{ID: "b", Date: t1.Add(time.Hour)},
	}
	got := Number(orders)
	wantIDs := []string{"c", "b", "a"}
	wantNums := []int{3, 2, 1}
	for i := range got {
		if got[i].ID != wantIDs[i] || got[i].NumericID != wantNums[i] {
			t.Fatalf("position %d: got %s/#%d, want %s/#%d", i, got[i].ID, got[i].NumericID, wantIDs[i], wantNums[i])
		}
	}
	if orders[0].NumericID != 0 {
		t.Fatalf("input slice was mutated")
	}
}

func TestNumberBreaksTiesWithSeq(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	got := Number([]domain.Order{
		{ID: "z", Seq: 7, Date: at},
		{ID: "y", Seq: 3, Date: at},
	})
	if got[0].ID != "z" || got[0].NumericID != 2 || got[1].ID != "y" || got[1].NumericID != 1 {
		t.Fatalf("unexpected numbering %+v", got)
	}
}

func TestNumberRecomputesFromScratch(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	first := Number([]domain.Order{{ID: "a", Date: at, NumericID: 40}})
	if first[0].NumericID != 1 {
		t.Fatalf("expected stale numeric id to be replaced, got %d", first[0].NumericID)
	}
}

func TestFind(t *testing.T) {
	orders := []domain.Order{
		{
			ID:        "9f1c",
			NumericID: 12,
			Date:      time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC),
			Items:     []domain.OrderItem{{Name: "Linen Shirt"}},
		},
		{
			ID:        "77aa",
			NumericID: 3,
			Date:      time.Date(2024, time.January, 9, 9, 15, 0, 0, time.UTC),
			Items:     []domain.OrderItem{{Name: "Wool Socks"}, {Name: "Cap"}},
		},
	}

	cases := []struct {
		query string
		want  []int
	}{
		{"12", []int{12}},
		{"3", []int{12, 3}}, // "02:30 pm" and numeric id 3
		{"shirt", []int{12}},
		{"WOOL", []int{3}},
		{"cap", []int{3}},
		{"mar 2024", []int{12}},
		{"09:15 AM", []int{3}},
		{"9f1c", nil},
		{" ", []int{12, 3}},
	}
	for _, tc := range cases {
		got := Find(orders, tc.query)
		if len(got) != len(tc.want) {
			t.Fatalf("query %q: expected %d orders, got %+v", tc.query, len(tc.want), got)
		}
		for i, o := range got {
			if o.NumericID != tc.want[i] {
				t.Fatalf("query %q: expected numeric id %d at %d, got %d", tc.query, tc.want[i], i, o.NumericID)
			}
		}
	}
}
