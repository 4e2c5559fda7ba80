package service

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/flipcart-next/internal/models"
)

func twoCartsForUser2() []models.CartDocument {
	return []models.CartDocument{
		{ID: "a", UserID: "2", Status: "active", Items: []models.CartLineItem{{ProductID: "101", Quantity: 2}}},
		{ID: "b", UserID: "2", Items: []models.CartLineItem{{ProductID: "101", Quantity: 1}, {ProductID: "202", Quantity: 1}}},
		{ID: "c", UserID: "3", Items: []models.CartLineItem{{ProductID: "101", Quantity: 9}}},
	}
}

func TestMergeCartLinesSumsDuplicatesAcrossDocuments(t *testing.T) {
	got := MergeCartLines("2", twoCartsForUser2())
	want := []MergedLineItem{{ProductID: "101", Quantity: 3}, {ProductID: "202", Quantity: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected merge result: got=%+v want=%+v", got, want)
	}
}

func TestMergeCartLinesIsOrderIndependent(t *testing.T) {
	carts := twoCartsForUser2()
	reversed := []models.CartDocument{carts[2], carts[1], carts[0]}

	totals := func(items []MergedLineItem) map[models.EntityID]int {
		out := make(map[models.EntityID]int, len(items))
		for _, item := range items {
			out[item.ProductID] = item.Quantity
		}
		return out
	}
	forward := totals(MergeCartLines("2", carts))
	backward := totals(MergeCartLines("2", reversed))
	if !reflect.DeepEqual(forward, backward) {
		t.Fatalf("merge totals depend on order: %v vs %v", forward, backward)
	}
}

func TestMergeCartLinesEmptyAndUnknownUser(t *testing.T) {
	if got := MergeCartLines("2", nil); got == nil || len(got) != 0 {
		t.Fatalf("empty input should yield empty slice, got %#v", got)
	}
	if got := MergeCartLines("99", twoCartsForUser2()); len(got) != 0 {
		t.Fatalf("unknown user should yield nothing, got %+v", got)
	}
	if got := MergeCartLines("", twoCartsForUser2()); len(got) != 0 {
		t.Fatalf("zero user should yield nothing, got %+v", got)
	}
}

func TestMergeCartLinesDefaultsMissingQuantity(t *testing.T) {
	carts := []models.CartDocument{
		{UserID: "2", Items: []models.CartLineItem{{ProductID: "1"}}},
		{UserID: "2", Items: []models.CartLineItem{{ProductID: "1"}, {ProductID: "5", Quantity: -2}}},
	}
	got := MergeCartLines("2", carts)
	want := []MergedLineItem{{ProductID: "1", Quantity: 2}, {ProductID: "5", Quantity: -2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
}

func TestMergeCartLinesNumericAndStringIDsAgree(t *testing.T) {
	var carts []models.CartDocument
	raw := `[{"userId":2,"items":[{"productId":101,"quantity":1}]},{"userId":"2","items":[{"productId":"101","quantity":2}]}]`
	if err := json.Unmarshal([]byte(raw), &carts); err != nil {
		t.Fatalf("decode carts failed: %v", err)
	}
	got := MergeCartLines("2", carts)
	if len(got) != 1 || got[0].ProductID != "101" || got[0].Quantity != 3 {
		t.Fatalf("numeric ids should normalize, got %+v", got)
	}
}
