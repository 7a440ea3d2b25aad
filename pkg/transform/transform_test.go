package transform

import (
	"testing"

	"github.com/saturnines/tap-cj/pkg/errors"
)

func TestCastNumber(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		kind  NumberKind
		want  interface{}
	}{
		{"empty string to nil", "", Float, nil},
		{"nil to nil", nil, Int, nil},
		{"float string", "12.5", Float, 12.5},
		{"int string", "3", Int, 3},
		{"already int", 7, Int, 7},
		{"already float", 12.5, Float, 12.5},
		{"json number to int", float64(4), Int, 4},
		{"int to float", 7, Float, 7.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CastNumber(tc.value, tc.kind)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("expected %v (%T), got %v (%T)", tc.want, tc.want, got, got)
			}
		})
	}
}

func TestCastNumberFailures(t *testing.T) {
	for _, value := range []interface{}{"not-a-number", true, []interface{}{}} {
		if _, err := CastNumber(value, Float); err == nil {
			t.Errorf("expected cast error for %v", value)
		} else if !errors.Is(err, errors.ErrCast) {
			t.Errorf("expected ErrCast for %v, got %v", value, err)
		}
	}
	if _, err := CastNumber("4.5", Int); err == nil {
		t.Error("expected cast error for float string to int")
	}
}

func TestCommissionTransformerTopLevel(t *testing.T) {
	record := map[string]interface{}{
		"commissionId":           "c1",
		"saleAmountUsd":          "120.50",
		"pubCommissionAmountUsd": "",
		"quantity":               "4",
	}

	got, err := NewCommissionTransformer().Apply(record)
	if err != nil {
		t.Fatal(err)
	}
	if got["saleAmountUsd"] != 120.50 {
		t.Errorf("saleAmountUsd: expected 120.50, got %v", got["saleAmountUsd"])
	}
	if got["pubCommissionAmountUsd"] != nil {
		t.Errorf("pubCommissionAmountUsd: expected nil, got %v", got["pubCommissionAmountUsd"])
	}
	if got["quantity"] != 4 {
		t.Errorf("quantity: expected 4, got %v", got["quantity"])
	}
	if got["commissionId"] != "c1" {
		t.Errorf("commissionId should be untouched, got %v", got["commissionId"])
	}
}

func TestCommissionTransformerItems(t *testing.T) {
	record := map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{
				"quantity":                     "",
				"perItemSaleAmountPubCurrency": "10.25",
				"sku":                          "abc",
			},
			map[string]interface{}{
				"quantity":                   "2",
				"totalCommissionPubCurrency": "1.50",
			},
		},
	}

	got, err := NewCommissionTransformer().Apply(record)
	if err != nil {
		t.Fatal(err)
	}

	items := got["items"].([]interface{})
	first := items[0].(map[string]interface{})
	if first["quantity"] != nil {
		t.Errorf("items[0].quantity: expected nil, got %v", first["quantity"])
	}
	if first["perItemSaleAmountPubCurrency"] != 10.25 {
		t.Errorf("items[0].perItemSaleAmountPubCurrency: expected 10.25, got %v", first["perItemSaleAmountPubCurrency"])
	}
	if first["sku"] != "abc" {
		t.Errorf("items[0].sku should be untouched, got %v", first["sku"])
	}

	second := items[1].(map[string]interface{})
	if second["quantity"] != 2 {
		t.Errorf("items[1].quantity: expected 2, got %v", second["quantity"])
	}
	if second["totalCommissionPubCurrency"] != 1.50 {
		t.Errorf("items[1].totalCommissionPubCurrency: expected 1.50, got %v", second["totalCommissionPubCurrency"])
	}
}

func TestCommissionTransformerCastFailure(t *testing.T) {
	record := map[string]interface{}{
		"saleAmountUsd": "twelve dollars",
	}
	if _, err := NewCommissionTransformer().Apply(record); err == nil {
		t.Fatal("expected cast error to propagate")
	} else if !errors.Is(err, errors.ErrCast) {
		t.Errorf("expected ErrCast, got %v", err)
	}
}

func TestCommissionTransformerNoItems(t *testing.T) {
	// records without an items array should not panic
	record := map[string]interface{}{
		"quantity": "1",
	}
	got, err := NewCommissionTransformer().Apply(record)
	if err != nil {
		t.Fatal(err)
	}
	if got["quantity"] != 1 {
		t.Errorf("quantity: expected 1, got %v", got["quantity"])
	}
}
