package models

import "testing"

func TestProductKey(t *testing.T) {
	cases := []struct {
		sku, name, want string
	}{
		{"latte-12", "Latte 12oz", "latte-12"},
		{"  latte-12  ", "Latte 12oz", "latte-12"},
		{"", "Iced Latte", "iced latte"},
		{"", "  Iced Latte  ", "iced latte"},
		{"", "", ""},
		{"   ", "Chai", "chai"},
	}
	for _, c := range cases {
		if got := ProductKey(c.sku, c.name); got != c.want {
			t.Errorf("ProductKey(%q, %q) = %q, want %q", c.sku, c.name, got, c.want)
		}
	}
}

func TestCompsAll_SkipsNilSlots(t *testing.T) {
	comps := Comps{
		Cup: &Component{ItemID: "cup", Qty: 1},
		Bag: &Component{ItemID: "bag", Qty: 1},
	}
	got := comps.All()
	if len(got) != 2 || got[0].ItemID != "cup" || got[1].ItemID != "bag" {
		t.Fatalf("unexpected components: %+v", got)
	}
}
