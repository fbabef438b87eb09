package game

import "testing"

func TestInventory(t *testing.T) {
	inv := Inventory{}
	potion := testData.Items.GetByID("potion")
	badge := testData.Items.GetByID("boulder-badge")

	tests := []struct {
		name  string
		add   int
		want  int
		total int
	}{
		{"add some", 5, 5, 5},
		{"add nothing", 0, 0, 5},
		{"clamp to stack limit", 200, potion.StackLimit() - 5, potion.StackLimit()},
		{"full stack", 1, 0, potion.StackLimit()},
	}
	for _, tt := range tests {
		if got := inv.Add(potion, tt.add); got != tt.want {
			t.Errorf("%s: Add() = %d, want %d", tt.name, got, tt.want)
		}
		if inv.Count("potion") != tt.total {
			t.Errorf("%s: Count() = %d, want %d", tt.name, inv.Count("potion"), tt.total)
		}
	}

	if inv.Add(badge, 3) != 1 {
		t.Error("badges should stack to one")
	}

	if inv.Remove("potion", 1000) {
		t.Error("Remove() should fail when too few are held")
	}
	if !inv.Remove("boulder-badge", 1) {
		t.Fatal("Remove() failed")
	}
	if _, ok := inv["boulder-badge"]; ok {
		t.Error("empty stacks should be deleted")
	}
}
