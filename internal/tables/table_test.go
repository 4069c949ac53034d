package tables

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewDefaultTables(t *testing.T) {
	tables := NewDefaultTables(DefaultTableCount)

	if len(tables) != DefaultTableCount {
		t.Fatalf("expected %d tables, got %d", DefaultTableCount, len(tables))
	}

	for i, table := range tables {
		if table.TableNo != i+1 {
			t.Errorf("table at index %d has number %d, want %d", i, table.TableNo, i+1)
		}
		if !table.IsFree() {
			t.Errorf("table %d should start free", table.TableNo)
		}
		if table.Order == nil {
			t.Errorf("table %d order slice should be initialized", table.TableNo)
		}
	}
}

func TestTableAppendOrder(t *testing.T) {
	table := Table{TableNo: 3, Order: []OrderLine{}}

	line := table.AppendOrder("Butter Chicken", 340, 2, "asha")

	if line.LineID == uuid.Nil {
		t.Error("appended line should have an identity")
	}
	if line.Item != "Butter Chicken" || line.Qty != 2 || line.Price != 340 {
		t.Errorf("unexpected line: %+v", line)
	}
	if table.CaptainName != "asha" {
		t.Errorf("expected captain asha, got %q", table.CaptainName)
	}
	if table.IsFree() {
		t.Error("table with an order should not be free")
	}

	second := table.AppendOrder("Masala Chai", 60, 1, "ravi")
	if second.LineID == line.LineID {
		t.Error("each line should get a distinct identity")
	}
	if table.CaptainName != "ravi" {
		t.Errorf("latest captain should own the table, got %q", table.CaptainName)
	}
	if len(table.Order) != 2 {
		t.Errorf("expected 2 lines, got %d", len(table.Order))
	}
}

func TestTableRemoveOrder(t *testing.T) {
	table := Table{TableNo: 5, Order: []OrderLine{}}
	first := table.AppendOrder("Paneer Tikka", 240, 1, "asha")
	second := table.AppendOrder("Kulfi", 130, 2, "asha")
	table.Covers = 4

	t.Run("removeExistingLine", func(t *testing.T) {
		if !table.RemoveOrder(first.LineID) {
			t.Fatal("expected removal to succeed")
		}
		if len(table.Order) != 1 {
			t.Fatalf("expected 1 line after removal, got %d", len(table.Order))
		}
		if table.Order[0].LineID != second.LineID {
			t.Error("wrong line removed")
		}
		if table.CaptainName == "" {
			t.Error("table with remaining lines should keep its captain")
		}
	})

	t.Run("removeUnknownLine", func(t *testing.T) {
		if table.RemoveOrder(uuid.New()) {
			t.Error("removing an unknown line should report false")
		}
	})

	t.Run("removingLastLineReleasesTable", func(t *testing.T) {
		if !table.RemoveOrder(second.LineID) {
			t.Fatal("expected removal to succeed")
		}
		if !table.IsFree() {
			t.Error("table should be free after last line removed")
		}
		if table.CaptainName != "" || table.Covers != 0 {
			t.Errorf("table should be fully reset, got captain=%q covers=%d", table.CaptainName, table.Covers)
		}
	})
}

func TestTableClone(t *testing.T) {
	table := Table{TableNo: 2, Order: []OrderLine{}}
	table.AppendOrder("Dal Makhani", 220, 1, "asha")

	clone := table.Clone()
	clone.Order[0].Qty = 99
	clone.AppendOrder("Veg Biryani", 250, 1, "ravi")

	if table.Order[0].Qty != 1 {
		t.Error("mutating the clone changed the original line")
	}
	if len(table.Order) != 1 {
		t.Error("appending to the clone changed the original slice")
	}
}

func TestLayoutClassify(t *testing.T) {
	layout := DefaultLayout()

	for tableNo := 1; tableNo <= layout.Count; tableNo++ {
		got := layout.Classify(tableNo)
		want := ClassDineIn
		if tableNo > layout.DineInMax {
			want = ClassParcel
		}
		if got != want {
			t.Errorf("table %d classified as %q, want %q", tableNo, got, want)
		}
	}
}

func TestLayoutCheckTableNo(t *testing.T) {
	layout := Layout{Count: 10, DineInMax: 8}

	tests := []struct {
		name    string
		tableNo int
		wantErr bool
	}{
		{name: "firstTable", tableNo: 1, wantErr: false},
		{name: "lastTable", tableNo: 10, wantErr: false},
		{name: "zero", tableNo: 0, wantErr: true},
		{name: "negative", tableNo: -3, wantErr: true},
		{name: "pastEnd", tableNo: 11, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := layout.CheckTableNo(tt.tableNo)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckTableNo(%d) error = %v, wantErr %v", tt.tableNo, err, tt.wantErr)
			}
		})
	}
}
