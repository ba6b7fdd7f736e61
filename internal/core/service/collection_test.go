package service

import (
	"testing"

	"github.com/staffdesk/staffdesk-web/internal/core/domain"
)

func employeeCollection(items ...domain.Employee) *Collection[domain.Employee] {
	c := NewCollection(func(e domain.Employee) int64 { return e.ID })
	c.ReplaceAll(items)
	return c
}

func TestCollection_ReplaceAllPreservesOrder(t *testing.T) {
	c := employeeCollection(
		domain.Employee{ID: 3, Name: "C"},
		domain.Employee{ID: 1, Name: "A"},
		domain.Employee{ID: 2, Name: "B"},
	)

	items := c.Items()
	if len(items) != 3 || items[0].ID != 3 || items[1].ID != 1 || items[2].ID != 2 {
		t.Errorf("order not preserved: %+v", items)
	}
}

func TestCollection_InsertAppends(t *testing.T) {
	c := employeeCollection(domain.Employee{ID: 1})
	c.Insert(domain.Employee{ID: 2})

	items := c.Items()
	if len(items) != 2 || items[1].ID != 2 {
		t.Errorf("insert must append: %+v", items)
	}
}

func TestCollection_Remove(t *testing.T) {
	c := employeeCollection(
		domain.Employee{ID: 1},
		domain.Employee{ID: 2},
		domain.Employee{ID: 3},
	)

	if !c.Remove(2) {
		t.Fatal("Remove(2) = false, want true")
	}
	items := c.Items()
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 3 {
		t.Errorf("surviving order wrong: %+v", items)
	}

	if c.Remove(99) {
		t.Error("Remove of absent id must report false")
	}
	if c.Len() != 2 {
		t.Errorf("absent remove must not change the collection, len = %d", c.Len())
	}
}

func TestCollection_PatchByID(t *testing.T) {
	c := NewCollection(func(r domain.TimeReport) int64 { return r.ID })
	c.ReplaceAll([]domain.TimeReport{
		{ID: 1, IsApproved: false},
		{ID: 2, IsApproved: false},
	})

	if !c.PatchByID(1, func(r *domain.TimeReport) { r.IsApproved = true }) {
		t.Fatal("PatchByID(1) = false, want true")
	}

	items := c.Items()
	if !items[0].IsApproved {
		t.Error("patch did not apply to item 1")
	}
	if items[1].IsApproved {
		t.Error("patch leaked onto item 2")
	}

	if c.PatchByID(99, func(r *domain.TimeReport) { r.IsApproved = true }) {
		t.Error("PatchByID of absent id must report false")
	}
}

func TestCollection_ItemsReturnsCopy(t *testing.T) {
	c := employeeCollection(domain.Employee{ID: 1, Name: "A"})

	items := c.Items()
	items[0].Name = "mutated"

	if c.Items()[0].Name != "A" {
		t.Error("mutating the returned slice must not affect the collection")
	}
}
