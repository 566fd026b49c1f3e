package shard

import (
	"errors"
	"fmt"
	"testing"

	"github.com/achilleasa/renderfarm/config"
	"github.com/achilleasa/renderfarm/scene"
)

func TestPairedAssignment(t *testing.T) {
	type spec struct {
		index    int
		expLen   int
		expFirst scene.ID
		expLast  scene.ID
	}
	specs := []spec{
		spec{1, 666, "0-0", "1-332"},
		spec{2, 666, "0-333", "1-665"},
		spec{3, 668, "0-666", "1-999"},
	}

	for index, s := range specs {
		ids, err := Assign(Spec{Index: s.index, Count: 3, Total: 1000}, scene.Paired)
		if err != nil {
			t.Fatalf("[spec %d] %v", index, err)
		}
		if len(ids) != s.expLen {
			t.Fatalf("[spec %d] expected %d scene ids; got %d", index, s.expLen, len(ids))
		}

		first, last, err := ids.Bounds()
		if err != nil {
			t.Fatalf("[spec %d] %v", index, err)
		}
		if first != s.expFirst || last != s.expLast {
			t.Fatalf("[spec %d] expected bounds %s..%s; got %s..%s", index, s.expFirst, s.expLast, first, last)
		}
	}

	ids, _ := Assign(Spec{Index: 1, Count: 3, Total: 1000}, scene.Paired)
	if ids[0] != "0-0" || ids[1] != "1-0" || ids[2] != "0-1" {
		t.Fatalf("expected variants to be interleaved per index; got %v", ids[:3])
	}
}

func TestPrimitiveAssignment(t *testing.T) {
	ids, err := Assign(Spec{Index: 2, Count: 4, Total: 2000}, scene.Primitive)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 500 {
		t.Fatalf("expected 500 scene ids; got %d", len(ids))
	}
	for i, id := range ids {
		if exp := scene.ID(fmt.Sprint(500 + i)); id != exp {
			t.Fatalf("expected id %d to be %s; got %s", i, exp, id)
		}
	}
}

func TestAssignmentsPartitionCatalog(t *testing.T) {
	type spec struct {
		total int
		count int
		mode  scene.Mode
	}
	specs := []spec{
		spec{1000, 3, scene.Paired},
		spec{2000, 4, scene.Primitive},
		spec{2000, 7, scene.Primitive},
		spec{10, 10, scene.Paired},
		spec{5, 8, scene.Primitive},
		spec{1, 1, scene.Paired},
		spec{17, 16, scene.Primitive},
	}

	for index, s := range specs {
		var expected Assignment
		for i := 0; i < s.total; i++ {
			expected = append(expected, s.mode.IDs(i)...)
		}

		var union Assignment
		seen := make(map[scene.ID]bool)
		for sub := 1; sub <= s.count; sub++ {
			ids, err := Assign(Spec{Index: sub, Count: s.count, Total: s.total}, s.mode)
			if err != nil {
				t.Fatalf("[spec %d] shard %d: %v", index, sub, err)
			}
			for _, id := range ids {
				if seen[id] {
					t.Fatalf("[spec %d] scene %s assigned twice", index, id)
				}
				seen[id] = true
			}
			union = append(union, ids...)
		}

		if len(union) != len(expected) {
			t.Fatalf("[spec %d] expected %d scene ids in total; got %d", index, len(expected), len(union))
		}
		for i := range union {
			if union[i] != expected[i] {
				t.Fatalf("[spec %d] expected id %d to be %s; got %s", index, i, expected[i], union[i])
			}
		}
	}
}

func TestMoreShardsThanScenes(t *testing.T) {
	for sub := 1; sub < 8; sub++ {
		ids, err := Assign(Spec{Index: sub, Count: 8, Total: 5}, scene.Primitive)
		if err != nil {
			t.Fatalf("shard %d: expected empty assignment to be accepted; got %v", sub, err)
		}
		if len(ids) != 0 {
			t.Fatalf("shard %d: expected empty assignment; got %v", sub, ids)
		}
		if _, _, err = ids.Bounds(); err != ErrEmptyAssignment {
			t.Fatalf("shard %d: expected ErrEmptyAssignment; got %v", sub, err)
		}
	}

	ids, err := Assign(Spec{Index: 8, Count: 8, Total: 5}, scene.Primitive)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 5 {
		t.Fatalf("expected last shard to absorb all 5 scenes; got %v", ids)
	}
}

func TestInvalidSpec(t *testing.T) {
	type spec struct {
		spec     Spec
		expField string
	}
	specs := []spec{
		spec{Spec{Index: 0, Count: 3, Total: 10}, "sub"},
		spec{Spec{Index: 4, Count: 3, Total: 10}, "sub"},
		spec{Spec{Index: 1, Count: 0, Total: 10}, "total"},
		spec{Spec{Index: 1, Count: 1, Total: 0}, "scenes"},
	}

	for index, s := range specs {
		_, err := Assign(s.spec, scene.Primitive)
		var cfgErr *config.Error
		if !errors.As(err, &cfgErr) {
			t.Fatalf("[spec %d] expected a *config.Error; got %v", index, err)
		}
		if cfgErr.Field != s.expField {
			t.Fatalf("[spec %d] expected error for field %s; got %s", index, s.expField, cfgErr.Field)
		}
	}
}
