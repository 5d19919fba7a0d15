package dataset

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// labelMask returns the rows whose label equals want.
func labelMask(labels []string, want string) *roaring.Bitmap {
	rb := roaring.New()
	for i, l := range labels {
		if l == want {
			rb.Add(uint32(i))
		}
	}
	return rb
}

// flagMask returns the rows whose flag is set.
func flagMask(flags []bool) *roaring.Bitmap {
	rb := roaring.New()
	for i, f := range flags {
		if f {
			rb.Add(uint32(i))
		}
	}
	return rb
}

// maskRows returns the set rows in ascending order.
func maskRows(rb *roaring.Bitmap) []int {
	rows := make([]int, 0, rb.GetCardinality())
	it := rb.Iterator()
	for it.HasNext() {
		rows = append(rows, int(it.Next()))
	}
	return rows
}
