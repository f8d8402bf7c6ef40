package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Cell is one named value of a row
type Cell struct {
	Key   string
	Value any
}

// Row is an ordered set of named cells. Keys keep the order in which they
// were first set, and that order is kept when the row is encoded to JSON.
type Row struct {
	cells []Cell
}

// NewRow builds a row from cells in order
func NewRow(cells ...Cell) Row {
	var r Row
	for _, c := range cells {
		r.Set(c.Key, c.Value)
	}
	return r
}

// Set stores value under key, keeping the key's original position
func (r *Row) Set(key string, value any) {
	for i := range r.cells {
		if r.cells[i].Key == key {
			r.cells[i].Value = value
			return
		}
	}
	r.cells = append(r.cells, Cell{Key: key, Value: value})
}

// Get returns the value stored under key
func (r Row) Get(key string) (any, bool) {
	for _, c := range r.cells {
		if c.Key == key {
			return c.Value, true
		}
	}
	return nil, false
}

// Has reports whether the row carries key
func (r Row) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns the keys in order
func (r Row) Keys() []string {
	keys := make([]string, len(r.cells))
	for i, c := range r.cells {
		keys[i] = c.Key
	}
	return keys
}

// Cells returns a copy of the cells in order
func (r Row) Cells() []Cell {
	return append([]Cell(nil), r.cells...)
}

// Len is the number of cells
func (r Row) Len() int {
	return len(r.cells)
}

// Clone returns an independent copy of the row
func (r Row) Clone() Row {
	return Row{cells: r.Cells()}
}

// MarshalJSON encodes the row as an object with keys in row order
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(floorValue(c.Value))
		if err != nil {
			return nil, fmt.Errorf("encode cell %q: %w", c.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// floorValue turns fractional amounts into integers on the way out
func floorValue(v any) any {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n).Floor().IntPart()
	case float32:
		return decimal.NewFromFloat32(n).Floor().IntPart()
	case decimal.Decimal:
		return n.Floor().IntPart()
	}
	return v
}

// IsEmptyValue reports whether a cell value counts as blank
func IsEmptyValue(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(s) == ""
	}
	return false
}

// Int64Value reads an integer out of a cell. Blank strings count as zero,
// grouping commas are ignored and fractions are floored.
func Int64Value(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return decimal.NewFromFloat(n).Floor().IntPart(), nil
	case decimal.Decimal:
		return n.Floor().IntPart(), nil
	case json.Number:
		return Int64Value(string(n))
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		if s == "" {
			return 0, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", n)
		}
		return d.Floor().IntPart(), nil
	}
	return 0, fmt.Errorf("unsupported cell type %T", v)
}

// BillNumberValue renders a bill number as a JSON number when it is a plain
// integer and as a string otherwise.
func BillNumberValue(s string) any {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return s
	}
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		return s
	}
	return json.Number(s)
}

// Collision describes a value dropped while merging rows
type Collision struct {
	Index int
	Key   string
	Kept  any
	Lost  any
}

// MergeParallel zips two row lists by index. The shorter list is padded with
// empty rows. On a key present in both rows the left value wins, and every
// non-empty right value lost that way is reported as a Collision.
func MergeParallel(left, right []Row) ([]Row, []Collision) {
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	out := make([]Row, 0, n)
	var collisions []Collision
	for i := 0; i < n; i++ {
		var merged Row
		if i < len(left) {
			merged = left[i].Clone()
		}
		if i < len(right) {
			for _, c := range right[i].cells {
				if kept, ok := merged.Get(c.Key); ok {
					if !IsEmptyValue(c.Value) {
						collisions = append(collisions, Collision{Index: i, Key: c.Key, Kept: kept, Lost: c.Value})
					}
					continue
				}
				merged.Set(c.Key, c.Value)
			}
		}
		out = append(out, merged)
	}
	return out, collisions
}
