package report

// Diagnostics collects the recoverable problems met while building a block
type Diagnostics struct {
	Columns    []ColumnError
	Collisions []Collision
}

// Merge appends other to d
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Columns = append(d.Columns, other.Columns...)
	d.Collisions = append(d.Collisions, other.Collisions...)
}

// Empty reports whether nothing went wrong
func (d Diagnostics) Empty() bool {
	return len(d.Columns) == 0 && len(d.Collisions) == 0
}

// JoinParts joins credit rows to the data rows the way the kind displays them
// The returned rows never share storage with the inputs.
func JoinParts(spec Spec, data, parts []Row) ([]Row, []Collision) {
	switch spec.PartMode {
	case PartAsRows:
		return cloneRows(append(append([]Row(nil), data...), parts...)), nil
	case PartAsColumns:
		if len(parts) > 0 {
			return MergeParallel(parts, data)
		}
	}
	return cloneRows(data), nil
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i := range rows {
		out[i] = rows[i].Clone()
	}
	return out
}

// BuildSubheading computes the special rows, cumulative and formatting of one
// block of rows. data must already include the joined credits.
func BuildSubheading(spec Spec, title string, data []Row, buckets Buckets, displayOnIndex bool) (Subheading, Diagnostics) {
	var diag Diagnostics

	special, errs := TotalRows(spec, data, buckets)
	diag.Columns = append(diag.Columns, errs...)
	if special == nil {
		special = []SpecialRow{}
	}

	sub := Subheading{
		Title:          title,
		DataRows:       data,
		SpecialRows:    special,
		DisplayOnIndex: displayOnIndex,
	}
	if spec.Cumulative {
		if pending, ok := PendingCumulative(special); ok {
			sub.Cumulative = NewCumulative("Total Pending", pending)
		}
	}

	diag.Columns = append(diag.Columns, FormatNumericColumns(sub.DataRows, spec.NumericColumns)...)
	return sub, diag
}

// HeadingCumulative adds up the subheading cumulatives of a heading
func HeadingCumulative(spec Spec, subs []Subheading) *Cumulative {
	if !spec.Cumulative {
		return nil
	}
	var total int64
	found := false
	for _, s := range subs {
		if s.Cumulative == nil {
			continue
		}
		n, err := Int64Value(s.Cumulative.Value)
		if err != nil {
			continue
		}
		total += n
		found = true
	}
	if !found {
		return nil
	}
	return NewCumulative("Total Pending", total)
}
