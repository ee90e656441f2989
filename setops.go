package relq

// Union appends a UNION (or UNION ALL) of another descriptor. Set
// operations accumulate in call order and render after the left-hand
// SELECT.
func (d *Dataset) Union(other *Dataset, all bool) *Dataset {
	return d.compound("UNION", other, all)
}

// Intersect appends an INTERSECT (or INTERSECT ALL) of another descriptor.
func (d *Dataset) Intersect(other *Dataset, all bool) *Dataset {
	return d.compound("INTERSECT", other, all)
}

// Except appends an EXCEPT (or EXCEPT ALL) of another descriptor.
func (d *Dataset) Except(other *Dataset, all bool) *Dataset {
	return d.compound("EXCEPT", other, all)
}

func (d *Dataset) compound(kind string, other *Dataset, all bool) *Dataset {
	out := d.clone()
	existing := out.c.compounds
	out.c.compounds = append(existing[:len(existing):len(existing)], compound{kind: kind, all: all, ds: other})
	return out
}
