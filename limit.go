package relq

import "github.com/roach88/relq/ir"

// Limit caps the row count. A count below one fails with
// INVALID_OPERATION; use Unlimited to clear a limit.
func (d *Dataset) Limit(count int) (*Dataset, error) {
	return d.LimitOffset(count, 0)
}

// LimitOffset caps the row count and skips the given number of rows. A
// zero offset renders no OFFSET fragment.
func (d *Dataset) LimitOffset(count, offset int) (*Dataset, error) {
	if count <= 0 {
		return nil, ir.NewError(ir.ErrCodeInvalidOperation, "limit must be positive, got %d", count)
	}
	out := d.clone()
	out.c.limit = &count
	if offset != 0 {
		out.c.offset = &offset
	} else {
		out.c.offset = nil
	}
	return out, nil
}

// LimitRange converts an inclusive row range to count and offset:
// LimitRange(1, 5) compiles to LIMIT 5 OFFSET 1.
func (d *Dataset) LimitRange(start, end int) (*Dataset, error) {
	return d.LimitOffset(end-start+1, start)
}

// Unlimited clears any limit and offset.
func (d *Dataset) Unlimited() *Dataset {
	out := d.clone()
	out.c.limit = nil
	out.c.offset = nil
	return out
}
