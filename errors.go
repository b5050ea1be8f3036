package bookvis

import (
	"fmt"

	"github.com/bunburya/bookvis/date"
)

// PriceNotFoundError reports that no usable exchange-rate path exists between
// two commodities as of (or near) a given date. It is never downgraded to a
// zero or unity rate: a missing price must surface to the caller.
type PriceNotFoundError struct {
	From string
	To   string
	On   date.Date
}

func (e *PriceNotFoundError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s as of %s: no price found", e.From, e.To, e.On)
}

// BadDataError reports malformed or structurally invalid external input.
type BadDataError struct {
	Reason string
}

func (e *BadDataError) Error() string { return "bad data: " + e.Reason }
