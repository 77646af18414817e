package invoice

import (
	"errors"
	"fmt"
)

var ErrInvalidReading = errors.New("invalid reading")

// Policy decides whether an item may be billed.
type Policy interface {
	Check(item GenerateItem) error
}

// Lenient accepts every item, including readings that run backwards.
type Lenient struct{}

func (Lenient) Check(GenerateItem) error { return nil }

// Strict rejects readings that run backwards, negative ad-hoc fees and months
// outside 1..12.
type Strict struct{}

func (Strict) Check(item GenerateItem) error {
	if item.ElecEnd < item.ElecBegin {
		return fmt.Errorf("%w: electricity end %d is below begin %d", ErrInvalidReading, item.ElecEnd, item.ElecBegin)
	}

	if item.WaterEnd < item.WaterBegin {
		return fmt.Errorf("%w: water end %d is below begin %d", ErrInvalidReading, item.WaterEnd, item.WaterBegin)
	}

	if item.OtherFee < 0 {
		return fmt.Errorf("%w: negative fee %d", ErrInvalidReading, item.OtherFee)
	}

	if item.Month < 1 || item.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidReading, item.Month)
	}

	return nil
}

// PolicyFor returns Strict when strict is set and Lenient otherwise.
func PolicyFor(strict bool) Policy {
	if strict {
		return Strict{}
	}

	return Lenient{}
}
