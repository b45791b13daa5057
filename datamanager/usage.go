package datamanager

import (
	"fmt"

	"github.com/arloliu/mozcdata/dataset"
	"github.com/arloliu/mozcdata/errs"
	"github.com/arloliu/mozcdata/sorted"
)

// Usage item record layout, five uint32 fields.
const (
	usageIDOffset          = 0
	usageKeyOffset         = 4
	usageValueOffset       = 8
	usageConjugationOffset = 12
	usageMeaningOffset     = 16
)

// UsageItem is one usage dictionary entry. Key, Value and Meaning alias the
// dataset buffer.
type UsageItem struct {
	ID            uint32
	Key           []byte
	Value         []byte
	ConjugationID int
	Meaning       []byte
}

// ConjugationSuffix is one inflected ending of a conjugation class.
type ConjugationSuffix struct {
	ValueSuffix []byte
	KeySuffix   []byte
}

// UsageData is the usage rewriter dictionary. It is empty when the dataset
// was built without usage sections or the binary was built with the
// nousagerewriter tag.
type UsageData struct {
	base        sorted.StringArray // {value suffix, key suffix} per conjugation ID
	conjugation sorted.StringArray // {value suffix, key suffix}
	index       dataset.View       // uint32 start record per conjugation ID, plus end sentinel
	items       dataset.View
	strings     sorted.StringArray
}

func newUsageData(base, conjugation sorted.StringArray, index, items dataset.View, strs sorted.StringArray) (UsageData, error) {
	u := UsageData{base: base, conjugation: conjugation, index: index, items: items, strings: strs}

	classes := u.conjugationClasses()
	if base.Records() < classes {
		return UsageData{}, fmt.Errorf("%w: %d base conjugations for %d conjugation classes",
			errs.ErrInconsistentSections, base.Records(), classes)
	}

	prev := uint32(0)
	for i := range index.Len() {
		start := index.Uint32(i, 0)
		if start < prev || int(start) > conjugation.Records() {
			return UsageData{}, fmt.Errorf("%w: conjugation index %d is %d, previous %d, %d suffixes",
				errs.ErrInconsistentSections, i, start, prev, conjugation.Records())
		}
		prev = start
	}

	for i := range items.Len() {
		for _, off := range []int{usageKeyOffset, usageValueOffset, usageMeaningOffset} {
			if ref := items.Uint32(i, off); int64(ref) >= int64(strs.Records()) {
				return UsageData{}, fmt.Errorf("%w: usage item %d references string %d of %d",
					errs.ErrInconsistentSections, i, ref, strs.Records())
			}
		}
		if c := items.Uint32(i, usageConjugationOffset); int64(c) >= int64(classes) {
			return UsageData{}, fmt.Errorf("%w: usage item %d references conjugation %d of %d",
				errs.ErrInconsistentSections, i, c, classes)
		}
	}

	return u, nil
}

func (u UsageData) conjugationClasses() int {
	return max(u.index.Len()-1, 0)
}

// Len returns the number of usage items.
func (u UsageData) Len() int {
	return u.items.Len()
}

// IsEmpty reports whether no usage data is available.
func (u UsageData) IsEmpty() bool {
	return u.Len() == 0
}

// Item returns usage item i.
//
// Panics with a ContractViolation if i is outside [0, Len()).
func (u UsageData) Item(i int) UsageItem {
	return UsageItem{
		ID:            u.items.Uint32(i, usageIDOffset),
		Key:           u.strings.At(int(u.items.Uint32(i, usageKeyOffset))),
		Value:         u.strings.At(int(u.items.Uint32(i, usageValueOffset))),
		ConjugationID: int(u.items.Uint32(i, usageConjugationOffset)),
		Meaning:       u.strings.At(int(u.items.Uint32(i, usageMeaningOffset))),
	}
}

// Conjugations returns the inflected endings of conjugation class id.
func (u UsageData) Conjugations(id int) []ConjugationSuffix {
	if id < 0 || id >= u.conjugationClasses() {
		errs.Violate("datamanager.UsageData.Conjugations", "conjugation %d outside [0, %d)", id, u.conjugationClasses())
	}

	lo, hi := int(u.index.Uint32(id, 0)), int(u.index.Uint32(id+1, 0))
	out := make([]ConjugationSuffix, 0, hi-lo)
	for r := lo; r < hi; r++ {
		out = append(out, ConjugationSuffix{
			ValueSuffix: u.conjugation.Field(r, 0),
			KeySuffix:   u.conjugation.Field(r, 1),
		})
	}

	return out
}

// BaseConjugation returns the dictionary-form ending of conjugation class id.
func (u UsageData) BaseConjugation(id int) ConjugationSuffix {
	return ConjugationSuffix{
		ValueSuffix: u.base.Field(id, 0),
		KeySuffix:   u.base.Field(id, 1),
	}
}
