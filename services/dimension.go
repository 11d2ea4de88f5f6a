package services

import (
	"strconv"

	"crowdfunding-etl/models"
	"crowdfunding-etl/utils"
)

const (
	CategoryKeyPrefix    = "cat"
	SubcategoryKeyPrefix = "subcat"
)

// BuildDimension assigns prefix1..prefixK to the K distinct values in
// first-seen order. Numbering depends on input order only; it is not sorted,
// so the same values in a different order get different keys.
func BuildDimension(prefix string, values []string) []models.DimensionEntry {
	set := utils.NewOrderedSet()
	for _, v := range values {
		set.Add(v)
	}

	distinct := set.Values()
	entries := make([]models.DimensionEntry, len(distinct))
	for i, name := range distinct {
		entries[i] = models.DimensionEntry{
			Key:  prefix + strconv.Itoa(i+1),
			Name: name,
		}
	}
	return entries
}

// BuildCategories builds the category lookup table.
func BuildCategories(values []string) []models.Category {
	entries := BuildDimension(CategoryKeyPrefix, values)
	out := make([]models.Category, len(entries))
	for i, e := range entries {
		out[i] = models.Category{CategoryID: e.Key, Name: e.Name}
	}
	return out
}

// BuildSubcategories builds the subcategory lookup table.
func BuildSubcategories(values []string) []models.Subcategory {
	entries := BuildDimension(SubcategoryKeyPrefix, values)
	out := make([]models.Subcategory, len(entries))
	for i, e := range entries {
		out[i] = models.Subcategory{SubcategoryID: e.Key, Name: e.Name}
	}
	return out
}

// keyIndex maps a dimension name to its surrogate key for the left join.
type keyIndex map[string]string

func categoryIndex(cats []models.Category) keyIndex {
	idx := make(keyIndex, len(cats))
	for _, c := range cats {
		if _, dup := idx[c.Name]; !dup {
			idx[c.Name] = c.CategoryID
		}
	}
	return idx
}

func subcategoryIndex(subs []models.Subcategory) keyIndex {
	idx := make(keyIndex, len(subs))
	for _, s := range subs {
		if _, dup := idx[s.Name]; !dup {
			idx[s.Name] = s.SubcategoryID
		}
	}
	return idx
}

// lookup returns nil when name has no key.
func (idx keyIndex) lookup(name string) *string {
	key, ok := idx[name]
	if !ok {
		return nil
	}
	return &key
}
