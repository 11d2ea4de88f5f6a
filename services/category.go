package services

import (
	"errors"
	"fmt"
	"strings"
)

// CategorySeparator separates the category from the subcategory in the
// combined "category & sub-category" column.
const CategorySeparator = "/"

// ErrNoSeparator is returned when a combined category value has no separator.
var ErrNoSeparator = errors.New("category value has no separator")

// SplitCategory splits "category/subcategory" on the first separator only,
// so "a/b/c" yields ("a", "b/c").
func SplitCategory(s string) (category, subcategory string, err error) {
	category, subcategory, ok := strings.Cut(s, CategorySeparator)
	if !ok {
		return "", "", fmt.Errorf("split %q: %w", s, ErrNoSeparator)
	}
	return category, subcategory, nil
}

// SplitCategories splits every value and returns two aligned columns.
func SplitCategories(values []string) (categories, subcategories []string, err error) {
	categories = make([]string, len(values))
	subcategories = make([]string, len(values))
	for i, v := range values {
		categories[i], subcategories[i], err = SplitCategory(v)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return categories, subcategories, nil
}
