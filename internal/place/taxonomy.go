// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package place

import "strings"

// Category is one of the fixed place categories.
type Category string

const (
	CategoryEntertainment Category = "Entertainment & Leisure"
	CategoryCulture       Category = "Culture"
	CategoryFood          Category = "Food & Drink"
	CategoryAdventure     Category = "Adventure & Sports"
	CategoryWellness      Category = "Wellness"
	CategoryAccommodation Category = "Accommodation"
	CategoryNature        Category = "Nature & Outdoor"
)

// Categories lists all categories in table order.
var Categories = []Category{
	CategoryEntertainment,
	CategoryCulture,
	CategoryFood,
	CategoryAdventure,
	CategoryWellness,
	CategoryAccommodation,
	CategoryNature,
}

// Keywords maps a category to the keywords that select it.
type Keywords struct {
	Category Category
	Keywords []string
}

// Taxonomy is an ordered keyword table. Earlier entries take precedence.
type Taxonomy []Keywords

// Categorize returns the first category that has a keyword contained in any of the tags.
// Matching is case-sensitive.
func (t Taxonomy) Categorize(tags []string) (Category, bool) {
	for _, entry := range t {
		for _, keyword := range entry.Keywords {
			for _, tag := range tags {
				if strings.Contains(tag, keyword) {
					return entry.Category, true
				}
			}
		}
	}
	return "", false
}
