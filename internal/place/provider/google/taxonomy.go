// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package google

import "github.com/wneessen/placeresolver/internal/place"

// Taxonomy maps Places API type tags to categories.
var Taxonomy = place.Taxonomy{
	{Category: place.CategoryEntertainment, Keywords: []string{"amusement", "aquarium", "cinema", "theatre"}},
	{Category: place.CategoryCulture, Keywords: []string{
		"monument", "historical_place", "museum", "historical", "art_",
		"church", "cathedral",
	}},
	{Category: place.CategoryFood, Keywords: []string{
		"food", "bar", "bakery", "coffee_shop", "restaurant", "cafe",
		"fast_food", "pub",
	}},
	{Category: place.CategoryAdventure, Keywords: []string{"adventure_sports_center", "sports_centre", "climbing", "swimming"}},
	{Category: place.CategoryWellness, Keywords: []string{"wellness", "spa", "sauna", "massage"}},
	{Category: place.CategoryAccommodation, Keywords: []string{"hotel", "camping", "hostel", "camp_site", "guest_house"}},
	{Category: place.CategoryNature, Keywords: []string{
		"natural_feature", "landmark", "park", "viewpoint", "beach",
		"nature_reserve",
	}},
}
