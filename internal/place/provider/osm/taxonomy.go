// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package osm

import "github.com/wneessen/placeresolver/internal/place"

// Taxonomy maps OSM tag values to categories.
var Taxonomy = place.Taxonomy{
	{Category: place.CategoryEntertainment, Keywords: []string{
		"amusement_arcade", "theme_park", "zoo", "aquarium", "cinema", "theatre",
		"arts_centre", "water_park", "escape_game", "bowling_alley", "miniature_golf",
	}},
	{Category: place.CategoryCulture, Keywords: []string{
		"monument", "memorial", "archaeological_site", "castle", "ruins", "fort",
		"museum", "gallery", "attraction", "place_of_worship", "church", "cathedral",
	}},
	{Category: place.CategoryFood, Keywords: []string{
		"restaurant", "cafe", "fast_food", "bar", "pub", "biergarten",
		"ice_cream", "bakery", "pastry", "coffee", "chocolate", "convenience",
	}},
	{Category: place.CategoryAdventure, Keywords: []string{
		"sports_centre", "fitness_centre", "stadium", "pitch", "track", "swimming_pool",
		"climbing", "swimming", "tennis", "football", "surfing",
	}},
	{Category: place.CategoryWellness, Keywords: []string{"spa", "sauna", "massage", "physiotherapist", "doctors"}},
	{Category: place.CategoryAccommodation, Keywords: []string{
		"hotel", "hostel", "guest_house", "motel", "apartment", "chalet",
		"camp_site", "caravan_site", "resort",
	}},
	{Category: place.CategoryNature, Keywords: []string{
		"park", "national_park", "viewpoint", "beach", "peak", "wood",
		"water", "river", "forest", "meadow",
	}},
}
