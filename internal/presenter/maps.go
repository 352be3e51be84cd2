// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"github.com/vorlif/spreak/localize"

	"github.com/wneessen/placeresolver/internal/place"
)

const (
	columnName        localize.MsgID = "Name"
	columnCategory    localize.MsgID = "Category"
	columnCoordinates localize.MsgID = "Coordinates"
	columnPrice       localize.MsgID = "Price"
	columnPlace       localize.MsgID = "Place"
	columnNortheast   localize.MsgID = "Northeast"
	columnSouthwest   localize.MsgID = "Southwest"
	columnDistance    localize.MsgID = "Distance"
	columnDuration    localize.MsgID = "Duration"
)

// categoryNames maps the place categories to their translatable labels.
var categoryNames = map[place.Category]localize.MsgID{
	place.CategoryEntertainment: "Entertainment & Leisure",
	place.CategoryCulture:       "Culture",
	place.CategoryFood:          "Food & Drink",
	place.CategoryAdventure:     "Adventure & Sports",
	place.CategoryWellness:      "Wellness",
	place.CategoryAccommodation: "Accommodation",
	place.CategoryNature:        "Nature & Outdoor",
}

// i18nVars are the labels available to result templates through the loc function.
var i18nVars = map[string]localize.MsgID{
	"name":        columnName,
	"category":    columnCategory,
	"coordinates": columnCoordinates,
	"price":       columnPrice,
	"place":       columnPlace,
	"description": "Description",
	"dogs":        "Dogs allowed",
	"restroom":    "Restroom",
}
