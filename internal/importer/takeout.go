// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/wneessen/placeresolver/internal/place"
)

const (
	takeoutURLColumn = "URL"
	utf8BOM          = "\ufeff"
)

// ParseTakeoutCSV returns the non-empty values of the URL column of a Google Takeout saved
// places list.
func ParseTakeoutCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []string{}, nil
	}
	if err != nil {
		return nil, place.NewValidationError("invalid CSV file: %s", err)
	}

	column := -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if strings.TrimSpace(name) == takeoutURLColumn {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, place.NewValidationError("invalid CSV file: no %q column found", takeoutURLColumn)
	}

	urls := []string{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, place.NewValidationError("invalid CSV file: %s", err)
		}
		if column >= len(record) {
			continue
		}
		if link := strings.TrimSpace(record[column]); link != "" {
			urls = append(urls, link)
		}
	}
	return urls, nil
}
