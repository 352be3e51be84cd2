// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/wneessen/placeresolver/internal/batch"
	"github.com/wneessen/placeresolver/internal/logger"
	"github.com/wneessen/placeresolver/internal/place"
)

// progress returns the batch options that drive a progress bar on stderr and a function to
// finish the bar. Without a terminal no bar is shown.
func (a *app) progress(total int, description string) ([]batch.Option, func()) {
	if total == 0 || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil, func() {}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	onItemDone := batch.OnItemDone(func() {
		if err := bar.Add(1); err != nil {
			a.log.Debug("failed to update progress bar", logger.Err(err))
		}
	})
	return []batch.Option{onItemDone}, func() {
		if err := bar.Finish(); err != nil {
			a.log.Debug("failed to finish progress bar", logger.Err(err))
		}
	}
}

// reportSkipped logs how many items of a batch yielded no place.
func (a *app) reportSkipped(total, resolved int) {
	if skipped := total - resolved; skipped > 0 {
		a.log.Warn(a.t.Get("some items could not be resolved"), "skipped", skipped, "total", total)
	}
}

func (a *app) closeFile(file *os.File) {
	if err := file.Close(); err != nil {
		a.log.Error("failed to close file", logger.Err(err))
	}
}

// parseCoordinate parses a "latitude,longitude" pair.
func parseCoordinate(value string) (place.Coordinate, error) {
	latRaw, lngRaw, ok := strings.Cut(value, ",")
	if !ok {
		return place.Coordinate{}, place.NewValidationError("invalid coordinate %q, expected latitude,longitude", value)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil || lat < -90 || lat > 90 {
		return place.Coordinate{}, place.NewValidationError("invalid latitude in coordinate %q", value)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil || lng < -180 || lng > 180 {
		return place.Coordinate{}, place.NewValidationError("invalid longitude in coordinate %q", value)
	}
	return place.Coordinate{Lat: lat, Lng: lng}, nil
}

// readLines returns the non-empty, trimmed lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}
