// Package stopid converts between the ID formats the SL APIs use for the
// same stop.
//
// Three formats are in circulation:
//
//  1. Transport API site ID (4-5 digits), e.g. 9117 (Odenplan). Used for
//     departures: /sites/{id}/departures.
//  2. Journey Planner global ID (16 digits), e.g. "9091001000009117".
//     Format: "909100100000" + site id zero-padded to 4 digits. Used in
//     trip-planning legs and returned by the stop finder.
//  3. Journey Planner stopId (8 digits), e.g. "18009117".
//     Format: "1800" + site id zero-padded to 4 digits. Found in stop
//     finder result properties.
package stopid

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Journey Planner global ID prefix for the SL region.
	globalIDPrefix = "909100100000"

	// Journey Planner stopId prefix.
	stopIDPrefix = "1800"
)

// SiteToGlobal converts a Transport API site ID to a Journey Planner
// global ID: SiteToGlobal(9001) == "9091001000009001".
func SiteToGlobal(siteID int) string {
	return fmt.Sprintf("%s%04d", globalIDPrefix, siteID)
}

// GlobalToSite extracts the Transport API site ID from a Journey Planner
// global ID: GlobalToSite("9091001000009001") == 9001.
func GlobalToSite(globalID string) (int, error) {
	if !strings.HasPrefix(globalID, globalIDPrefix) {
		return 0, fmt.Errorf("stopid: invalid global ID %q: expected prefix %s", globalID, globalIDPrefix)
	}
	siteID, err := strconv.Atoi(globalID[len(globalIDPrefix):])
	if err != nil {
		return 0, fmt.Errorf("stopid: invalid global ID %q: %w", globalID, err)
	}
	return siteID, nil
}

// SiteToStop converts a Transport API site ID to the Journey Planner stopId
// format: SiteToStop(9001) == "18009001".
func SiteToStop(siteID int) string {
	return fmt.Sprintf("%s%04d", stopIDPrefix, siteID)
}

// StopToSite extracts the Transport API site ID from a Journey Planner
// stopId: StopToSite("18009001") == 9001.
func StopToSite(stopID string) (int, error) {
	if !strings.HasPrefix(stopID, stopIDPrefix) {
		return 0, fmt.Errorf("stopid: invalid stopId %q: expected prefix %s", stopID, stopIDPrefix)
	}
	siteID, err := strconv.Atoi(stopID[len(stopIDPrefix):])
	if err != nil {
		return 0, fmt.Errorf("stopid: invalid stopId %q: %w", stopID, err)
	}
	return siteID, nil
}

// GlobalToStop converts a Journey Planner global ID to the stopId format.
func GlobalToStop(globalID string) (string, error) {
	siteID, err := GlobalToSite(globalID)
	if err != nil {
		return "", err
	}
	return SiteToStop(siteID), nil
}

// StopToGlobal converts a Journey Planner stopId to the global ID format.
func StopToGlobal(stopID string) (string, error) {
	siteID, err := StopToSite(stopID)
	if err != nil {
		return "", err
	}
	return SiteToGlobal(siteID), nil
}
