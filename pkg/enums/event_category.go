package enums

import "fmt"

// EventCategory classifies org events for filtering and display.
type EventCategory string

const (
	EventCategoryGeneral       EventCategory = "general"
	EventCategoryGBM           EventCategory = "gbm"
	EventCategoryMixer         EventCategory = "mixer"
	EventCategoryRetreat       EventCategory = "retreat"
	EventCategoryCulturalNight EventCategory = "cultural_night"
	EventCategoryExternal      EventCategory = "external"
	EventCategoryOther         EventCategory = "other"
)

var validEventCategories = []EventCategory{
	EventCategoryGeneral,
	EventCategoryGBM,
	EventCategoryMixer,
	EventCategoryRetreat,
	EventCategoryCulturalNight,
	EventCategoryExternal,
	EventCategoryOther,
}

var defaultCategoryPoints = map[EventCategory]int{
	EventCategoryGeneral:       10,
	EventCategoryGBM:           10,
	EventCategoryMixer:         5,
	EventCategoryRetreat:       15,
	EventCategoryCulturalNight: 10,
	EventCategoryExternal:      5,
	EventCategoryOther:         5,
}

// String implements fmt.Stringer.
func (e EventCategory) String() string {
	return string(e)
}

// DefaultPoints returns the point value applied when an event of this
// category has none of its own.
func (e EventCategory) DefaultPoints() int {
	if points, ok := defaultCategoryPoints[e]; ok {
		return points
	}
	return defaultCategoryPoints[EventCategoryOther]
}

// IsValid reports whether the value is a known EventCategory.
func (e EventCategory) IsValid() bool {
	for _, candidate := range validEventCategories {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEventCategory converts raw input into an EventCategory.
func ParseEventCategory(value string) (EventCategory, error) {
	for _, candidate := range validEventCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event category %q", value)
}
