package nhl

import "fmt"

// BaseURL is the default upstream API root
const BaseURL = "https://statsapi.web.nhl.com/api/v1"

// ScheduleURL returns the schedule endpoint for a single calendar day
// in ISO 8601 form.
func ScheduleURL(baseURL, isoDate string) string {
	return fmt.Sprintf("%s/schedule?startDate=%s&endDate=%s", baseURL, isoDate, isoDate)
}

// GameLogURL returns the live-feed endpoint for a game identifier
func GameLogURL(baseURL string, gameID int) string {
	return fmt.Sprintf("%s/game/%d/feed/live", baseURL, gameID)
}
