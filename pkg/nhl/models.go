package nhl

// Schedule is the response from the schedule endpoint. A day with no
// games yields an empty Dates slice, which is valid and distinct from
// an error.
type Schedule struct {
	Dates []ScheduleDate `json:"dates"`
}

// ScheduleDate is one calendar day's worth of scheduled games
type ScheduleDate struct {
	Date  string          `json:"date"`
	Games []ScheduledGame `json:"games"`
}

// ScheduledGame carries the game identifier from the schedule listing
type ScheduledGame struct {
	GamePk int `json:"gamePk"`
}

// GameLog is the full per-game live feed: metadata plus the ordered
// play list.
type GameLog struct {
	GameData GameData `json:"gameData"`
	LiveData LiveData `json:"liveData"`
}

// GameData holds game-level metadata
type GameData struct {
	Game     GameInfo     `json:"game"`
	Datetime GameDatetime `json:"datetime"`
	Teams    GameTeams    `json:"teams"`
}

// GameInfo identifies the game and its season/type
type GameInfo struct {
	Pk     int    `json:"pk"`
	Season string `json:"season"`
	Type   string `json:"type"`
}

// GameDatetime holds the scheduled start time
type GameDatetime struct {
	DateTime string `json:"dateTime"`
}

// GameTeams holds the home and away team references
type GameTeams struct {
	Home TeamRef `json:"home"`
	Away TeamRef `json:"away"`
}

// TeamRef identifies a team. Pointer fields stay nil when the upstream
// omits them, which maps to NULL in storage.
type TeamRef struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

// LiveData wraps the play-by-play section of the feed
type LiveData struct {
	Plays Plays `json:"plays"`
}

// Plays holds the ordered play list
type Plays struct {
	AllPlays []Play `json:"allPlays"`
}

// Play is a single play event. Team, participants and coordinates are
// optional: not every event type carries them.
type Play struct {
	About       PlayAbout        `json:"about"`
	Result      PlayResult       `json:"result"`
	Team        *TeamRef         `json:"team,omitempty"`
	Players     []PlayerRef      `json:"players,omitempty"`
	Coordinates *PlayCoordinates `json:"coordinates,omitempty"`
}

// PlayAbout carries the event's position within the game. EventIdx is
// the upstream's stable ordinal and forms the event's identity together
// with the game identifier.
type PlayAbout struct {
	EventIdx   int    `json:"eventIdx"`
	Period     *int   `json:"period"`
	PeriodTime string `json:"periodTime"`
}

// PlayResult describes what happened
type PlayResult struct {
	EventTypeID string `json:"eventTypeId"`
	Description string `json:"description"`
}

// PlayerRef is one participant in a play
type PlayerRef struct {
	Player     *PlayerID `json:"player"`
	PlayerType string    `json:"playerType"`
}

// PlayerID identifies a player
type PlayerID struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

// PlayCoordinates is the on-ice location of a play
type PlayCoordinates struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}
