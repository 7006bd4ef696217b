// Package matchday defines the core domain types of the football management
// game and the simulation engine that advances a season: instant match
// resolution, the live minute-by-minute match, weekly player development and
// day-by-day time advancement.
//
// Nothing in this package performs I/O. Every operation takes a GameState
// snapshot and returns a new one.
package matchday

import "time"

type Position string

const (
	PositionGK Position = "GK"
	PositionDF Position = "DF"
	PositionMF Position = "MF"
	PositionFW Position = "FW"
)

type Morale string

const (
	MoraleEcstatic    Morale = "Ecstatic"
	MoraleHappy       Morale = "Happy"
	MoraleContent     Morale = "Content"
	MoraleUnsettled   Morale = "Unsettled"
	MoraleUnhappy     Morale = "Unhappy"
	MoraleVeryUnhappy Morale = "Very Unhappy"
)

// moraleLadder orders morale levels from happiest to unhappiest.
var moraleLadder = []Morale{
	MoraleEcstatic,
	MoraleHappy,
	MoraleContent,
	MoraleUnsettled,
	MoraleUnhappy,
	MoraleVeryUnhappy,
}

type Player struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Age             int           `json:"age"`
	Nationality     string        `json:"nationality,omitempty"`
	Position        string        `json:"position"`
	GeneralPosition Position      `json:"generalPosition"`
	Stats           PlayerStats   `json:"stats"`
	Personality     Personality   `json:"personality"`
	Morale          Morale        `json:"morale"`
	Form            float64       `json:"form"`
	Contract        Contract      `json:"contract"`
	Value           int64         `json:"value"`
	SeasonalStats   SeasonalStats `json:"seasonalStats"`
}

type Personality struct {
	Ambition        float64 `json:"ambition"`
	Professionalism float64 `json:"professionalism"`
	Loyalty         float64 `json:"loyalty"`
	Leadership      float64 `json:"leadership"`
	Temperament     float64 `json:"temperament"`
}

type Contract struct {
	ClubID     string     `json:"clubId,omitempty"`
	Wage       int64      `json:"wage"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
}

type SeasonalStats struct {
	Appearances int     `json:"appearances"`
	Goals       int     `json:"goals"`
	Assists     int     `json:"assists"`
	AvgRating   float64 `json:"avgRating"`
}

type Mentality string

const (
	MentalityAttacking Mentality = "attacking"
	MentalityBalanced  Mentality = "balanced"
	MentalityDefensive Mentality = "defensive"
)

type Tactics struct {
	Mentality         Mentality `json:"mentality"`
	PassingStyle      string    `json:"passingStyle"`
	PressingIntensity string    `json:"pressingIntensity"`
}

type Squad struct {
	StartingXI []string `json:"startingXI"`
	Subs       []string `json:"subs"`
	Reserves   []string `json:"reserves"`
}

type Finances struct {
	Balance        int64 `json:"balance"`
	WageBudget     int64 `json:"wageBudget"`
	TransferBudget int64 `json:"transferBudget"`
}

type Team struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	ShortName               string   `json:"shortName"`
	LeagueID                string   `json:"leagueId,omitempty"`
	PlayerIDs               []string `json:"playerIds"`
	Squad                   Squad    `json:"squad"`
	Formation               string   `json:"formation"`
	Tactics                 Tactics  `json:"tactics"`
	Finances                Finances `json:"finances"`
	TrainingFacilitiesLevel int      `json:"trainingFacilitiesLevel"`
	ManagerName             string   `json:"managerName,omitempty"`
}

type League struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Country         string       `json:"country,omitempty"`
	TeamIDs         []string     `json:"teamIds"`
	Fixtures        []Match      `json:"fixtures"`
	Table           []TableEntry `json:"table"`
	CurrentMatchday int          `json:"currentMatchday"`
}

// TableEntry is one team's cumulative season record within a league.
type TableEntry struct {
	TeamID         string `json:"teamId"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
	Position       int    `json:"position,omitempty"`
}

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in_progress"
	MatchPlayed     MatchStatus = "played"
)

type Match struct {
	ID            string       `json:"id"`
	HomeTeamID    string       `json:"homeTeamId"`
	AwayTeamID    string       `json:"awayTeamId"`
	Date          time.Time    `json:"date"`
	LeagueID      string       `json:"leagueId"`
	Matchday      int          `json:"matchday,omitempty"`
	Status        MatchStatus  `json:"status"`
	Result        MatchResult  `json:"result"`
	Events        []MatchEvent `json:"events"`
	Stats         MatchStats   `json:"stats"`
	CommentaryLog []Commentary `json:"commentaryLog"`
}

type MatchResult struct {
	HomeScore int `json:"homeScore"`
	AwayScore int `json:"awayScore"`
}

const EventGoal = "Goal"

type MatchEvent struct {
	Minute   int    `json:"minute"`
	Type     string `json:"type"`
	PlayerID string `json:"playerId,omitempty"`
	TeamID   string `json:"teamId,omitempty"`
	Details  string `json:"details,omitempty"`
}

type MatchStats struct {
	HomeShots         int `json:"homeShots"`
	AwayShots         int `json:"awayShots"`
	HomeShotsOnTarget int `json:"homeShotsOnTarget"`
	AwayShotsOnTarget int `json:"awayShotsOnTarget"`
	HomePossession    int `json:"homePossession"`
	AwayPossession    int `json:"awayPossession"`
}

type Commentary struct {
	ID       string `json:"id,omitempty"`
	Minute   int    `json:"minute"`
	Text     string `json:"text"`
	Type     string `json:"type,omitempty"`
	TeamID   string `json:"teamId,omitempty"`
	PlayerID string `json:"playerId,omitempty"`
}

type LiveStatus string

const (
	LivePlaying  LiveStatus = "playing"
	LivePaused   LiveStatus = "paused"
	LiveHalfTime LiveStatus = "half-time"
	LiveFullTime LiveStatus = "full-time"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LiveMatchState exists only while the player's own fixture is being played
// out minute by minute.
type LiveMatchState struct {
	MatchID      string       `json:"matchId"`
	Minute       int          `json:"minute"`
	HomeScore    int          `json:"homeScore"`
	AwayScore    int          `json:"awayScore"`
	Status       LiveStatus   `json:"status"`
	BallPosition Point        `json:"ballPosition"`
	Commentary   []Commentary `json:"commentary"`
	HomeTactics  Tactics      `json:"liveHomeTactics"`
	AwayTactics  Tactics      `json:"liveAwayTactics"`
}

type NewsType string

const (
	NewsMatchResult NewsType = "match_result"
	NewsLiveMatch   NewsType = "live_match"
	NewsDevelopment NewsType = "development"
)

type NewsItem struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Type    NewsType  `json:"type"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	IsRead  bool      `json:"isRead"`
	TeamID  string    `json:"teamId,omitempty"`
}

type Settings struct {
	AutosaveInterval     int     `json:"autosaveInterval"`
	LiveMinutesPerSecond float64 `json:"liveMinutesPerSecond"`
	HalfTimeBreak        bool    `json:"halfTimeBreak"`
}

// GameState is the full snapshot of a career. It is what persistence loads
// and saves and what every engine operation consumes and returns.
type GameState struct {
	CurrentDate      time.Time       `json:"currentDate"`
	PlayerTeamID     string          `json:"playerTeamId,omitempty"`
	Teams            []Team          `json:"teams"`
	Players          []Player        `json:"players"`
	Leagues          []League        `json:"leagues"`
	News             []NewsItem      `json:"news"`
	Settings         Settings        `json:"gameSettings"`
	SeasonYear       int             `json:"seasonYear"`
	AutosaveCounter  int             `json:"autosaveCounter"`
	LiveMatch        *LiveMatchState `json:"liveMatch"`
	LastTrainingDate *time.Time      `json:"lastTrainingDate,omitempty"`

	// DayPending is set while the current date's live match is being played;
	// the rest of that day is processed once the match ends.
	DayPending bool `json:"dayPending,omitempty"`
}
