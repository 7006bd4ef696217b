package matchday

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// calendarState schedules AI fixtures on days 1-3 and the player's fixture on
// day 2.
func calendarState() *GameState {
	s := fourTeamState()
	s.Leagues[0].Fixtures = []Match{
		fixture("ai-1", "c", "d", day(1)),
		fixture("player", "a", "b", day(2)),
		fixture("ai-2", "d", "c", day(2)),
		fixture("ai-3", "c", "d", day(3)),
	}
	return s
}

func statusOf(t *testing.T, s *GameState, id string) MatchStatus {
	t.Helper()
	l, i, ok := s.FindMatch(id)
	if !ok {
		t.Fatalf("fixture %s not found", id)
	}
	return l.Fixtures[i].Status
}

func TestAdvanceTimeStopsAtPlayerFixture(t *testing.T) {
	e := testEngine(1)
	s := calendarState()

	next, err := e.AdvanceTime(s, 3)
	if err != nil {
		t.Fatalf("AdvanceTime: %v", err)
	}
	if next.LiveMatch == nil || next.LiveMatch.MatchID != "player" {
		t.Fatalf("live match = %+v, want the player's fixture", next.LiveMatch)
	}
	if !next.CurrentDate.Equal(day(2)) {
		t.Errorf("current date = %s, want %s", next.CurrentDate.Format(time.DateOnly), day(2).Format(time.DateOnly))
	}
	if got := statusOf(t, next, "ai-1"); got != MatchPlayed {
		t.Errorf("day 1 fixture status = %q, want played", got)
	}
	for _, id := range []string{"ai-2", "ai-3"} {
		if got := statusOf(t, next, id); got != MatchScheduled {
			t.Errorf("%s status = %q, want scheduled", id, got)
		}
	}
	if next.AutosaveCounter != 1 {
		t.Errorf("autosave counter = %d, want 1", next.AutosaveCounter)
	}
	if !next.DayPending {
		t.Error("DayPending = false, want true")
	}
	if !s.CurrentDate.Equal(seasonStart) || s.LiveMatch != nil {
		t.Error("input state was modified")
	}

	if _, err := e.AdvanceTime(next, 1); !errors.Is(err, ErrLiveMatchActive) {
		t.Errorf("advance during live match err = %v, want ErrLiveMatchActive", err)
	}

	ended, err := e.EndLiveMatch(next)
	if err != nil {
		t.Fatalf("EndLiveMatch: %v", err)
	}
	if got := statusOf(t, ended, "ai-2"); got != MatchPlayed {
		t.Errorf("rest of match day not processed: ai-2 %q", got)
	}
	if ended.AutosaveCounter != 2 || ended.DayPending {
		t.Errorf("after match day: counter %d pending %v", ended.AutosaveCounter, ended.DayPending)
	}
	checkTable(t, ended.Leagues[0])

	final, err := e.AdvanceTime(ended, 1)
	if err != nil {
		t.Fatalf("AdvanceTime: %v", err)
	}
	if got := statusOf(t, final, "ai-3"); got != MatchPlayed {
		t.Errorf("ai-3 status = %q, want played", got)
	}
	if !final.CurrentDate.Equal(day(3)) || final.AutosaveCounter != 3 {
		t.Errorf("date %s counter %d", final.CurrentDate.Format(time.DateOnly), final.AutosaveCounter)
	}
}

func TestAdvanceTimeProcessesToday(t *testing.T) {
	e := testEngine(4)
	s := fourTeamState()
	s.Leagues[0].Fixtures = []Match{
		fixture("today-ai", "c", "d", seasonStart),
		fixture("later", "d", "c", day(2)),
	}

	next, err := e.AdvanceTime(s, 3)
	if err != nil {
		t.Fatalf("AdvanceTime: %v", err)
	}
	for _, id := range []string{"today-ai", "later"} {
		if got := statusOf(t, next, id); got != MatchPlayed {
			t.Errorf("%s status = %q, want played", id, got)
		}
	}
	if !next.CurrentDate.Equal(day(3)) || next.AutosaveCounter != 4 {
		t.Errorf("date %s counter %d, want %s 4", next.CurrentDate.Format(time.DateOnly), next.AutosaveCounter, day(3).Format(time.DateOnly))
	}
}

func TestAdvanceTimeKicksOffTodaysPlayerFixture(t *testing.T) {
	e := testEngine(5)
	s := fourTeamState()
	s.Leagues[0].Fixtures = []Match{
		fixture("today", "a", "b", seasonStart),
		fixture("today-ai", "c", "d", seasonStart),
	}

	next, err := e.AdvanceTime(s, 3)
	if err != nil {
		t.Fatalf("AdvanceTime: %v", err)
	}
	if next.LiveMatch == nil || next.LiveMatch.MatchID != "today" {
		t.Fatalf("live match = %+v, want today's fixture", next.LiveMatch)
	}
	if !next.CurrentDate.Equal(seasonStart) || !next.DayPending {
		t.Errorf("date %s pending %v, want %s true", next.CurrentDate.Format(time.DateOnly), next.DayPending, seasonStart.Format(time.DateOnly))
	}
	if got := statusOf(t, next, "today-ai"); got != MatchScheduled {
		t.Errorf("today-ai status = %q before the live match ended", got)
	}

	ended, err := e.EndLiveMatch(next)
	if err != nil {
		t.Fatalf("EndLiveMatch: %v", err)
	}
	for _, id := range []string{"today", "today-ai"} {
		if got := statusOf(t, ended, id); got != MatchPlayed {
			t.Errorf("%s status = %q, want played", id, got)
		}
	}
	if ended.DayPending {
		t.Error("DayPending still set after the match day")
	}
}

func TestSecondPlayerFixtureSameDayGoesLive(t *testing.T) {
	e := testEngine(6)
	s := fourTeamState()
	s.Leagues[0].Fixtures = []Match{
		fixture("first", "a", "b", day(2)),
		fixture("second", "c", "a", day(2)),
	}

	next, err := e.AdvanceTime(s, 3)
	if err != nil {
		t.Fatalf("AdvanceTime: %v", err)
	}
	if next.LiveMatch == nil || next.LiveMatch.MatchID != "first" {
		t.Fatalf("live match = %+v, want first", next.LiveMatch)
	}

	between, err := e.EndLiveMatch(next)
	if err != nil {
		t.Fatalf("EndLiveMatch: %v", err)
	}
	if between.LiveMatch == nil || between.LiveMatch.MatchID != "second" {
		t.Fatalf("live match = %+v, want second", between.LiveMatch)
	}
	if got := statusOf(t, between, "second"); got != MatchInProgress {
		t.Errorf("second status = %q, want in progress", got)
	}
	if !between.DayPending || between.AutosaveCounter != next.AutosaveCounter {
		t.Errorf("pending %v counter %d, day completed too early", between.DayPending, between.AutosaveCounter)
	}

	done, err := e.EndLiveMatch(between)
	if err != nil {
		t.Fatalf("EndLiveMatch: %v", err)
	}
	if got := statusOf(t, done, "second"); got != MatchPlayed {
		t.Errorf("second status = %q, want played", got)
	}
	if done.DayPending || done.AutosaveCounter != next.AutosaveCounter+1 {
		t.Errorf("pending %v counter %d after the match day", done.DayPending, done.AutosaveCounter)
	}
}

func TestAdvanceTimeInvalidDays(t *testing.T) {
	e := testEngine(1)
	s := calendarState()
	got, err := e.AdvanceTime(s, -1)
	if !errors.Is(err, ErrInvalidDays) {
		t.Fatalf("err = %v, want ErrInvalidDays", err)
	}
	if got != s {
		t.Error("state replaced on invalid days")
	}
}

func TestAdvanceTimeZeroDays(t *testing.T) {
	e := testEngine(1)
	s := calendarState()
	got, err := e.AdvanceTime(s, 0)
	if err != nil {
		t.Fatalf("AdvanceTime: %v", err)
	}
	if !got.CurrentDate.Equal(s.CurrentDate) || got.AutosaveCounter != 0 {
		t.Errorf("zero days moved the calendar: %s, counter %d", got.CurrentDate, got.AutosaveCounter)
	}
}

func TestAdvanceTimeWeeklyTraining(t *testing.T) {
	e := testEngine(1)
	s := fourTeamState()

	next, err := e.AdvanceTime(s, 7)
	if err != nil {
		t.Fatalf("AdvanceTime: %v", err)
	}
	// seasonStart is a Tuesday; the first Monday is six days later.
	if next.LastTrainingDate == nil || !next.LastTrainingDate.Equal(day(6)) {
		t.Fatalf("last training = %v, want %s", next.LastTrainingDate, day(6).Format(time.DateOnly))
	}
	if next.AutosaveCounter != 7 {
		t.Errorf("autosave counter = %d, want 7", next.AutosaveCounter)
	}

	later, err := e.AdvanceTime(next, 7)
	if err != nil {
		t.Fatalf("AdvanceTime: %v", err)
	}
	if !later.LastTrainingDate.Equal(day(13)) {
		t.Errorf("last training = %s, want %s", later.LastTrainingDate.Format(time.DateOnly), day(13).Format(time.DateOnly))
	}
}

func TestAdvanceTimeTrainingOncePerBoundary(t *testing.T) {
	e := testEngine(1)
	s := fourTeamState()
	monday := day(6)
	s.CurrentDate = monday.AddDate(0, 0, -1)
	for i := range s.Players {
		s.Players[i].Stats.Potential = 99
	}

	// A live match on the Monday leaves the day pending; finishing the day
	// must run training exactly once.
	s.Leagues[0].Fixtures = []Match{fixture("m", "a", "b", monday)}
	live, err := e.AdvanceTime(s, 1)
	if err != nil {
		t.Fatalf("AdvanceTime: %v", err)
	}
	if live.LastTrainingDate != nil {
		t.Fatal("training ran before the match day finished")
	}
	ended, err := e.EndLiveMatch(live)
	if err != nil {
		t.Fatalf("EndLiveMatch: %v", err)
	}
	if ended.LastTrainingDate == nil || !ended.LastTrainingDate.Equal(monday) {
		t.Fatalf("last training = %v, want %s", ended.LastTrainingDate, monday.Format(time.DateOnly))
	}
	if e.trainingDue(ended, monday) {
		t.Error("training still due on the same Monday")
	}
}

func TestAdvanceTimeChunkingIsTransparent(t *testing.T) {
	build := func() *GameState {
		s := fourTeamState()
		s.PlayerTeamID = ""
		e := testEngine(99)
		e.ScheduleLeague(&s.Leagues[0], day(2))
		return s
	}

	e1 := testEngine(5)
	whole, err := e1.AdvanceTime(build(), 30)
	if err != nil {
		t.Fatalf("AdvanceTime: %v", err)
	}

	e2 := testEngine(5)
	part := build()
	for _, n := range []int{4, 11, 1, 14} {
		if part, err = e2.AdvanceTime(part, n); err != nil {
			t.Fatalf("AdvanceTime(%d): %v", n, err)
		}
	}
	if !reflect.DeepEqual(whole, part) {
		t.Error("advancing in chunks diverged from a single advance")
	}
	checkTable(t, whole.Leagues[0])
}

func TestAdvanceTimeDeterministic(t *testing.T) {
	run := func() *GameState {
		e := testEngine(77)
		s := calendarState()
		next, err := e.AdvanceTime(s, 3)
		if err != nil {
			t.Fatalf("AdvanceTime: %v", err)
		}
		return next
	}
	if !reflect.DeepEqual(run(), run()) {
		t.Error("same seed produced different states")
	}
}

func TestAdvanceTimeResultNews(t *testing.T) {
	e := testEngine(1)
	s := calendarState()
	next, err := e.AdvanceTime(s, 1)
	if err != nil {
		t.Fatalf("AdvanceTime: %v", err)
	}
	if len(next.News) != 1 || next.News[0].Type != NewsMatchResult {
		t.Fatalf("news = %+v, want one match result", next.News)
	}
	if !next.News[0].Date.Equal(day(1)) {
		t.Errorf("news date = %s, want %s", next.News[0].Date, day(1))
	}
}

func TestAdvanceTimeMissingTeamKeepsGoing(t *testing.T) {
	e := testEngine(1)
	s := calendarState()
	s.Leagues[0].Fixtures[0].HomeTeamID = "ghost"

	next, err := e.AdvanceTime(s, 1)
	if err != nil {
		t.Fatalf("AdvanceTime: %v", err)
	}
	l, i, _ := next.FindMatch("ai-1")
	if m := l.Fixtures[i]; m.Status != MatchPlayed || m.Result != (MatchResult{}) {
		t.Errorf("broken fixture = %+v, want played 0-0", m)
	}
}

func TestAdvanceToNextMatch(t *testing.T) {
	e := testEngine(1)
	s := calendarState()

	next, err := e.AdvanceToNextMatch(s)
	if err != nil {
		t.Fatalf("AdvanceToNextMatch: %v", err)
	}
	if next.LiveMatch == nil || next.LiveMatch.MatchID != "player" {
		t.Fatalf("live match = %+v", next.LiveMatch)
	}
	if !next.CurrentDate.Equal(day(2)) {
		t.Errorf("current date = %s, want %s", next.CurrentDate, day(2))
	}

	ended, _ := e.EndLiveMatch(next)
	if _, err := e.AdvanceToNextMatch(ended); !errors.Is(err, ErrNoUpcomingMatch) {
		t.Errorf("err = %v, want ErrNoUpcomingMatch", err)
	}
}

func TestAdvanceToNextMatchToday(t *testing.T) {
	e := testEngine(1)
	s := calendarState()
	s.CurrentDate = day(2)

	next, err := e.AdvanceToNextMatch(s)
	if err != nil {
		t.Fatalf("AdvanceToNextMatch: %v", err)
	}
	if next.LiveMatch == nil || !next.CurrentDate.Equal(day(2)) {
		t.Fatalf("live %+v on %s", next.LiveMatch, next.CurrentDate)
	}
}

func TestAutosaveDue(t *testing.T) {
	s := NewGameState(seasonStart, "")
	s.Settings.AutosaveInterval = 3
	s.AutosaveCounter = 2
	if s.AutosaveDue() {
		t.Error("due after 2 of 3 days")
	}
	s.AutosaveCounter = 3
	if !s.AutosaveDue() {
		t.Error("not due after 3 of 3 days")
	}
	s.Settings.AutosaveInterval = 0
	if s.AutosaveDue() {
		t.Error("due with autosave disabled")
	}
}
