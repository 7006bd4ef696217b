package matchday

import "fmt"

// Command is one state transition requested from outside the engine. The set
// of commands is closed; Apply rejects anything else.
type Command interface {
	command()
}

type (
	AdvanceTime struct {
		Days int `json:"days"`
	}
	AdvanceToNextMatch struct{}
	StartLiveMatch     struct {
		MatchID string `json:"matchId"`
	}
	TickLiveMatch         struct{}
	PauseLiveMatch        struct{}
	ResumeLiveMatch       struct{}
	EndLiveMatch          struct{}
	ProcessWeeklyTraining struct{}
	ResetAutosaveCounter  struct{}
	MarkNewsRead          struct {
		NewsID string `json:"newsId"`
	}
)

func (AdvanceTime) command()           {}
func (AdvanceToNextMatch) command()    {}
func (StartLiveMatch) command()        {}
func (TickLiveMatch) command()         {}
func (PauseLiveMatch) command()        {}
func (ResumeLiveMatch) command()       {}
func (EndLiveMatch) command()          {}
func (ProcessWeeklyTraining) command() {}
func (ResetAutosaveCounter) command()  {}
func (MarkNewsRead) command()          {}

// Apply runs cmd against s and returns the resulting state. On error the
// returned state is s itself, unchanged.
func (e *Engine) Apply(s *GameState, cmd Command) (*GameState, error) {
	switch c := cmd.(type) {
	case AdvanceTime:
		return e.AdvanceTime(s, c.Days)
	case AdvanceToNextMatch:
		return e.AdvanceToNextMatch(s)
	case StartLiveMatch:
		return e.StartLiveMatch(s, c.MatchID)
	case TickLiveMatch:
		return e.TickLiveMatch(s)
	case PauseLiveMatch:
		return e.PauseLiveMatch(s)
	case ResumeLiveMatch:
		return e.ResumeLiveMatch(s)
	case EndLiveMatch:
		return e.EndLiveMatch(s)
	case ProcessWeeklyTraining:
		next := s.Clone()
		next.Players = e.ProcessWeeklyTraining(s).Players
		return next, nil
	case ResetAutosaveCounter:
		next := s.Clone()
		next.AutosaveCounter = 0
		return next, nil
	case MarkNewsRead:
		for i := range s.News {
			if s.News[i].ID != c.NewsID {
				continue
			}
			next := s.Clone()
			next.News[i].IsRead = true
			return next, nil
		}
		return s, fmt.Errorf("news item %q: %w", c.NewsID, ErrNewsNotFound)
	default:
		return s, fmt.Errorf("%T: %w", cmd, ErrUnknownCommand)
	}
}
