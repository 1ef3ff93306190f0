package sessions

// SessionView is one history row with timestamps already formatted for
// display.
type SessionView struct {
	ID         int64
	Location   string
	CreatedBy  string
	Status     string
	StartedAt  string
	FinishedAt string
	Duration   string
	TotalItems int
	Active     bool
}

type PageData struct {
	Sessions []SessionView
	Page     int
	Pages    int
	Total    int
	Message  string
}

func (d PageData) HasPrev() bool { return d.Page > 1 }

func (d PageData) HasNext() bool { return d.Page < d.Pages }
