package report

// Difference classes for one report row. Zero difference is always
// accurate, a positive difference is surplus, a negative one shortage.
const (
	DiffAccurate = "accurate"
	DiffSurplus  = "surplus"
	DiffShortage = "shortage"
)

// Classify maps a counted-minus-expected difference to its class.
func Classify(difference int64) string {
	switch {
	case difference > 0:
		return DiffSurplus
	case difference < 0:
		return DiffShortage
	default:
		return DiffAccurate
	}
}

// DiscrepancyView is one report row ready for display. Difference carries
// an explicit plus sign for surpluses.
type DiscrepancyView struct {
	Code       string
	Name       string
	Expected   int64
	Counted    int64
	Difference string
	Class      string
	Note       string
}

type PageData struct {
	SessionID  int64
	Location   string
	Status     string
	StartedAt  string
	FinishedAt string

	TotalCounted    int
	Accurate        int
	WithDiscrepancy int
	Accuracy        string

	Rows []DiscrepancyView

	// LoadError is set when the report could not be fetched; the page
	// then shows the message with a retry link instead of report data.
	LoadError string
}
