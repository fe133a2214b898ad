package recap

// Library is the munged-record store. Writes must be deterministic:
// identical records yield identical bytes on disk.
type Library interface {
	WriteWeeklyRecap(season string, week int, rec WeeklyRecap) error
	WriteWeeklyTransactions(season string, week int, rows []MappedTransaction) error
	WriteSeasonRecap(rec SeasonRecap) error
	WritePostseasonWeek(season string, week int, rec WeeklyRecap) error
	WritePostseasonRecap(rec PostseasonRecap) error
	WriteDraft(d SeasonDraft) error
	WriteAllTime(rec AllTimeRecap) error

	ReadWeeklyRecap(season string, week int) (WeeklyRecap, error)
	ReadWeeklyTransactions(season string, week int) ([]MappedTransaction, error)
	ReadSeasonRecap(season string) (SeasonRecap, error)
	ReadPostseasonWeek(season string, week int) (WeeklyRecap, error)
	ReadPostseasonRecap(season string) (PostseasonRecap, error)
	ReadDraft(season string) (SeasonDraft, error)
	ReadAllTime() (AllTimeRecap, error)

	Seasons() ([]string, error)
	RegularWeeks(season string) ([]int, error)
	PostseasonWeeks(season string) ([]int, error)
	HasPostseason(season string) bool
	HasAllTime() bool
}
