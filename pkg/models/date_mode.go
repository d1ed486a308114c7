package models

// DateMode selects the calendar used to turn review timestamps into dates
type DateMode string

const (
	// DateUTC groups reviews by UTC calendar day
	DateUTC DateMode = "utc"
	// DateLocal groups reviews by the host's local calendar day
	DateLocal DateMode = "local"
)

// Valid reports whether m is a supported mode
func (m DateMode) Valid() bool {
	return m == DateUTC || m == DateLocal
}
