package domain

// DayOfWeek enumerates the fixed seven-day week used across the planner.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// Days lists the week in its canonical Monday-first ordering.
var Days = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayShort = map[DayOfWeek]string{
	Monday:    "Mon",
	Tuesday:   "Tue",
	Wednesday: "Wed",
	Thursday:  "Thu",
	Friday:    "Fri",
	Saturday:  "Sat",
	Sunday:    "Sun",
}

var dayIndex = func() map[DayOfWeek]int {
	m := make(map[DayOfWeek]int, len(Days))
	for i, d := range Days {
		m[d] = i
	}
	return m
}()

// Valid reports whether d is one of the seven known days.
func (d DayOfWeek) Valid() bool {
	_, ok := dayIndex[d]
	return ok
}

// Short returns the three-letter label for the day, or the raw value when unknown.
func (d DayOfWeek) Short() string {
	if s, ok := dayShort[d]; ok {
		return s
	}
	return string(d)
}

// Index returns the position of the day in the Monday-first week, -1 when unknown.
func (d DayOfWeek) Index() int {
	if i, ok := dayIndex[d]; ok {
		return i
	}
	return -1
}
