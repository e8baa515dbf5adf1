package domain

// AgeGroup enumerates the club's age categories from youth to senior.
type AgeGroup string

const (
	AgeU6     AgeGroup = "U6"
	AgeU7     AgeGroup = "U7"
	AgeU8     AgeGroup = "U8"
	AgeU10    AgeGroup = "U10"
	AgeU11    AgeGroup = "U11"
	AgeU12    AgeGroup = "U12"
	AgeU14    AgeGroup = "U14"
	AgeU16    AgeGroup = "U16"
	AgeU19    AgeGroup = "U19"
	AgeSenior AgeGroup = "SENIOR"
)

// AgeGroups lists every known age category.
var AgeGroups = []AgeGroup{
	AgeU6, AgeU7, AgeU8, AgeU10, AgeU11, AgeU12, AgeU14, AgeU16, AgeU19, AgeSenior,
}

var ageGroupSet = func() map[AgeGroup]struct{} {
	m := make(map[AgeGroup]struct{}, len(AgeGroups))
	for _, g := range AgeGroups {
		m[g] = struct{}{}
	}
	return m
}()

// Valid reports whether g is a known age category.
func (g AgeGroup) Valid() bool {
	_, ok := ageGroupSet[g]
	return ok
}
