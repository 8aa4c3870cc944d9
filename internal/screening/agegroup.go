package screening

// Age group names. Teen is only ever derived for Level-1 records; the
// Level-2 games exist for child, adult and elderly.
const (
	AgeGroupChild   = "child"
	AgeGroupTeen    = "teen"
	AgeGroupAdult   = "adult"
	AgeGroupElderly = "elderly"
)

// AgeGroupFor derives the age group for an age in years.
func AgeGroupFor(age int) string {
	switch {
	case age < 13:
		return AgeGroupChild
	case age < 18:
		return AgeGroupTeen
	case age < 65:
		return AgeGroupAdult
	default:
		return AgeGroupElderly
	}
}
