package season

// Grade is a qualitative band for a 0-100 match score.
type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeFair      Grade = "fair"
	GradePoor      Grade = "poor"
)

// String returns the grade name.
func (g Grade) String() string {
	return string(g)
}

// GradeFor maps a score onto a grade: 80 and above is excellent, 60 good,
// 40 fair and anything lower poor.
func GradeFor(score float64) Grade {
	switch {
	case score >= 80:
		return GradeExcellent
	case score >= 60:
		return GradeGood
	case score >= 40:
		return GradeFair
	default:
		return GradePoor
	}
}
