package constant

const (
	RatingAwful = "awful"
	RatingBad   = "bad"
	RatingOkay  = "okay"
	RatingGood  = "good"
	RatingGreat = "great"

	CheckInValueMin = 20
	CheckInValueMax = 100
)

func IsRating(description string) bool {
	switch description {
	case RatingAwful, RatingBad, RatingOkay, RatingGood, RatingGreat:
		return true
	}
	return false
}
