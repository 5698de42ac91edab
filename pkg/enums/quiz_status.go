package enums

// QuizStatus is the phase of a shopper's quiz.
type QuizStatus string

const (
	QuizStatusQuestion  QuizStatus = "question"
	QuizStatusLoading   QuizStatus = "loading"
	QuizStatusCompleted QuizStatus = "completed"
)

// String implements fmt.Stringer.
func (s QuizStatus) String() string {
	return string(s)
}
