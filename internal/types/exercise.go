package types

// ExerciseKind classifies how an exercise is meant to be driven.
type ExerciseKind string

const (
	// KindDrill marks exercises that compute a result from arguments
	KindDrill ExerciseKind = "drill"
	// KindInteractive marks exercises that run a prompt loop
	KindInteractive ExerciseKind = "interactive"
	// KindDemo marks exercises that walk through a concept when run
	KindDemo ExerciseKind = "demo"
)

// ExerciseInfo contains metadata about a bundled exercise program.
type ExerciseInfo struct {
	// Slug is the exercise identifier used on the command line
	Slug string
	// Title is the human-readable exercise name shown in listings
	Title string
	// Chapter ties the exercise to the lesson chapter it belongs to
	Chapter int
	// Kind classifies the exercise (drill, interactive, demo)
	Kind ExerciseKind
	// Summary is a one-line description shown in listings
	Summary string
	// Usage shows the argument form, if the exercise takes arguments
	Usage string
}
