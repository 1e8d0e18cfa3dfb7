package core

import "context"

// Coach generates interview questions and evaluates answers. Implementations
// typically delegate to a hosted completion API.
type Coach interface {
	// GenerateQuestion produces one interview question for the given role at
	// the given difficulty.
	GenerateQuestion(ctx context.Context, jobTitle string, level Difficulty) (string, error)

	// EvaluateAnswer produces feedback on a candidate's answer together with
	// a recommendation for the next question's difficulty.
	EvaluateAnswer(ctx context.Context, jobTitle, question, answer string) (*Feedback, error)
}

// JobDispatcher accepts completed sessions and queues them for background
// processing. It decouples the session engine from the archival mechanism and
// returns an error when the queue is full, providing backpressure.
type JobDispatcher interface {
	Dispatch(ctx context.Context, session *Session) error
}

// Job is a single unit of background work triggered by a completed session.
type Job interface {
	Run(ctx context.Context, session *Session) error
}
