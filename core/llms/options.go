package llms

import "time"

type PromptOptions struct {
	Instructions   string
	History        []Message
	AskedQuestions []string

	// RequestTimeout bounds a single generation request. Zero means no
	// timeout.
	RequestTimeout time.Duration
}

type PromptOption func(*PromptOptions)

func WithInstructions(instructions string) PromptOption {
	return func(o *PromptOptions) {
		o.Instructions = instructions
	}
}

func WithHistory(history []Message) PromptOption {
	return func(o *PromptOptions) {
		o.History = history
	}
}

func WithAskedQuestions(askedQuestions []string) PromptOption {
	return func(o *PromptOptions) {
		o.AskedQuestions = askedQuestions
	}
}

func WithRequestTimeout(timeout time.Duration) PromptOption {
	return func(o *PromptOptions) {
		o.RequestTimeout = timeout
	}
}
