package interview

import "context"

// speechSynthesizer is the synthesis facade used to handle optional client
// wiring and error classification.
type speechSynthesizer struct {
	client SpeechSynthesizer
}

func (s *speechSynthesizer) set(client SpeechSynthesizer) {
	if s != nil {
		s.client = client
	}
}

func (s *speechSynthesizer) isConfigured() bool {
	return s != nil && s.client != nil
}

func (s *speechSynthesizer) synthesize(ctx context.Context, text string) ([]byte, error) {
	if !s.isConfigured() {
		return nil, nil
	}

	audioBytes, err := s.client.Synthesize(ctx, text)
	if err != nil {
		return nil, &SynthesisError{Err: err}
	}
	return audioBytes, nil
}
