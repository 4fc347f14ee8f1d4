package interview

import (
	"context"
	"os"
)

// speak converts text to speech segment by segment, collects the audio in a
// scoped temporary file, and plays it to completion. The temporary file is
// removed on every exit path.
func (o *Orchestrator) speak(ctx context.Context, text string) error {
	ctx, span := tracer.Start(ctx, "synthesize and play reply")
	defer span.End()

	if !o.synthesizer.isConfigured() {
		return nil
	}

	tempFile, err := os.CreateTemp("", "screener-*.pcm")
	if err != nil {
		return &PlaybackError{Err: err}
	}
	defer os.Remove(tempFile.Name())

	for _, segment := range SegmentSentences(text) {
		audioBytes, err := o.synthesizer.synthesize(ctx, segment)
		if err != nil {
			tempFile.Close()
			return err
		}

		if _, err := tempFile.Write(audioBytes); err != nil {
			tempFile.Close()
			return &PlaybackError{Err: err}
		}
	}

	if err := tempFile.Close(); err != nil {
		return &PlaybackError{Err: err}
	}

	pcm, err := os.ReadFile(tempFile.Name())
	if err != nil {
		return &PlaybackError{Err: err}
	}

	return o.playback.play(ctx, pcm)
}
