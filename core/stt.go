package interview

import (
	"context"
	"fmt"

	"github.com/hirevox/screener/core/audio"
	"github.com/hirevox/screener/core/speechtotext"
)

// speechToText is the STT facade used to handle optional client wiring.
type speechToText struct {
	client SpeechToText
}

func (s *speechToText) set(client SpeechToText) {
	if s != nil {
		s.client = client
	}
}

func (s *speechToText) isConfigured() bool {
	return s != nil && s.client != nil
}

func (s *speechToText) start(
	ctx context.Context,
	config speechtotext.Config,
	encodingInfo audio.EncodingInfo,
	onEvent func(event speechtotext.Event),
) error {
	if !s.isConfigured() {
		return nil
	}

	if err := s.client.Transcribe(ctx,
		speechtotext.WithConfig(config),
		speechtotext.WithEncodingInfo(encodingInfo),
		speechtotext.WithEventCallback(onEvent),
	); err != nil {
		return fmt.Errorf("failed to start transcribing: %w", err)
	}

	return nil
}

func (s *speechToText) SendAudio(audio []byte) error {
	if !s.isConfigured() {
		return nil
	}

	return s.client.SendAudio(audio)
}

func (s *speechToText) Close(ctx context.Context) error {
	if !s.isConfigured() {
		return nil
	}

	switch c := s.client.(type) {
	case interface{ Close(context.Context) error }:
		if err := c.Close(ctx); err != nil {
			return fmt.Errorf("failed to close speech-to-text client: %w", err)
		}
	case interface{ Close(context.Context) }:
		c.Close(ctx)
	case interface{ Close() error }:
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close speech-to-text client: %w", err)
		}
	case interface{ Close() }:
		c.Close()
	}

	return nil
}
