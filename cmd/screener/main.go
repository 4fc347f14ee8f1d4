package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/muesli/reflow/wordwrap"

	interview "github.com/hirevox/screener/core"
	"github.com/hirevox/screener/core/audio"
	"github.com/hirevox/screener/core/audio/miniaudio"
	"github.com/hirevox/screener/core/audio/portaudio"
	"github.com/hirevox/screener/core/llms/gemini"
	sttdeepgram "github.com/hirevox/screener/core/speechtotext/deepgram"
	"github.com/hirevox/screener/core/texttospeech"
	ttsdeepgram "github.com/hirevox/screener/core/texttospeech/deepgram"
)

const (
	replyWidth = 80

	portaudioBufferSize = 1024
)

var (
	candidateStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	screenerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	interimStyle   = lipgloss.NewStyle().Faint(true)
	speakingStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// audioClient is what both audio backends provide: microphone capture,
// blocking playback, and the encodings of each side.
type audioClient interface {
	interview.AudioInput
	interview.Playback
	PlaybackEncodingInfo() audio.EncodingInfo
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}

	if _, ok := os.LookupEnv("DEEPGRAM_API_KEY"); !ok {
		log.Fatal("DEEPGRAM_API_KEY is not set")
	}
	geminiAPIKey, ok := os.LookupEnv("GEMINI_API_KEY")
	if !ok {
		log.Fatal("GEMINI_API_KEY is not set")
	}

	client, err := newAudioClient(os.Getenv("AUDIO_BACKEND"))
	if err != nil {
		log.Fatalf("Failed to initialize audio: %v", err)
	}

	synthesisOpts := []texttospeech.SynthesisOption{
		texttospeech.WithEncodingInfo(client.PlaybackEncodingInfo()),
	}
	if voice := os.Getenv("TTS_VOICE"); voice != "" {
		synthesisOpts = append(synthesisOpts, texttospeech.WithVoice(voice))
	}
	synthesizer, err := ttsdeepgram.NewSynthesisClient(synthesisOpts...)
	if err != nil {
		log.Fatalf("Failed to initialize speech synthesis: %v", err)
	}

	generator, err := gemini.NewClient(geminiAPIKey, os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Fatalf("Failed to initialize response generation: %v", err)
	}

	orchestrator := interview.NewOrchestrator(
		interview.WithSpeechToTextClient(sttdeepgram.NewTranscriptionClient()),
		interview.WithResponseGenerator(generator),
		interview.WithSpeechSynthesizer(synthesizer),
		interview.WithPlayback(client),
		interview.WithAudioInput(client),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = orchestrator.Orchestrate(ctx,
		interview.WithInterimTranscriptionCallback(func(transcript string) {
			fmt.Println(interimStyle.Render("… " + transcript))
		}),
		interview.WithUtteranceCallback(func(utterance string) {
			fmt.Println(candidateStyle.Render("You: ") + utterance)
		}),
		interview.WithReplyCallback(func(reply string) {
			fmt.Println(screenerStyle.Render("Charles: ") + wordwrap.String(reply, replyWidth))
		}),
		interview.WithSpeakingStateChangedCallback(func(isSpeaking bool) {
			if isSpeaking {
				fmt.Println(speakingStyle.Render("(speaking, microphone muted)"))
			}
		}),
		interview.WithTurnErrorCallback(func(err error) {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Turn failed: %v", err)))
		}),
	)
	if err != nil {
		log.Fatalf("Failed to start the interview session: %v", err)
	}

	fmt.Println("Interview session started. Press Enter to end it.")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')

	orchestrator.Close()
	fmt.Printf("Interview ended after %d questions.\n", orchestrator.AskedQuestionCount())
}

func newAudioClient(backend string) (audioClient, error) {
	switch backend {
	case "", "miniaudio":
		return miniaudio.NewClient()
	case "portaudio":
		return portaudio.NewClient(portaudioBufferSize)
	default:
		return nil, fmt.Errorf("unknown audio backend %q", backend)
	}
}
