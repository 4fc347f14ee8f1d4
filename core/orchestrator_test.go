package interview

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hirevox/screener/core/llms"
	"github.com/hirevox/screener/core/speechtotext"
)

func TestOrchestratorBuffersFragmentsUntilEndpoint(t *testing.T) {
	generator := &generatorStub{replies: []string{"Great to meet you. What is your experience with Go?"}}
	orchestrator, speaking := startTestOrchestrator(t, generator)

	utterances := []string{}
	orchestrator.orchestrateOptions.onUtterance = func(utterance string) {
		utterances = append(utterances, utterance)
	}

	orchestrator.handleTranscriptEvent(speechtotext.Event{Transcript: "tell me", IsFinal: false})
	orchestrator.handleTranscriptEvent(speechtotext.Event{Transcript: "tell me", IsFinal: true})
	orchestrator.handleTranscriptEvent(speechtotext.Event{Transcript: "about yourself.", IsFinal: true, SpeechFinal: true})
	awaitSpeaking(t, speaking, false)

	if len(utterances) != 1 || utterances[0] != "tell me about yourself." {
		t.Fatalf("expected buffered fragments concatenated into one utterance, got %v", utterances)
	}

	history := orchestrator.Conversation()
	if len(history) != 2 {
		t.Fatalf("expected one user and one assistant turn, got %d", len(history))
	}
	if history[0].Role != llms.RoleUser || history[0].Content != "tell me about yourself." {
		t.Fatalf("unexpected user turn %+v", history[0])
	}
}

func TestOrchestratorSyntheticEndpointFlushesBufferedFragments(t *testing.T) {
	generator := &generatorStub{replies: []string{"And what brings you here?"}}
	orchestrator, speaking := startTestOrchestrator(t, generator)

	orchestrator.handleTranscriptEvent(speechtotext.Event{Transcript: "I work on backend services", IsFinal: true})
	orchestrator.handleTranscriptEvent(speechtotext.Event{IsFinal: true, SpeechFinal: true})
	awaitSpeaking(t, speaking, false)

	history := orchestrator.Conversation()
	if len(history) != 2 || history[0].Content != "I work on backend services" {
		t.Fatalf("expected empty endpoint event to flush the fragment buffer, got %+v", history)
	}
}

func TestOrchestratorPrependsIntroductionExactlyOnce(t *testing.T) {
	generator := &generatorStub{replies: []string{
		"Great to meet you. What is your experience with Go?",
		"Interesting. Why did you choose Go?",
	}}
	orchestrator, speaking := startTestOrchestrator(t, generator)

	driveTurn(t, orchestrator, speaking, "Tell me about yourself.")

	history := orchestrator.Conversation()
	if !strings.HasPrefix(history[1].Content, introductionLine) {
		t.Fatalf("expected first reply to be prefixed with the introduction, got %q", history[1].Content)
	}
	if strings.Count(history[1].Content, introductionLine) != 1 {
		t.Fatalf("expected introduction exactly once, got %q", history[1].Content)
	}
	if !orchestrator.hasIntroduced {
		t.Fatalf("expected hasIntroduced to be set after the first reply")
	}

	driveTurn(t, orchestrator, speaking, "I have ten years of experience.")

	history = orchestrator.Conversation()
	if strings.Contains(history[3].Content, introductionLine) {
		t.Fatalf("expected no introduction on subsequent replies, got %q", history[3].Content)
	}
	if !orchestrator.hasIntroduced {
		t.Fatalf("expected hasIntroduced to stay set")
	}
}

func TestOrchestratorDuplicateRetryBudget(t *testing.T) {
	duplicate := "What is your experience with Go?"
	generator := &generatorStub{replies: []string{duplicate}}
	orchestrator, speaking := startTestOrchestrator(t, generator)
	orchestrator.asked.Record(duplicate)

	driveTurn(t, orchestrator, speaking, "Hello.")

	if calls := generator.callCount(); calls != 4 {
		t.Fatalf("expected 4 generation attempts (1 + 3 retries), got %d", calls)
	}

	history := orchestrator.Conversation()
	if len(history) != 2 || history[1].Content != duplicate {
		t.Fatalf("expected the duplicate reply to be accepted after exhausting retries, got %+v", history)
	}
	if orchestrator.asked.Len() != 1 {
		t.Fatalf("expected asked set unchanged by re-recording, got %d", orchestrator.asked.Len())
	}
}

func TestOrchestratorAppendsClosingStatement(t *testing.T) {
	generator := &generatorStub{replies: []string{"Anything else you would like to add?"}}
	orchestrator, speaking := startTestOrchestrator(t, generator)
	orchestrator.hasIntroduced = true
	for _, question := range []string{
		"How are you today?",
		"What is your experience with Go?",
		"Why this role?",
		"What are your strengths?",
	} {
		orchestrator.asked.Record(question)
	}

	driveTurn(t, orchestrator, speaking, "That is everything from my side.")

	history := orchestrator.Conversation()
	if !strings.HasSuffix(history[1].Content, closingStatement) {
		t.Fatalf("expected closing statement appended, got %q", history[1].Content)
	}

	// A reply that already mentions closing is left alone.
	generator.setReplies("We are closing the interview now. Goodbye?")
	driveTurn(t, orchestrator, speaking, "Thank you.")

	history = orchestrator.Conversation()
	if strings.HasSuffix(history[3].Content, closingStatement) {
		t.Fatalf("expected no closing statement when the reply mentions closing, got %q", history[3].Content)
	}
}

func TestOrchestratorDiscardsEventsWhileMuted(t *testing.T) {
	generator := &generatorStub{replies: []string{"What is your experience with Go?"}}
	orchestrator, _ := startTestOrchestrator(t, generator)

	orchestrator.muted.Store(true)
	if orchestrator.State() != StateMuted {
		t.Fatalf("expected muted state, got %v", orchestrator.State())
	}

	orchestrator.handleTranscriptEvent(speechtotext.Event{Transcript: "can you hear me", IsFinal: true, SpeechFinal: true})
	orchestrator.handleTranscriptEvent(speechtotext.Event{Transcript: "hello", IsFinal: false})

	if orchestrator.conversation.Len() != 0 {
		t.Fatalf("expected conversation memory unchanged while muted, got %d turns", orchestrator.conversation.Len())
	}
	if generator.callCount() != 0 {
		t.Fatalf("expected no generation while muted, got %d calls", generator.callCount())
	}
}

func TestOrchestratorGenerationFailureEndsTurnOnly(t *testing.T) {
	generator := &generatorStub{err: errors.New("service unavailable")}
	orchestrator, speaking := startTestOrchestrator(t, generator)

	turnErrors := []error{}
	orchestrator.orchestrateOptions.onTurnError = func(err error) {
		turnErrors = append(turnErrors, err)
	}

	orchestrator.handleTranscriptEvent(speechtotext.Event{Transcript: "Hello.", IsFinal: true, SpeechFinal: true})

	if len(turnErrors) != 1 {
		t.Fatalf("expected one turn error, got %d", len(turnErrors))
	}
	var generationErr *GenerationError
	if !errors.As(turnErrors[0], &generationErr) {
		t.Fatalf("expected a GenerationError, got %v", turnErrors[0])
	}
	if orchestrator.State() != StateIdle {
		t.Fatalf("expected session to stay idle after a failed turn, got %v", orchestrator.State())
	}
	if orchestrator.conversation.Len() != 1 {
		t.Fatalf("expected only the user turn in memory, got %d", orchestrator.conversation.Len())
	}

	// The session keeps listening: the next turn succeeds.
	generator.clearError()
	generator.setReplies("What is your experience with Go?")
	driveTurn(t, orchestrator, speaking, "Still here.")

	if orchestrator.conversation.Len() != 3 {
		t.Fatalf("expected the next turn to complete, got %d turns", orchestrator.conversation.Len())
	}
}

func TestOrchestratorMuteClearedAfterSynthesisFailure(t *testing.T) {
	generator := &generatorStub{replies: []string{"What is your experience with Go?"}}
	synthesizer := &synthesizerStub{err: errors.New("service unavailable")}
	playback := &playbackStub{}
	orchestrator, speaking := startTestOrchestrator(t, generator,
		WithSpeechSynthesizer(synthesizer), WithPlayback(playback))

	turnErrors := make(chan error, 1)
	orchestrator.orchestrateOptions.onTurnError = func(err error) {
		turnErrors <- err
	}

	orchestrator.handleTranscriptEvent(speechtotext.Event{Transcript: "Hello.", IsFinal: true, SpeechFinal: true})
	awaitSpeaking(t, speaking, false)

	select {
	case err := <-turnErrors:
		var synthesisErr *SynthesisError
		if !errors.As(err, &synthesisErr) {
			t.Fatalf("expected a SynthesisError, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for turn error")
	}

	if orchestrator.State() != StateIdle {
		t.Fatalf("expected mute cleared after synthesis failure, got %v", orchestrator.State())
	}
	if len(playback.playedAudio()) != 0 {
		t.Fatalf("expected no playback after synthesis failure")
	}
}

func TestOrchestratorContextWindowIsBounded(t *testing.T) {
	generator := &generatorStub{replies: []string{"Noted. Anything else?"}}
	orchestrator, speaking := startTestOrchestrator(t, generator)
	orchestrator.hasIntroduced = true

	for range 5 {
		driveTurn(t, orchestrator, speaking, "Some more details.")
	}

	history := generator.lastHistory()
	if len(history) != contextWindow {
		t.Fatalf("expected context window of %d messages, got %d", contextWindow, len(history))
	}
	if history[len(history)-1].Content != "Some more details." {
		t.Fatalf("expected window to end with the current utterance, got %+v", history)
	}
}

func TestOrchestratorClosedAcceptsNoEvents(t *testing.T) {
	generator := &generatorStub{replies: []string{"What is your experience with Go?"}}
	orchestrator, _ := startTestOrchestrator(t, generator)

	orchestrator.Close()
	if orchestrator.State() != StateClosed {
		t.Fatalf("expected closed state, got %v", orchestrator.State())
	}

	orchestrator.handleTranscriptEvent(speechtotext.Event{Transcript: "Hello.", IsFinal: true, SpeechFinal: true})
	if orchestrator.conversation.Len() != 0 {
		t.Fatalf("expected no turns after close, got %d", orchestrator.conversation.Len())
	}
}

func startTestOrchestrator(t *testing.T, generator ResponseGenerator, opts ...OrchestratorOption) (*Orchestrator, chan bool) {
	t.Helper()

	speaking := make(chan bool, 16)
	orchestrator := NewOrchestrator(append(opts, WithResponseGenerator(generator))...)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if err := orchestrator.Orchestrate(ctx,
		WithSpeakingStateChangedCallback(func(isSpeaking bool) { speaking <- isSpeaking }),
	); err != nil {
		t.Fatalf("expected orchestrate to succeed, got %v", err)
	}

	return orchestrator, speaking
}

func driveTurn(t *testing.T, orchestrator *Orchestrator, speaking chan bool, utterance string) {
	t.Helper()

	orchestrator.handleTranscriptEvent(speechtotext.Event{Transcript: utterance, IsFinal: true, SpeechFinal: true})
	awaitSpeaking(t, speaking, true)
	awaitSpeaking(t, speaking, false)
}

func awaitSpeaking(t *testing.T, speaking chan bool, want bool) {
	t.Helper()

	deadline := time.After(time.Second)
	for {
		select {
		case got := <-speaking:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for speaking state %v", want)
		}
	}
}

type generatorStub struct {
	mu      sync.Mutex
	replies []string
	history []llms.Message
	calls   int
	err     error
}

func (g *generatorStub) Generate(_ context.Context, history []llms.Message, _ []string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls++
	g.history = history
	if g.err != nil {
		return "", g.err
	}

	reply := g.replies[min(g.calls, len(g.replies))-1]
	return reply, nil
}

func (g *generatorStub) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *generatorStub) lastHistory() []llms.Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.history
}

func (g *generatorStub) setReplies(replies ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies = replies
	g.calls = 0
}

func (g *generatorStub) clearError() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = nil
}

type synthesizerStub struct {
	mu       sync.Mutex
	segments []string
	err      error
}

func (s *synthesizerStub) Synthesize(_ context.Context, text string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	s.segments = append(s.segments, text)
	return []byte(text + "|"), nil
}

func (s *synthesizerStub) synthesizedSegments() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.segments...)
}

type playbackStub struct {
	mu     sync.Mutex
	played [][]byte
	err    error
}

func (p *playbackStub) Play(_ context.Context, pcm []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.played = append(p.played, pcm)
	return nil
}

func (p *playbackStub) playedAudio() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]byte{}, p.played...)
}
