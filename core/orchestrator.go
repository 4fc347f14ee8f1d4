package interview

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hirevox/screener/core/llms"
	"github.com/hirevox/screener/core/speechtotext"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// contextWindow is how many trailing turns of conversation memory are
	// sent to the model as context.
	contextWindow = 6
	// maxDuplicateRetries bounds the regeneration attempts when a reply
	// repeats an already asked question. The last reply is accepted
	// regardless once the budget is spent.
	maxDuplicateRetries = 3
	// closingQuestionThreshold is how many distinct questions end the
	// screening.
	closingQuestionThreshold = 5
)

const (
	introductionLine = "Hello, this is Charles from XYZ Company. How are you today? " +
		"I'll be conducting your initial screening interview. Let's begin.\n"
	closingStatement = "Thank you for your time. We'll review your responses and get back to you soon."
)

// State is the orchestrator's position in the turn-taking cycle.
type State string

const (
	// StateIdle means the orchestrator is listening for transcript events.
	StateIdle State = "idle"
	// StateMuted means the orchestrator is playing its own speech and
	// discards transcript events unread.
	StateMuted State = "muted"
	// StateClosed means the session has ended. Terminal.
	StateClosed State = "closed"
)

// Orchestrator drives one screening-interview session: it reacts to
// finalized transcript events, generates an interviewer reply while avoiding
// repeated questions, and speaks the reply with the microphone muted.
type Orchestrator struct {
	conversation *Memory
	asked        *AskedQuestions

	speechToText speechToText
	generator    responseGenerator
	synthesizer  speechSynthesizer
	playback     playbackController
	audioInput   audioInput

	sttConfig speechtotext.Config

	// muted is the sole piece of state shared between the transcript
	// delivery path and the playback completion path.
	muted  atomic.Bool
	closed atomic.Bool

	hasIntroduced bool
	fragments     []string

	orchestrateOptions OrchestrateOptions
	baseContext        context.Context
	closeOnce          sync.Once
	playbackWG         sync.WaitGroup
}

func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		conversation: NewMemory(),
		asked:        NewAskedQuestions(),
		sttConfig:    speechtotext.DefaultConfig(),
		baseContext:  context.Background(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Orchestrate connects the transcription stream and starts feeding it
// microphone audio. It returns once the session is live; transcript events
// are handled until ctx is cancelled or Close is called.
//
// Contract: call Orchestrate at most once per orchestrator instance.
func (o *Orchestrator) Orchestrate(ctx context.Context, opts ...OrchestrateOption) error {
	if o.closed.Load() {
		return fmt.Errorf("orchestrator already closed")
	}

	o.orchestrateOptions = OrchestrateOptions{}
	for _, opt := range opts {
		opt(&o.orchestrateOptions)
	}

	o.baseContext = ctx

	if err := o.speechToText.start(
		ctx,
		o.sttConfig,
		o.audioInput.EncodingInfo(),
		o.handleTranscriptEvent,
	); err != nil {
		return &ConnectionError{Err: err}
	}

	if err := o.audioInput.start(ctx, func(audio []byte) {
		if err := o.speechToText.SendAudio(audio); err != nil {
			logger.Warn("failed to forward captured audio", "error", err)
		}
	}); err != nil {
		return &ConnectionError{Err: err}
	}

	go func() {
		<-ctx.Done()
		o.Close()
	}()

	return nil
}

// State derives the current position in the turn-taking cycle.
func (o *Orchestrator) State() State {
	switch {
	case o.closed.Load():
		return StateClosed
	case o.muted.Load():
		return StateMuted
	default:
		return StateIdle
	}
}

// Conversation returns a copy of the conversation log so far.
func (o *Orchestrator) Conversation() []Turn {
	return o.conversation.History()
}

// AskedQuestionCount reports how many distinct questions have been asked.
func (o *Orchestrator) AskedQuestionCount() int {
	return o.asked.Len()
}

// Close ends the session cooperatively: no further transcript events are
// accepted, in-flight playback is allowed to finish, and the external
// clients are shut down.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.closed.Store(true)

		if err := o.speechToText.Close(o.baseContext); err != nil {
			recordedErr := fmt.Errorf("failed to close speech-to-text client: %w", err)
			span := trace.SpanFromContext(o.baseContext)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
		}

		o.audioInput.Close()

		o.playbackWG.Wait()
	})
}

// handleTranscriptEvent is the single entry point for transcript events.
// Events are delivered in arrival order on the transcription stream's
// delivery context; the blocking turn work below intentionally serializes
// further delivery.
func (o *Orchestrator) handleTranscriptEvent(event speechtotext.Event) {
	if o.closed.Load() {
		return
	}
	if o.muted.Load() {
		// Mute window: our own speech is playing, discard unread.
		return
	}

	if event.Transcript == "" && !event.SpeechFinal {
		return
	}

	if !event.IsFinal {
		if o.orchestrateOptions.onInterimTranscription != nil {
			o.orchestrateOptions.onInterimTranscription(event.Transcript)
		}
		return
	}

	if event.Transcript != "" {
		o.fragments = append(o.fragments, event.Transcript)
	}
	if !event.SpeechFinal {
		return
	}

	utterance := strings.TrimSpace(strings.Join(o.fragments, " "))
	o.fragments = nil
	if utterance == "" {
		return
	}

	if o.orchestrateOptions.onUtterance != nil {
		o.orchestrateOptions.onUtterance(utterance)
	}

	o.respond(o.baseContext, utterance)
}

// respond runs one full turn: append the utterance, generate a reply within
// the duplicate-question budget, track its questions, and speak it under
// mute. Adapter failures end the turn but never the session.
func (o *Orchestrator) respond(ctx context.Context, utterance string) {
	ctx, span := tracer.Start(ctx, "respond to utterance")
	defer span.End()

	o.conversation.Append(llms.RoleUser, utterance)

	reply, err := o.generator.generate(ctx, o.conversation.Window(contextWindow), o.asked.Questions())
	if err != nil {
		o.failTurn(span, err)
		return
	}

	if !o.hasIntroduced {
		reply = introductionLine + reply
		o.hasIntroduced = true
	}

	for retries := 0; o.asked.IsDuplicate(reply) && retries < maxDuplicateRetries; retries++ {
		if reply, err = o.generator.generate(ctx, o.conversation.Window(contextWindow), o.asked.Questions()); err != nil {
			o.failTurn(span, err)
			return
		}
	}

	o.asked.Record(reply)

	if o.asked.Len() >= closingQuestionThreshold &&
		!strings.Contains(strings.ToLower(reply), "closing") {
		reply += "\n" + closingStatement
	}

	o.conversation.Append(llms.RoleAssistant, reply)

	if o.orchestrateOptions.onReply != nil {
		o.orchestrateOptions.onReply(reply)
	}

	o.setMuted(true)
	o.playbackWG.Add(1)
	go func() {
		defer o.playbackWG.Done()
		// The mute window must end on every exit path.
		defer o.setMuted(false)

		if err := o.speak(o.baseContext, reply); err != nil {
			span := trace.SpanFromContext(o.baseContext)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if o.orchestrateOptions.onTurnError != nil {
				o.orchestrateOptions.onTurnError(err)
			}
		}
	}()
}

func (o *Orchestrator) failTurn(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	if o.orchestrateOptions.onTurnError != nil {
		o.orchestrateOptions.onTurnError(err)
	}
}

func (o *Orchestrator) setMuted(muted bool) {
	o.muted.Store(muted)
	if o.orchestrateOptions.onSpeakingStateChanged != nil {
		o.orchestrateOptions.onSpeakingStateChanged(muted)
	}
}
