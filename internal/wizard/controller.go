package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lamim/prdforge/internal/api"
	"github.com/lamim/prdforge/internal/config"
	"github.com/lamim/prdforge/internal/metrics"
	"github.com/lamim/prdforge/internal/prompt"
)

// RequiredAnswers is the answer quota of each Q&A round
const RequiredAnswers = prompt.QuestionsPerRound

// Operation names used in logs, metrics and GenerationError
const (
	OpFirstQuestion    = "first_question"
	OpNextQuestion     = "next_question"
	OpBasicSummary     = "basic_summary"
	OpDetailedQuestion = "detailed_question"
	OpDesignEnrichment = "design_enrichment"
	OpIterationPlan    = "iteration_plan"
	OpIterationSummary = "iteration_summary"
	OpUserStories      = "user_stories"
	OpFinalPRD         = "final_prd"
	OpPRDSummary       = "prd_summary"
	OpModification     = "modification"
	OpCheckConnection  = "check_connection"
)

// Generator is the generative backend used in real AI mode
type Generator interface {
	CheckConnection(ctx context.Context, apiKey string) error
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
	GenerateStream(ctx context.Context, apiKey, prompt string, onProgress api.ProgressFunc) (string, error)
}

// EventKind classifies controller notifications
type EventKind string

const (
	EventState    EventKind = "state"
	EventProgress EventKind = "progress"
)

// Event is sent to the Observer after every committed change and progress update
type Event struct {
	Kind      EventKind `json:"kind"`
	Step      Step      `json:"step"`
	Progress  int       `json:"progress"`
	Busy      bool      `json:"busy"`
	Operation string    `json:"operation,omitempty"`
}

// Observer receives controller events. OnChange must not call back into the controller.
type Observer interface {
	OnChange(Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Event)

func (f ObserverFunc) OnChange(e Event) { f(e) }

// Options configures a Controller
type Options struct {
	Catalog   *prompt.Catalog
	Logger    *slog.Logger
	Metrics   *metrics.Collector
	Observer  Observer
	UseRealAI bool
	APIKey    string
	MockDelay time.Duration
	Now       func() time.Time
}

// Controller owns one wizard session. Actions are single-flight: while one
// runs, every other action returns ErrBusy without touching the state.
type Controller struct {
	mu     sync.Mutex
	state  State
	apiKey string

	gen       Generator
	catalog   *prompt.Catalog
	observer  Observer
	logger    *slog.Logger
	metrics   *metrics.Collector
	mockDelay time.Duration
	now       func() time.Time
}

// New creates a controller at step 0. gen may be nil for a mock-only session.
func New(gen Generator, opts Options) *Controller {
	if opts.Catalog == nil {
		opts.Catalog = prompt.DefaultCatalog()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Controller{
		state:     newState(opts.UseRealAI, opts.Now()),
		apiKey:    strings.TrimSpace(opts.APIKey),
		gen:       gen,
		catalog:   opts.Catalog,
		observer:  opts.Observer,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		mockDelay: opts.MockDelay,
		now:       opts.Now,
	}
}

// Snapshot returns a deep copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Busy reports whether an operation is running
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Busy
}

// run is one admitted operation: a copy of the state taken when busy was set
type run struct {
	op       string
	snap     State
	apiKey   string
	progress *Progress
	start    time.Time
	notice   string
}

func (r *run) real() bool {
	return r.snap.UseRealAI
}

// begin admits an operation. check runs under the lock and may reject it.
func (c *Controller) begin(op string, needsBackend bool, check func(*State) error) (*run, error) {
	c.mu.Lock()

	if c.state.Busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	if check != nil {
		if err := check(&c.state); err != nil {
			c.mu.Unlock()
			return nil, err
		}
	}
	if needsBackend && c.state.UseRealAI {
		if c.apiKey == "" {
			c.mu.Unlock()
			return nil, ErrMissingCredential
		}
		if c.gen == nil {
			c.mu.Unlock()
			return nil, invalid("no generative backend is available")
		}
	}

	c.state.Busy = true
	c.state.Pending = op
	r := &run{
		op:     op,
		snap:   c.state.clone(),
		apiKey: c.apiKey,
		start:  time.Now(),
	}
	event := c.eventLocked(EventState)
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.BusyStarted()
	}
	c.notify(event)
	c.logger.Debug("Operation started", "session", r.snap.SessionID, "operation", op, "step", r.snap.Step.String())
	return r, nil
}

// finish commits on success, then clears busy. On failure nothing but the
// progress display is touched, and that is restored.
func (c *Controller) finish(r *run, commit func(*State), err error) error {
	c.mu.Lock()
	if err == nil {
		if commit != nil {
			commit(&c.state)
		}
		c.state.Notice = r.notice
	} else {
		c.state.Progress = r.snap.Progress
	}
	c.state.Busy = false
	c.state.Pending = ""
	event := c.eventLocked(EventState)
	c.mu.Unlock()

	duration := time.Since(r.start)
	if c.metrics != nil {
		c.metrics.BusyFinished()
		c.metrics.RecordOperation(r.op, duration, err == nil)
	}
	c.notify(event)

	if err != nil {
		c.logger.Warn("Operation failed",
			"session", r.snap.SessionID,
			"operation", r.op,
			"error", err)
		return err
	}

	c.logger.Info("Operation completed",
		"session", r.snap.SessionID,
		"operation", r.op,
		"step", event.Step.String(),
		"duration_ms", duration.Milliseconds())
	return nil
}

// startProgress resets the progress display to 0 for a long-running chain
func (c *Controller) startProgress(r *run) {
	r.progress = newProgress(func(v int) {
		c.mu.Lock()
		c.state.Progress = v
		event := c.eventLocked(EventProgress)
		c.mu.Unlock()
		c.notify(event)
	})
}

func (c *Controller) eventLocked(kind EventKind) Event {
	return Event{
		Kind:      kind,
		Step:      c.state.Step,
		Progress:  c.state.Progress,
		Busy:      c.state.Busy,
		Operation: c.state.Pending,
	}
}

func (c *Controller) notify(e Event) {
	if c.observer != nil {
		c.observer.OnChange(e)
	}
}

// stream runs a streaming call and wraps failures with the operation name
func (c *Controller) stream(ctx context.Context, r *run, op, text string, onProgress api.ProgressFunc) (string, error) {
	out, err := c.gen.GenerateStream(ctx, r.apiKey, text, onProgress)
	if err != nil {
		return "", &GenerationError{Operation: op, Err: err}
	}
	return out, nil
}

// pause stands in for backend latency in mock mode
func (c *Controller) pause(ctx context.Context, op string) error {
	if c.mockDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.mockDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return &GenerationError{Operation: op, Err: ctx.Err()}
	case <-timer.C:
		return nil
	}
}

func renderError(op string, err error) error {
	return &GenerationError{Operation: op, Err: fmt.Errorf("prompt rendering failed: %w", err)}
}

func validateText(text string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", invalid("input must not be empty")
	}
	if err := config.ValidateUserText(trimmed, maxLen); err != nil {
		return "", invalid("%v", err)
	}
	return trimmed, nil
}

// SubmitProblem records the problem statement and opens the basic Q&A round
func (c *Controller) SubmitProblem(ctx context.Context, text string) error {
	problem, err := validateText(text, config.MaxProblemLength)
	if err != nil {
		return err
	}

	r, err := c.begin(OpFirstQuestion, true, func(s *State) error {
		if s.Step != StepProblem {
			return invalid("the problem can only be submitted at step %d", StepProblem)
		}
		return nil
	})
	if err != nil {
		return err
	}

	var question Message
	if r.real() {
		p, rerr := c.catalog.FirstQuestion(problem)
		if rerr != nil {
			return c.finish(r, nil, renderError(OpFirstQuestion, rerr))
		}
		out, gerr := c.stream(ctx, r, OpFirstQuestion, p, nil)
		if gerr != nil {
			return c.finish(r, nil, gerr)
		}
		question = questionMessage(strings.TrimSpace(out), "", 0)
	} else {
		if err := c.pause(ctx, OpFirstQuestion); err != nil {
			return c.finish(r, nil, err)
		}
		q, _ := prompt.MockBasicQuestion(0)
		question = questionMessage(q.Text, q.Hint, 0)
	}

	return c.finish(r, func(s *State) {
		s.Problem = problem
		s.BasicLog = []Message{infoMessage(prompt.BasicIntroMessage), question}
		s.Step = StepBasics
	}, nil)
}

// SubmitAnswer appends an answer to the current Q&A round and asks the next
// question, or announces that the quota is met.
func (c *Controller) SubmitAnswer(ctx context.Context, text string) error {
	answer, err := validateText(text, config.MaxAnswerLength)
	if err != nil {
		return err
	}

	r, err := c.begin(OpNextQuestion, true, func(s *State) error {
		if s.Step != StepBasics && s.Step != StepDesign {
			return invalid("answers are only accepted during the Q&A rounds")
		}
		if AnswerCount(s.currentLog()) >= RequiredAnswers {
			return invalid("all %d answers have been collected; advance to the next step", RequiredAnswers)
		}
		return nil
	})
	if err != nil {
		return err
	}

	design := r.snap.Step == StepDesign
	log := append(r.snap.currentLog(), userMessage(answer))
	count := AnswerCount(log)

	if count >= RequiredAnswers {
		quota := prompt.BasicQuotaMessage
		if design {
			quota = prompt.DesignQuotaMessage
		}
		log = append(log, infoMessage(quota))
	} else {
		next, ok, qerr := c.nextQuestion(ctx, r, design, log, count)
		if qerr != nil {
			return c.finish(r, nil, qerr)
		}
		if ok {
			log = append(log, next)
		}
	}

	return c.finish(r, func(s *State) {
		if design {
			s.DesignLog = log
		} else {
			s.BasicLog = log
		}
	}, nil)
}

func (c *Controller) nextQuestion(ctx context.Context, r *run, design bool, log []Message, answered int) (Message, bool, error) {
	if !r.real() {
		if err := c.pause(ctx, OpNextQuestion); err != nil {
			return Message{}, false, err
		}
		lookup := prompt.MockBasicQuestion
		if design {
			lookup = prompt.MockDetailedQuestion
		}
		q, ok := lookup(answered)
		if !ok {
			return Message{}, false, nil
		}
		return questionMessage(q.Text, q.Hint, answered), true, nil
	}

	var (
		p   string
		err error
	)
	if design {
		basicQA := FormatPairs(Pairs(r.snap.BasicLog))
		p, err = c.catalog.NextDetailedQuestion(r.snap.Problem, basicQA, Transcript(log), answered)
	} else {
		p, err = c.catalog.NextQuestion(r.snap.Problem, Transcript(log), answered)
	}
	if err != nil {
		return Message{}, false, renderError(OpNextQuestion, err)
	}

	out, err := c.stream(ctx, r, OpNextQuestion, p, nil)
	if err != nil {
		return Message{}, false, err
	}
	return questionMessage(strings.TrimSpace(out), "", answered), true, nil
}

// Advance runs the generation chain that moves the wizard to the next step
func (c *Controller) Advance(ctx context.Context) error {
	c.mu.Lock()
	from := c.state.Step
	c.mu.Unlock()

	r, err := c.begin(advanceOperation(from), true, func(s *State) error {
		if s.Step != from {
			return invalid("the session moved to step %s; try again", s.Step)
		}
		switch s.Step {
		case StepProblem:
			return invalid("submit the problem statement to continue")
		case StepBasics, StepDesign:
			if n := AnswerCount(s.currentLog()); n < RequiredAnswers {
				return invalid("%d of %d answers collected", n, RequiredAnswers)
			}
		case StepIterations:
			if s.IterationPlan == "" {
				return invalid("no iteration plan to build on")
			}
		case StepStories:
			if s.UserStories == "" {
				return invalid("no user stories to build on")
			}
		default:
			return invalid("the PRD is the last step; restart to begin again")
		}
		return nil
	})
	if err != nil {
		return err
	}

	switch r.snap.Step {
	case StepBasics:
		return c.advanceToDesign(ctx, r)
	case StepDesign:
		return c.advanceToIterations(ctx, r)
	case StepIterations:
		return c.advanceToStories(ctx, r)
	default:
		return c.advanceToPRD(ctx, r)
	}
}

func advanceOperation(from Step) string {
	switch from {
	case StepBasics:
		return OpBasicSummary
	case StepDesign:
		return OpIterationPlan
	case StepIterations:
		return OpUserStories
	default:
		return OpFinalPRD
	}
}

func (c *Controller) advanceToDesign(ctx context.Context, r *run) error {
	var (
		summary  string
		question Message
	)

	if r.real() {
		basicQA := FormatPairs(Pairs(r.snap.BasicLog))

		p, err := c.catalog.BasicSummary(basicQA)
		if err != nil {
			return c.finish(r, nil, renderError(OpBasicSummary, err))
		}
		if summary, err = c.stream(ctx, r, OpBasicSummary, p, nil); err != nil {
			return c.finish(r, nil, err)
		}

		p, err = c.catalog.FirstDetailedQuestion(r.snap.Problem, basicQA)
		if err != nil {
			return c.finish(r, nil, renderError(OpDetailedQuestion, err))
		}
		out, err := c.stream(ctx, r, OpDetailedQuestion, p, nil)
		if err != nil {
			return c.finish(r, nil, err)
		}
		question = questionMessage(strings.TrimSpace(out), "", 0)
	} else {
		if err := c.pause(ctx, OpBasicSummary); err != nil {
			return c.finish(r, nil, err)
		}
		summary = prompt.MockBasicSummary
		q, _ := prompt.MockDetailedQuestion(0)
		question = questionMessage(q.Text, q.Hint, 0)
	}

	return c.finish(r, func(s *State) {
		s.BasicSummary = summary
		s.DesignLog = []Message{infoMessage(prompt.DesignIntroMessage), question}
		s.Step = StepDesign
	}, nil)
}

func (c *Controller) artifacts(snap State) prompt.Artifacts {
	return prompt.Artifacts{
		Problem:         snap.Problem,
		BasicAnswers:    numberedAnswers(Answers(snap.BasicLog), "Question"),
		DetailedAnswers: numberedAnswers(Answers(snap.DesignLog), "Detailed question"),
		EnrichedDesign:  snap.EnrichedDesign,
		Plan:            snap.IterationPlan,
		Stories:         snap.UserStories,
	}
}

// enrichDesign refines the design answers into a design system. Failure
// yields an empty result and leaves a notice on the run.
func (c *Controller) enrichDesign(ctx context.Context, r *run) string {
	in := prompt.NewDesignInput(Answers(r.snap.DesignLog))
	p, err := c.catalog.DesignEnrichment(in)
	if err != nil {
		c.logger.Warn("Design enrichment skipped", "session", r.snap.SessionID, "operation", OpDesignEnrichment, "error", err)
		r.notice = prompt.EnrichmentFailed
		return ""
	}

	out, err := c.gen.GenerateStream(ctx, r.apiKey, p, nil)
	if err != nil {
		c.logger.Warn("Design enrichment failed", "session", r.snap.SessionID, "operation", OpDesignEnrichment, "error", err)
		r.notice = prompt.EnrichmentFailed
		return ""
	}
	c.logger.Debug("Design enrichment completed", "session", r.snap.SessionID, "chars", len(out))
	return out
}

func (c *Controller) advanceToIterations(ctx context.Context, r *run) error {
	c.startProgress(r)
	pr := r.progress

	var enriched, plan, summary string

	pr.Set(5)
	if r.real() {
		enriched = c.enrichDesign(ctx, r)
	}
	pr.Set(10)

	if r.real() {
		pr.Set(15)
		a := c.artifacts(r.snap)
		a.EnrichedDesign = enriched
		pr.Set(20)

		p, err := c.catalog.IterationPlan(a)
		if err != nil {
			return c.finish(r, nil, renderError(OpIterationPlan, err))
		}
		if plan, err = c.stream(ctx, r, OpIterationPlan, p, pr.Span(20, 60)); err != nil {
			return c.finish(r, nil, err)
		}
		pr.Set(65)

		pr.Set(70)
		p, err = c.catalog.IterationSummary(plan)
		if err != nil {
			return c.finish(r, nil, renderError(OpIterationSummary, err))
		}
		if summary, err = c.stream(ctx, r, OpIterationSummary, p, pr.Span(70, 90)); err != nil {
			return c.finish(r, nil, err)
		}
		pr.Set(95)
	} else {
		if err := c.pause(ctx, OpIterationPlan); err != nil {
			return c.finish(r, nil, err)
		}
		plan = prompt.MockIterationPlan
		summary = prompt.MockIterationSummary
	}
	pr.Set(100)

	return c.finish(r, func(s *State) {
		s.Modifications = []Exchange{}
		s.EnrichedDesign = enriched
		s.IterationPlan = plan
		s.IterationSummary = summary
		s.Step = StepIterations
	}, nil)
}

func (c *Controller) advanceToStories(ctx context.Context, r *run) error {
	c.startProgress(r)
	pr := r.progress

	var stories string

	pr.Set(10)
	if r.real() {
		p, err := c.catalog.UserStories(c.artifacts(r.snap))
		if err != nil {
			return c.finish(r, nil, renderError(OpUserStories, err))
		}
		pr.Set(20)
		if stories, err = c.stream(ctx, r, OpUserStories, p, pr.Span(20, 90)); err != nil {
			return c.finish(r, nil, err)
		}
	} else {
		pr.Set(20)
		if err := c.pause(ctx, OpUserStories); err != nil {
			return c.finish(r, nil, err)
		}
		stories = prompt.MockUserStories
	}
	pr.Set(100)

	return c.finish(r, func(s *State) {
		s.Modifications = []Exchange{}
		s.UserStories = stories
		s.Step = StepStories
	}, nil)
}

func (c *Controller) advanceToPRD(ctx context.Context, r *run) error {
	c.startProgress(r)
	pr := r.progress

	var prd, summary string

	pr.Set(5)
	if r.real() {
		p, err := c.catalog.FinalPRD(c.artifacts(r.snap))
		if err != nil {
			return c.finish(r, nil, renderError(OpFinalPRD, err))
		}
		pr.Set(15)
		raw, err := c.stream(ctx, r, OpFinalPRD, p, pr.Span(15, 60))
		if err != nil {
			return c.finish(r, nil, err)
		}
		pr.Set(65)
		prd = fenceMarkdown(raw)
		pr.Set(70)

		p, err = c.catalog.PRDSummary(raw)
		if err != nil {
			return c.finish(r, nil, renderError(OpPRDSummary, err))
		}
		if summary, err = c.stream(ctx, r, OpPRDSummary, p, pr.Span(70, 90)); err != nil {
			return c.finish(r, nil, err)
		}
		pr.Set(95)
	} else {
		pr.Set(15)
		if err := c.pause(ctx, OpFinalPRD); err != nil {
			return c.finish(r, nil, err)
		}
		prd = prompt.MockPRD(r.snap.Problem, c.now())
		summary = prompt.MockPRDSummary
	}
	pr.Set(100)

	return c.finish(r, func(s *State) {
		s.Modifications = []Exchange{}
		s.PRD = prd
		s.PRDSummary = summary
		s.Step = StepPRD
	}, nil)
}

const markdownFence = "```markdown\n"

// fenceMarkdown wraps a PRD in a markdown code fence unless it already is one
func fenceMarkdown(s string) string {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, markdownFence) && strings.HasSuffix(trimmed, "```") {
		return trimmed
	}
	return markdownFence + s + "\n```"
}

// GoBack returns to the previous step, discarding everything the current step produced
func (c *Controller) GoBack() error {
	c.mu.Lock()
	if c.state.Busy {
		c.mu.Unlock()
		return ErrBusy
	}
	s := &c.state
	switch s.Step {
	case StepProblem:
		c.mu.Unlock()
		return invalid("already at the first step")
	case StepBasics:
		s.BasicLog = []Message{}
	case StepDesign:
		s.DesignLog = []Message{}
		s.BasicSummary = ""
	case StepIterations:
		s.IterationPlan = ""
		s.IterationSummary = ""
		s.EnrichedDesign = ""
		s.Modifications = []Exchange{}
	case StepStories:
		s.UserStories = ""
		s.Modifications = []Exchange{}
	case StepPRD:
		s.PRD = ""
		s.PRDSummary = ""
		s.Modifications = []Exchange{}
	}
	s.Progress = 0
	s.Notice = ""
	s.Step--
	id := s.SessionID
	event := c.eventLocked(EventState)
	c.mu.Unlock()

	c.notify(event)
	c.logger.Info("Stepped back", "session", id, "step", event.Step.String())
	return nil
}

// RequestModification asks the backend to rewrite the result of the current step
func (c *Controller) RequestModification(ctx context.Context, text string) error {
	request, err := validateText(text, config.MaxAnswerLength)
	if err != nil {
		return err
	}

	r, err := c.begin(OpModification, true, func(s *State) error {
		if s.Step < StepIterations {
			return invalid("modifications are only available for the plan, stories and PRD")
		}
		if s.currentResult() == "" {
			return invalid("nothing to modify yet")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if !r.real() {
		if err := c.pause(ctx, OpModification); err != nil {
			return c.finish(r, nil, err)
		}
		return c.finish(r, func(s *State) {
			s.Modifications = append(s.Modifications, Exchange{Request: request, Acknowledgement: prompt.MockModificationLimit})
		}, nil)
	}

	kind := prompt.KindModifyPlan
	switch r.snap.Step {
	case StepStories:
		kind = prompt.KindModifyStories
	case StepPRD:
		kind = prompt.KindModifyPRD
	}

	p, err := c.catalog.Modification(kind, r.snap.currentResult(), request)
	if err != nil {
		return c.finish(r, nil, renderError(OpModification, err))
	}
	out, err := c.gen.Generate(ctx, r.apiKey, p)
	if err != nil {
		return c.finish(r, nil, &GenerationError{Operation: OpModification, Err: err})
	}

	return c.finish(r, func(s *State) {
		switch s.Step {
		case StepIterations:
			s.IterationPlan = out
		case StepStories:
			s.UserStories = out
		case StepPRD:
			s.PRD = fenceMarkdown(out)
		}
		s.Modifications = append(s.Modifications, Exchange{Request: request, Acknowledgement: prompt.ModificationDone})
	}, nil)
}

// Restart discards the finished session and starts a new one. The backend
// configuration is kept.
func (c *Controller) Restart() error {
	c.mu.Lock()
	if c.state.Busy {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.state.Step != StepPRD {
		c.mu.Unlock()
		return invalid("restart is only available once the PRD is generated")
	}
	previous := c.state.SessionID
	c.state = newState(c.state.UseRealAI, c.now())
	id := c.state.SessionID
	event := c.eventLocked(EventState)
	c.mu.Unlock()

	c.notify(event)
	c.logger.Info("Session restarted", "previous", previous, "session", id)
	return nil
}

// ConfigureBackend verifies the key against the backend and switches to real AI mode
func (c *Controller) ConfigureBackend(ctx context.Context, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return invalid("API key must not be empty")
	}

	r, err := c.begin(OpCheckConnection, false, func(s *State) error {
		if c.gen == nil {
			return invalid("no generative backend is available")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := c.gen.CheckConnection(ctx, apiKey); err != nil {
		return c.finish(r, nil, &GenerationError{Operation: OpCheckConnection, Err: err})
	}

	return c.finish(r, func(s *State) {
		c.apiKey = apiKey
		s.UseRealAI = true
	}, nil)
}

// DisableBackend switches the session to mock mode
func (c *Controller) DisableBackend() error {
	c.mu.Lock()
	if c.state.Busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state.UseRealAI = false
	event := c.eventLocked(EventState)
	c.mu.Unlock()

	c.notify(event)
	return nil
}
