// Package console drives a wizard session from a line-oriented terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/lamim/prdforge/internal/util"
	"github.com/lamim/prdforge/internal/wizard"
	"github.com/lamim/prdforge/internal/writer"
	"github.com/schollz/progressbar/v3"
)

const helpText = `Commands:
  /next     generate the next step once the current one is complete
  /back     return to the previous step (its results are discarded)
  /restart  start over once the PRD is done
  /save     write the session artifacts to the output directory
  /help     show this help
  /quit     leave`

const maxTitleWidth = 80

var stepTitles = map[wizard.Step]string{
	wizard.StepProblem:    "Step 0 · Problem",
	wizard.StepBasics:     "Step 1 · Design thinking questions",
	wizard.StepDesign:     "Step 2 · Screen and design details",
	wizard.StepIterations: "Step 3 · Iteration plan",
	wizard.StepStories:    "Step 4 · User stories",
	wizard.StepPRD:        "Step 5 · Product requirements document",
}

// Options configures a Console
type Options struct {
	In       io.Reader
	Out      io.Writer
	Exporter *writer.Exporter
	Logger   *slog.Logger
}

// Console renders wizard state and turns typed lines into controller actions.
// It is also the controller's Observer and draws progress while generating.
type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	exporter *writer.Exporter
	logger   *slog.Logger

	barMu sync.Mutex
	bar   *progressbar.ProgressBar

	shownStep   wizard.Step
	shownLog    int
	shownMods   int
	shownNotice string
	fresh       bool
}

// New creates a console
func New(opts Options) *Console {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	scanner := bufio.NewScanner(opts.In)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	return &Console{
		in:       scanner,
		out:      opts.Out,
		exporter: opts.Exporter,
		logger:   opts.Logger.With("component", "console"),
		fresh:    true,
	}
}

// OnChange draws a progress bar for long-running generations
func (c *Console) OnChange(e wizard.Event) {
	c.barMu.Lock()
	defer c.barMu.Unlock()

	switch {
	case e.Kind == wizard.EventProgress:
		if c.bar == nil {
			c.bar = progressbar.NewOptions(100,
				progressbar.OptionSetWriter(c.out),
				progressbar.OptionSetDescription(describe(e.Operation)),
				progressbar.OptionSetWidth(30),
				progressbar.OptionSetPredictTime(false),
			)
		}
		_ = c.bar.Set(e.Progress)
	case e.Kind == wizard.EventState && !e.Busy && c.bar != nil:
		_ = c.bar.Finish()
		fmt.Fprintln(c.out)
		c.bar = nil
	}
}

func describe(op string) string {
	switch op {
	case wizard.OpIterationPlan:
		return "Planning iterations"
	case wizard.OpUserStories:
		return "Writing user stories"
	case wizard.OpFinalPRD:
		return "Writing the PRD"
	default:
		return "Generating"
	}
}

// Run reads commands until /quit, end of input or ctx cancellation
func (c *Console) Run(ctx context.Context, ctrl *wizard.Controller) error {
	fmt.Fprintln(c.out, styleTitle.Render("prdforge · turn a problem into a PRD"))
	fmt.Fprintln(c.out, styleMuted.Render("Type /help for commands."))
	c.render(ctrl.Snapshot())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, styleBold.Render("> "))
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			fmt.Fprintln(c.out)
			return nil
		}

		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			return nil
		}

		if err := c.handle(ctx, ctrl, line); err != nil {
			c.notice(err)
			continue
		}
		c.render(ctrl.Snapshot())
	}
}

func (c *Console) handle(ctx context.Context, ctrl *wizard.Controller, line string) error {
	switch line {
	case "/help":
		fmt.Fprintln(c.out, styleMuted.Render(helpText))
		return nil
	case "/next":
		return ctrl.Advance(ctx)
	case "/back":
		return ctrl.GoBack()
	case "/restart":
		return ctrl.Restart()
	case "/save":
		return c.save(ctrl.Snapshot())
	}
	if strings.HasPrefix(line, "/") {
		return fmt.Errorf("unknown command %s (try /help)", line)
	}

	switch ctrl.Snapshot().Step {
	case wizard.StepProblem:
		return ctrl.SubmitProblem(ctx, line)
	case wizard.StepBasics, wizard.StepDesign:
		return ctrl.SubmitAnswer(ctx, line)
	default:
		return ctrl.RequestModification(ctx, line)
	}
}

func (c *Console) save(st wizard.State) error {
	if c.exporter == nil {
		return fmt.Errorf("saving is not configured")
	}
	dir, files, err := c.exporter.Export(st)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, styleSuccess.Render(fmt.Sprintf("Saved %d file(s) to %s", len(files), dir)))
	return nil
}

func (c *Console) notice(err error) {
	c.logger.Debug("Action rejected", "error", err)
	fmt.Fprintln(c.out, styleError.Render("! "+err.Error()))
}

// render prints whatever changed since the last render
func (c *Console) render(st wizard.State) {
	if c.fresh || st.Step != c.shownStep {
		c.fresh = false
		c.shownStep = st.Step
		c.shownLog = 0
		c.shownMods = -1
		fmt.Fprintln(c.out, styleHeader.Render(stepTitles[st.Step]))
	}
	if st.Notice != c.shownNotice {
		c.shownNotice = st.Notice
		if st.Notice != "" {
			fmt.Fprintln(c.out, styleError.Render("! "+st.Notice))
		}
	}

	switch st.Step {
	case wizard.StepProblem:
		fmt.Fprintln(c.out, "Describe the problem you want to solve.")
	case wizard.StepBasics:
		c.renderLog(st.BasicLog)
	case wizard.StepDesign:
		c.renderLog(st.DesignLog)
	default:
		c.renderResult(st)
	}
}

func (c *Console) renderLog(log []wizard.Message) {
	for _, m := range log[min(c.shownLog, len(log)):] {
		if m.Role == wizard.RoleUser {
			continue
		}
		if m.IsQuestion() {
			fmt.Fprintf(c.out, "%s %s\n", styleQuestion.Render(fmt.Sprintf("Q%d.", *m.QuestionIndex+1)), m.Content)
			if m.Hint != "" {
				fmt.Fprintln(c.out, styleMuted.Render(m.Hint))
			}
			continue
		}
		fmt.Fprintln(c.out, styleMuted.Render(m.Content))
	}
	c.shownLog = len(log)

	if n := wizard.AnswerCount(log); n >= wizard.RequiredAnswers {
		fmt.Fprintln(c.out, styleSuccess.Render("All answers collected. Type /next to continue."))
	}
}

func (c *Console) renderResult(st wizard.State) {
	if len(st.Modifications) == c.shownMods {
		return
	}
	if n := len(st.Modifications); n > 0 && c.shownMods >= 0 {
		fmt.Fprintln(c.out, styleSuccess.Render(st.Modifications[n-1].Acknowledgement))
	}
	c.shownMods = len(st.Modifications)

	switch st.Step {
	case wizard.StepIterations:
		for _, it := range wizard.ParseIterationSummary(st.IterationSummary) {
			if it.Title == "" {
				fmt.Fprintln(c.out, it.Raw)
				continue
			}
			fmt.Fprintf(c.out, "%s %s\n", styleBold.Render(fmt.Sprintf("Iteration %d: %s", it.Number, it.Title)), it.Body)
		}
		fmt.Fprintln(c.out, styleMuted.Render("Type a change request, or /next to write user stories."))
	case wizard.StepStories:
		for i, s := range wizard.SplitUserStories(st.UserStories) {
			fmt.Fprintf(c.out, "%s %s\n", styleBold.Render(fmt.Sprintf("%d.", i+1)), util.TruncateString(s.Title, maxTitleWidth))
		}
		fmt.Fprintln(c.out, styleMuted.Render("Type a change request, or /next to write the PRD."))
	case wizard.StepPRD:
		for _, s := range wizard.ParseSectionSummary(st.PRDSummary) {
			if s.Title != "" {
				fmt.Fprintln(c.out, styleBold.Render(s.Title))
			}
			fmt.Fprintln(c.out, s.Body)
		}
		fmt.Fprintln(c.out, styleMuted.Render("Type a change request, /save to export, or /restart to begin again."))
	}
}
