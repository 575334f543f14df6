package prompt

import (
	"fmt"

	"github.com/lamim/prdforge/internal/config"
	"github.com/lamim/prdforge/internal/util"
)

// QuestionsPerRound is the number of answers each Q&A round collects
const QuestionsPerRound = 6

// Kind identifies one prompt template
type Kind string

const (
	KindFirstQuestion         Kind = "first_question"
	KindNextQuestion          Kind = "next_question"
	KindBasicSummary          Kind = "basic_summary"
	KindFirstDetailedQuestion Kind = "first_detailed_question"
	KindNextDetailedQuestion  Kind = "next_detailed_question"
	KindDesignEnrichment      Kind = "design_enrichment"
	KindIterationPlan         Kind = "iteration_plan"
	KindIterationSummary      Kind = "iteration_summary"
	KindUserStories           Kind = "user_stories"
	KindFinalPRD              Kind = "final_prd"
	KindPRDSummary            Kind = "prd_summary"
	KindModifyPlan            Kind = "modify_plan"
	KindModifyStories         Kind = "modify_stories"
	KindModifyPRD             Kind = "modify_prd"
)

// Artifacts carries everything collected so far into the generation prompts
type Artifacts struct {
	Problem         string
	BasicAnswers    string
	DetailedAnswers string
	EnrichedDesign  string
	Plan            string
	Stories         string
}

// Catalog renders prompts from a fixed set of templates
type Catalog struct {
	templates map[Kind]string
}

// NewCatalog builds a catalog from the configured templates
func NewCatalog(t config.PromptTemplates) *Catalog {
	return &Catalog{
		templates: map[Kind]string{
			KindFirstQuestion:         t.FirstQuestion,
			KindNextQuestion:          t.NextQuestion,
			KindBasicSummary:          t.BasicSummary,
			KindFirstDetailedQuestion: t.FirstDetailedQuestion,
			KindNextDetailedQuestion:  t.NextDetailedQuestion,
			KindDesignEnrichment:      t.DesignEnrichment,
			KindIterationPlan:         t.IterationPlan,
			KindIterationSummary:      t.IterationSummary,
			KindUserStories:           t.UserStories,
			KindFinalPRD:              t.FinalPRD,
			KindPRDSummary:            t.PRDSummary,
			KindModifyPlan:            t.ModifyPlan,
			KindModifyStories:         t.ModifyStories,
			KindModifyPRD:             t.ModifyPRD,
		},
	}
}

// DefaultCatalog returns a catalog holding the built-in templates
func DefaultCatalog() *Catalog {
	return NewCatalog(config.Default().PromptTemplates)
}

// Render renders the template of the given kind
func (c *Catalog) Render(kind Kind, data map[string]interface{}) (string, error) {
	tmpl, ok := c.templates[kind]
	if !ok || tmpl == "" {
		return "", fmt.Errorf("no template configured for %s", kind)
	}
	out, err := util.RenderTemplate(tmpl, data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", kind, err)
	}
	return out, nil
}

// FirstQuestion renders the opening question of the basic round
func (c *Catalog) FirstQuestion(problem string) (string, error) {
	return c.Render(KindFirstQuestion, map[string]interface{}{
		"Problem": problem,
		"Total":   QuestionsPerRound,
	})
}

// NextQuestion renders the prompt for the basic question after `answered` answers
func (c *Catalog) NextQuestion(problem, transcript string, answered int) (string, error) {
	position := answered + 1
	return c.Render(KindNextQuestion, map[string]interface{}{
		"Problem":    problem,
		"Transcript": transcript,
		"Answered":   answered,
		"Position":   position,
		"Total":      QuestionsPerRound,
		"Guide":      BasicGuide(position),
	})
}

// BasicSummary renders the summary prompt over the paired basic Q&A
func (c *Catalog) BasicSummary(qaList string) (string, error) {
	return c.Render(KindBasicSummary, map[string]interface{}{"QAList": qaList})
}

// FirstDetailedQuestion renders the opening question of the design round
func (c *Catalog) FirstDetailedQuestion(problem, basicQA string) (string, error) {
	return c.Render(KindFirstDetailedQuestion, map[string]interface{}{
		"Problem": problem,
		"BasicQA": basicQA,
	})
}

// NextDetailedQuestion renders the prompt for the design question after `answered` answers
func (c *Catalog) NextDetailedQuestion(problem, basicQA, transcript string, answered int) (string, error) {
	position := answered + 1
	return c.Render(KindNextDetailedQuestion, map[string]interface{}{
		"Problem":    problem,
		"BasicQA":    basicQA,
		"Transcript": transcript,
		"Answered":   answered,
		"Position":   position,
		"Total":      QuestionsPerRound,
		"Guide":      DetailedGuide(position),
	})
}

// DesignEnrichment renders the design system refinement prompt
func (c *Catalog) DesignEnrichment(in DesignInput) (string, error) {
	return c.Render(KindDesignEnrichment, map[string]interface{}{
		"ReferenceApp":        in.ReferenceApp,
		"MainColor":           in.MainColor,
		"Typography":          in.Typography,
		"MainScreens":         in.MainScreens,
		"Navigation":          in.Navigation,
		"Interactions":        in.Interactions,
		"AppGuide":            in.AppGuide,
		"PrimaryColor":        in.PrimaryColor(),
		"ScreenSections":      in.ScreenSections(),
		"InteractionSections": in.InteractionSections(),
	})
}

// IterationPlan renders the three-iteration plan prompt
func (c *Catalog) IterationPlan(a Artifacts) (string, error) {
	return c.Render(KindIterationPlan, a.data())
}

// IterationSummary renders the plan summary prompt
func (c *Catalog) IterationSummary(plan string) (string, error) {
	return c.Render(KindIterationSummary, map[string]interface{}{"Plan": plan})
}

// UserStories renders the iteration 1 user story prompt
func (c *Catalog) UserStories(a Artifacts) (string, error) {
	return c.Render(KindUserStories, a.data())
}

// FinalPRD renders the composite PRD prompt
func (c *Catalog) FinalPRD(a Artifacts) (string, error) {
	return c.Render(KindFinalPRD, a.data())
}

// PRDSummary renders the PRD summary prompt
func (c *Catalog) PRDSummary(prd string) (string, error) {
	return c.Render(KindPRDSummary, map[string]interface{}{"PRD": prd})
}

// Modification renders a rewrite prompt for one of the modify kinds
func (c *Catalog) Modification(kind Kind, current, request string) (string, error) {
	switch kind {
	case KindModifyPlan, KindModifyStories, KindModifyPRD:
	default:
		return "", fmt.Errorf("%s is not a modification prompt", kind)
	}
	return c.Render(kind, map[string]interface{}{
		"Current": current,
		"Request": request,
	})
}

func (a Artifacts) data() map[string]interface{} {
	return map[string]interface{}{
		"Problem":         a.Problem,
		"BasicAnswers":    a.BasicAnswers,
		"DetailedAnswers": a.DetailedAnswers,
		"EnrichedDesign":  a.EnrichedDesign,
		"Plan":            a.Plan,
		"Stories":         a.Stories,
	}
}
