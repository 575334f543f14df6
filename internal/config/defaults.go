package config

// questionFormatHeader is shared by every question prompt
const questionFormatHeader = `[IMPORTANT] Never change the output format. Use only the format below:

Question text

Examples:
- example item 1
- example item 2
- example item 3

---

`

const questionFormatRules = `Rules you must follow:
1. Write exactly one question line
2. One blank line
3. The label "Examples:" (exactly this label)
4. 5 items starting with "-", each on its own line, concrete and detailed
5. Stop (add absolutely nothing else)`

// GetDefaultFirstQuestionTemplate returns the template for the first basic question
func GetDefaultFirstQuestionTemplate() string {
	return questionFormatHeader + `You are a PRD writing expert who works with design thinking. The user has the following problem:

"{{.Problem}}"

You need to understand the user and the problem deeply through a total of {{.Total}} design thinking questions.
Generate the first question (persona & scenario).

Output example (follow this format exactly):
Picture the specific person who will use this app. When, where and why do they open it?

Examples:
- A 30-something office worker checking an investment portfolio on a two-hour subway commute and needing quick decisions
- A shop owner in their 50s analysing sales on a phone between customers to time inventory orders
- A university student in a study cafe tracking team project progress and collaborating live with classmates
- A freelancer in their 40s managing schedules and income for several clients from a laptop at a cafe
- A working parent using late evenings to review side-business sales and customer follow-ups

` + questionFormatRules + `

Follow the format above exactly and generate the first question.`
}

// GetDefaultNextQuestionTemplate returns the template for basic questions 2..6
func GetDefaultNextQuestionTemplate() string {
	return questionFormatHeader + `You are an expert helping to write a PRD.

Initial problem:
"{{.Problem}}"

Conversation so far:
{{.Transcript}}

The user has answered {{.Answered}} question(s).
Considering the conversation, write the single most important next question.
This is question {{.Position}} of {{.Total}}.

Design thinking guide for question {{.Position}}:
{{.Guide}}

` + questionFormatRules + `

Follow the format above exactly and generate question {{.Position}}.`
}

// GetDefaultBasicSummaryTemplate returns the template summarising the basic Q&A round
func GetDefaultBasicSummaryTemplate() string {
	return `The following questions and answers were collected to write a PRD:

{{.QAList}}

Based on these questions and answers, summarise the core of the project naturally in one or two sentences.
Read each answer in the context of its question. For example, if the question was about "design style" and the answer was "Notion", understand it as "prefers a Notion-like design style".
Always finish with complete sentences.`
}

// GetDefaultFirstDetailedQuestionTemplate returns the template opening the design Q&A round
func GetDefaultFirstDetailedQuestionTemplate() string {
	return questionFormatHeader + `You are an expert helping to write a PRD.

Problem:
"{{.Problem}}"

Basic information collected:
{{.BasicQA}}

Now collect screen-level details using UX/UI design methodology.
Generate the first detailed question ([User Journey]).

Output example (follow this format exactly):
Describe, in order, the key steps a user takes from opening the app to reaching their main goal.

Examples:
- Step 1: Sign in (social login within 3 seconds) -> personalised dashboard appears
- Step 2: Tap "+ New task" at the top -> choose quick or detailed entry
- Step 3: Fill required fields (title, category, due date) -> optional fields can wait
- Step 4: Tap "Analyse" -> automatic analysis runs (3-5 seconds)
- Step 5: Review insights on the result screen -> save, share or edit

` + questionFormatRules + `

Follow the format above exactly and generate the first question.`
}

// GetDefaultNextDetailedQuestionTemplate returns the template for design questions 2..6
func GetDefaultNextDetailedQuestionTemplate() string {
	return questionFormatHeader + `You are an expert helping to write a PRD.

Problem:
"{{.Problem}}"

Basic information collected:
{{.BasicQA}}

Screen design conversation so far:
{{.Transcript}}

The user has answered {{.Answered}} detailed question(s).
Considering the conversation, write the single most important next detailed question.
This is question {{.Position}} of {{.Total}}.

Visual design & UX/UI guide for question {{.Position}}:
{{.Guide}}

` + questionFormatRules + `

Follow the format above exactly and generate question {{.Position}}.`
}

// GetDefaultDesignEnrichmentTemplate returns the template turning design answers into a design system
func GetDefaultDesignEnrichmentTemplate() string {
	return `Design information chosen by the user:
- Reference app: {{.ReferenceApp}}
- Main color: {{.MainColor}}
- Typography: {{.Typography}}
- Main screens: {{.MainScreens}}
- Navigation: {{.Navigation}}
- Key interactions: {{.Interactions}}
{{if .AppGuide}}
Design guide of the reference app ({{.ReferenceApp}}):
{{.AppGuide}}
{{end}}
Using the information above, produce a concrete design system a developer can implement immediately.

**Output format (you must follow it):**

## Color System
- Primary: {{.PrimaryColor}}
- Secondary: [derive a secondary color from the primary]
- Success: #10B981
- Warning: #F59E0B
- Error: #EF4444
- Background: #F9FAFB
- Text: #1F2937 (body), #6B7280 (secondary)

## Typography
- Heading 1: [size]px [weight]
- Heading 2: [size]px [weight]
- Heading 3: [size]px [weight]
- Body: [size]px Regular
- Caption: [size]px Regular
- Font notes: [reference app style]

## Button Styles
- Primary button: [background], [text color], [radius], [padding], [shadow]
- Secondary button: [style]
- Ghost button: [style]

## Card Component
- Background, border, radius, shadow, inner padding, layout of image and text

## Input Fields
- Background, border, radius, focus state

## Layout System
- Grid columns for mobile, tablet and desktop
- Spacing scale in px
- Container max width and horizontal padding

## Screens
{{.ScreenSections}}
## Navigation
{{.Navigation}}
- Implementation: [concrete description]
- Menu items: [items]

## Interactions
{{.InteractionSections}}
**Important**:
1. Give every color as a hex code
2. Give every size in px
3. Reflect the design patterns of {{.ReferenceApp}} as closely as possible
4. Be concrete enough that a developer can write the code directly`
}

// GetDefaultIterationPlanTemplate returns the template for the three-iteration plan
func GetDefaultIterationPlanTemplate() string {
	return `You are an Agile methodology expert and PRD writing expert.
Using the information below, write a three-iteration plan following Agile Iteration Planning.

## Agile Iteration Planning guide:
- **Incremental value**: every iteration ships a finished feature with real user value
- **Priority driven**: MVP (iteration 1) -> core expansion (iteration 2) -> advanced features and optimisation (iteration 3)
- **Input-process-output-review structure**: define scope and deliverables of each iteration
- **Measurable goals**: concrete, verifiable completion criteria per iteration

Problem:
{{.Problem}}

Basic information (Step 1 - Design Thinking):
{{.BasicAnswers}}

Screen design details (Step 2 - UX/UI design):
{{.DetailedAnswers}}
{{if .EnrichedDesign}}
Refined design system:
{{.EnrichedDesign}}
{{end}}
Write it in the following format:

# Three-Iteration Plan (Agile Iteration Planning)

## Overview
[overall goal and how the three iterations build on each other]

## Iteration 1: MVP (Minimum Viable Product)
**Goal**: smallest feature set that delivers the core value (2-3 weeks)

### Input
- [input methods and data structures]
### Processing
- [core business logic, data flow, tech stack]
### Output
- [screens, results shown to the user, feedback]
### Review
- [ ] [concrete test items, performance criteria]

**Done when**: [clear completion criteria]

## Iteration 2: Core Expansion
[same structure]

## Iteration 3: Advanced Features and Optimisation
[same structure]

## Risks and Mitigations
- [technical, schedule and scope risks with responses]

Every iteration must be independently deployable and deliver value to users.`
}

// GetDefaultIterationSummaryTemplate returns the template summarising the plan
func GetDefaultIterationSummaryTemplate() string {
	return `Summarise the following iteration plan in 2-3 sentences per iteration.

**Important**: follow the format below exactly and put a blank line between iterations.

Iteration 1: [Title] - [2-3 sentences on the core features and goal]

Iteration 2: [Title] - [2-3 sentences on the core features and goal]

Iteration 3: [Title] - [2-3 sentences on the core features and goal]

Iteration plan:
{{.Plan}}`
}

// GetDefaultUserStoriesTemplate returns the template for iteration 1 user stories
func GetDefaultUserStoriesTemplate() string {
	return `You are a User Story & Acceptance Criteria expert and PRD writing expert.
Using the information below, write the user stories for iteration 1.

## Guide:
- **User centred**: "As a [role], I want to [capability], So that [value]"
- **Concrete scenario**: tell the real situation the user is in
- **Measurable acceptance criteria** for every story
- **Given-When-Then** where it helps
- **Independent and complete**: every story can be built and tested on its own

Problem:
{{.Problem}}

Basic information (Step 1 - Design Thinking):
{{.BasicAnswers}}

Screen design details (Step 2 - UX/UI design):
{{.DetailedAnswers}}
{{if .EnrichedDesign}}
Refined design system:
{{.EnrichedDesign}}
{{end}}
Iteration plan:
{{.Plan}}

Write at least 5 user stories in this format:

# User Stories (Iteration 1 - MVP)

## Story 1: [clear, specific title]
**As a** [role or persona]
**I want to** [capability]
**So that** [value]

**Scenario:**
[situation, action and expected result]

**Acceptance Criteria:**
- [ ] [measurable criterion]
- [ ] [performance criterion]
- [ ] [usability criterion]

**Priority**: High/Medium/Low
**Size**: S/M/L

## Story 2: [title]
[same structure]

Every story belongs to the iteration 1 MVP scope and must be testable.`
}

// GetDefaultFinalPRDTemplate returns the template for the final composite PRD
func GetDefaultFinalPRDTemplate() string {
	return `You are a PRD documentation best-practice expert.
Combine all of the information below into a complete, industry-standard PRD.

## Key instructions:
**Never output placeholders in square brackets. Fill every section with the user's actual answers below.**
- Sections 2-4 (overview, problem, solution): problem statement + Step 1 answers
- Section 7 (functional requirements): iteration plan + user stories
- Sections 10-11 (screens and screen specification): Step 2 answers and the design system
- Sections 17-21 (testing, launch, KPIs, risks, roadmap): Step 1 success goals + iterations + acceptance criteria

---

Problem (Step 0):
{{.Problem}}

---

Basic information (Step 1 - Design Thinking, 6 questions):
{{.BasicAnswers}}

---

Screen design details (Step 2 - Visual Design & UX/UI, 6 questions):
{{.DetailedAnswers}}

---
{{if .EnrichedDesign}}
Refined design system:
{{.EnrichedDesign}}

---
{{end}}
Iteration plan (Step 3):
{{.Plan}}

---

User stories (Step 4):
{{.Stories}}

---

Write the PRD in this format:

# PRD: [Project name]

## Table of Contents
1. Document Information
2. Project Overview
3. Problem Definition
4. Solution
5. Three-Iteration Plan
6. User Stories
7. Functional Requirements
8. Non-functional Requirements
9. Tech Stack
10. Main Screens
11. Screen Implementation Spec
12. Data Model
13. API Spec
14. Security and Permissions
15. Performance Requirements
16. Implementation Guide
17. Test Strategy
18. Launch Plan
19. Success Metrics (KPI)
20. Risk Management
21. Roadmap

Write every section with concrete, implementable content so the PRD can be used for development immediately.`
}

// GetDefaultPRDSummaryTemplate returns the template summarising the PRD
func GetDefaultPRDSummaryTemplate() string {
	return `Read the following PRD and summarise it concisely per key section.

**Important**: follow the format below exactly and put a blank line between sections.

### [Section name]
[1-2 sentences with the key content]

PRD:
{{.PRD}}

Summarise at least 5 main sections of the PRD in the format above.`
}

// GetDefaultModifyPlanTemplate returns the template for iteration plan modifications
func GetDefaultModifyPlanTemplate() string {
	return `This is the current iteration plan:

{{.Current}}

The user requested the following change:
"{{.Request}}"

Apply the request and rewrite the iteration plan. Write the whole content again.`
}

// GetDefaultModifyStoriesTemplate returns the template for user story modifications
func GetDefaultModifyStoriesTemplate() string {
	return `These are the current user stories:

{{.Current}}

The user requested the following change:
"{{.Request}}"

Apply the request and rewrite the user stories. Write the whole content again.`
}

// GetDefaultModifyPRDTemplate returns the template for PRD modifications
func GetDefaultModifyPRDTemplate() string {
	return `This is the current PRD:

{{.Current}}

The user requested the following change:
"{{.Request}}"

Apply the request and rewrite the PRD. Write the whole content again as markdown.`
}
