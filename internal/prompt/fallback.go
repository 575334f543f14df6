package prompt

import (
	"fmt"
	"time"

	"github.com/lamim/prdforge/internal/util"
)

// Informational messages shown in the Q&A logs and modification log
const (
	BasicIntroMessage     = "I understand the problem! I'll ask a few questions to build a better PRD."
	BasicQuotaMessage     = "Great! Enough information collected. Press Next."
	DesignIntroMessage    = "Basic information collection complete! Now collecting screen design details."
	DesignQuotaMessage    = "Collected enough screen design information! Press Next."
	ModificationDone      = "Modification complete. Please review the content above."
	MockModificationLimit = "Modification is limited in mock AI mode. Connect the Gemini API to apply real modifications."
	EnrichmentFailed      = "The design system could not be generated. The iteration plan was built from your design answers alone."

	// MockBasicSummary never derives from the answers
	MockBasicSummary = "Basic information collection is complete."
)

// Question is a canned question with its example hint
type Question struct {
	Text string
	Hint string
}

var basicQuestions = []Question{
	{
		Text: "Picture the specific person (persona) who will use this app. When, where and why do they use it?",
		Hint: "Examples:\n- A 30-something office worker who checks an investment portfolio in real time on a two-hour subway commute and needs quick decisions\n- A shop owner in their 50s who analyses sales on a phone between customers to time inventory orders\n- A university student in a study cafe who wants team project progress at a glance and live collaboration\n- A freelancer in their 40s managing schedules and income for several clients from a laptop at a cafe\n- A working parent who uses late evenings to track side-business sales and customers",
	},
	{
		Text: "How does the user solve this problem today, and what about that method is inconvenient or inefficient?",
		Hint: "Examples:\n- Ten spreadsheets maintained by hand -> 5 minutes just to find a file, missed updates, no versioning\n- Information scattered across chat and email -> 30+ minutes of scrolling, important messages missed\n- Paper notes tidied up later -> not searchable, easy to lose, photos are hard to manage\n- Switching between apps -> 10+ app switches, manual copy-paste mistakes\n- Calculating by hand and checking -> frequent errors, wasted rework, low confidence",
	},
	{
		Text: "How should the user's experience change after using this app? What should they be able to do within 5 minutes?",
		Hint: "Examples:\n- Minute 1: open the app and see today's key metrics dashboard (with change since yesterday)\n- Minute 2: enter new data by voice or photo (minimal typing)\n- Minute 3: review automatically analysed insights and recommended actions\n- Minute 4: generate a report in the desired format (PDF/Excel/image)\n- Minute 5: share a link with teammates and start collaborating live",
	},
	{
		Text: "What is this app's differentiating strength or competitive edge? Why use it instead of existing services?",
		Hint: "Examples:\n- First AI-based prediction engine in the category (forecasts next month from three months of data)\n- Ten times faster processing than competitors (10,000 records analysed in 3 seconds)\n- Mobile-first UI optimised for one-handed use (convenient on public transport)\n- Offline mode keeps core features available without internet\n- Half the monthly price of alternatives with unlimited user invitations",
	},
	{
		Text: "Which three core features in the first version would make a user say 'I'd use it for this alone'?",
		Hint: "Examples:\n- One-click analysis: analyse all data instantly with a single button, no setup\n- Live collaboration dashboard: teammates see the same screen and discuss at the same time\n- Smart alerts: push notifications the moment an important change or anomaly is detected\n- Automatic custom reports: weekly and monthly reports written and sent in your format\n- Voice and photo input: say it or photograph a receipt and the data is entered",
	},
	{
		Text: "How will you know the app actually solved the problem? Which metrics or user reactions do you want to see?",
		Hint: "Examples:\n- Quantitative: 500+ daily active users, 70%+ weekly return rate\n- Efficiency: 60% less time on the task, 80% fewer errors\n- Satisfaction: 4.5+ app store rating, NPS of 50+\n- Business: 20%+ paid conversion, 90%+ monthly renewal\n- Feedback: reviews like 'I couldn't work without this' or 'our team doubled its productivity'",
	},
}

var detailedQuestions = []Question{
	{
		Text: "[Design System & Brand Identity] How do you want to express the overall design feel and brand identity of the app?",
		Hint: "Examples:\n- Notion style: minimal, clean workspace (beige/grey tones, block layout, generous whitespace)\n- Toss style: friendly yet trustworthy finance app (blue accent, rounded cards, intuitive icons)\n- Airbnb style: warm and welcoming (red/coral accent, large imagery, soft rounding)\n- Figma style: modern and collaborative (purple/multicolor, live collaboration UI, floating elements)\n- KakaoBank style: young and lively finance (yellow brand color, characters, playful micro-interactions)\n- Karrot style: warm local community (orange accent, friendly illustrations, neighbourhood UI)",
	},
	{
		Text: "[Color System] How will you compose the main colors? Describe the brand color and the role of functional colors.",
		Hint: "Examples:\n- Slack style: purple #4A154B (brand), green #2EB67D (online), red #E01E5A (alerts)\n- X style: blue #1DA1F2 (primary actions), black/white (minimal UI), heart red (likes)\n- Spotify style: green #1DB954 (brand/play), black background, white/grey text\n- Instagram style: gradient (purple to pink to yellow, logo), blue (links), red (likes/alerts)\n- Naver style: green #03C75A (brand), white background, grey dividers, sparing accents\n- Coupang style: rocket red/orange (brand), sale red, free-shipping blue, clean white background",
	},
	{
		Text: "[Typography & Hierarchy] How will you structure text styles and the visual hierarchy of information?",
		Hint: "Examples:\n- Apple style: SF Pro Display, bold large headings (48px+), generous whitespace, small body (14-16px)\n- Google style: Roboto/Google Sans, clear hierarchy, Medium titles (24px), Regular body (16px)\n- Medium style: serif headings, large body (21px), roomy line-height (1.8), reading first\n- Baemin style: playful custom fonts, friendly tone, emphasis through weight\n- Ridibooks style: legibility first, 18px body, line-height 1.7, optimised for reading\n- Yogiyo style: clean sans-serif, dish names Bold (18px), prices Strong (20px red), info Regular (14px)",
	},
	{
		Text: "[Layout & Spacing] How will you set up the screen layout and spacing system?",
		Hint: "Examples:\n- Notion style: 8px base unit, generous whitespace, centred content (max 900px), 8px between blocks\n- Trello style: card grid, 8px between cards, 16px between lists, wide draggable touch targets\n- YouTube style: thumbnail grid (4/3/2/1 columns), 16:9 ratio, 16px between cards, infinite scroll\n- Netflix style: horizontal scrolling rows, 40px between rows, cards grow on hover, full-screen hero\n- Zigzag style: tight spacing (8px), dense two-column products, fast scrolling, fixed bottom tab bar\n- KakaoTalk style: list layout, 48px avatars, 16px side padding, 1px dividers, swipe actions",
	},
	{
		Text: "[Icons & Visual Elements] How will you design the icon style and visual elements?",
		Hint: "Examples:\n- Facebook style: filled icons (like heart, bell), brand blue, clear visual feedback\n- LINE style: cute character stickers, rounded icons, circular profiles, sticker-shop illustrations\n- Dropbox style: simple outline icons, 2px strokes, colors per file type, cloud motif\n- Airbnb style: outline icons, heart (wishlist), magnifier (search), large listing photos (16:9)\n- Bunjang style: square product photos, heart icon, circular seller profile, red price emphasis\n- Musinsa style: product imagery first (3:4), brand logos, heart, black/white minimal icons",
	},
	{
		Text: "[Button & CTA Design] How will you design buttons and the main call-to-action elements?",
		Hint: "Examples:\n- Coupang style: orange 'Rocket delivery' button, full-width 'Buy now' button, sticky bottom CTA\n- Toss style: full blue button, 12px rounding, 'Next' pinned to the bottom, grey when disabled\n- KakaoTalk style: yellow brand button, 'Send a gift' CTA, send-message button, profile icon buttons\n- Karrot style: orange 'Chat' button, heart 'Interested' icon, ghost buttons (report/share)\n- Baemin style: turquoise 'Order' button, floating cart, store 'call/favourite' icon buttons\n- Yogiyo style: red 'Order' pinned to the bottom, +/- stepper buttons, secondary 'Add to cart'",
	},
}

// BasicQuestions returns the canned basic round questions
func BasicQuestions() []Question {
	return append([]Question(nil), basicQuestions...)
}

// DetailedQuestions returns the canned design round questions
func DetailedQuestions() []Question {
	return append([]Question(nil), detailedQuestions...)
}

// MockBasicQuestion returns the canned basic question at index, false past the end
func MockBasicQuestion(index int) (Question, bool) {
	return questionAt(basicQuestions, index)
}

// MockDetailedQuestion returns the canned design question at index, false past the end
func MockDetailedQuestion(index int) (Question, bool) {
	return questionAt(detailedQuestions, index)
}

func questionAt(list []Question, index int) (Question, bool) {
	if index < 0 || index >= len(list) {
		return Question{}, false
	}
	return list[index], true
}

// MockIterationPlan is the canned three-iteration plan
const MockIterationPlan = `# Three-Iteration Plan

## Iteration 1: Core feature implementation (MVP)

### Input
- Simple text-based input form
- Required field validation

### Processing
- Parse and structure the input data
- Basic validation

### Output
- Results shown as a list or table
- Loading state and error messages

### Review
- ✅ Results shown within 3 seconds for valid input
- ✅ Clear error message for invalid input

---

## Iteration 2: Advanced features

### Input
- File upload (CSV, Excel)
- Drag and drop support

### Processing
- Advanced data analysis
- Data cleaning and transformation

### Output
- Chart visualisation
- PDF/Excel download

### Actions
- Download results
- Share by email

### Review
- ✅ 1,000 rows processed within 10 seconds
- ✅ Compatible with multiple file formats

---

## Iteration 3: Collaboration and automation

### Input
- Live collaboration
- Automatic data collection

### Processing
- AI-based insights
- Real-time synchronisation

### Output
- Unified dashboard
- Notification system

### Actions
- Team collaboration
- External tool integrations

### Review
- ✅ 100+ concurrent users
- ✅ Real-time sync within 1 second`

// MockIterationSummary is the canned plan summary
const MockIterationSummary = `Iteration 1: Core feature implementation (MVP) - Builds a text-based input form with required field validation, then parses the input and shows it as a list or table. Targets results within 3 seconds for valid input.

Iteration 2: Advanced features - Adds file upload (CSV, Excel) with drag and drop, plus advanced analysis and chart visualisation. Processes 1,000 rows within 10 seconds and includes PDF/Excel download and email sharing.

Iteration 3: Collaboration and automation - Implements live collaboration and automatic data collection with AI-based insights. A unified dashboard and notifications strengthen team work, targeting 100+ concurrent users and sync within 1 second.`

// MockUserStories is the canned iteration 1 story set
const MockUserStories = `# User Stories (Iteration 1 - MVP)

## Story 1: Enter data quickly for the first time
**As a** first-time user
**I want to** enter my data through a simple form without any setup
**So that** I can see a useful result within minutes of signing up

**Scenario:**
Kim opened the app for the first time five minutes before a meeting.
The form showed only the three required fields with examples, and
after pressing "Analyse" the result appeared in under three seconds.

**Acceptance Criteria:**
- [ ] Required fields are marked and validated inline
- [ ] Results appear within 3 seconds for valid input
- [ ] Example values are shown as placeholders
- [ ] The form works on mobile and desktop

## Story 2: Understand and share results
**As a** team lead preparing a meeting
**I want to** see key figures highlighted and download the result
**So that** I can hand meeting material to my team immediately

**Scenario:**
Park needed an urgent analysis at 1:50 for a 2:00 meeting.
The result screen highlighted the key metrics at the top with a
sortable table below. One click on "Download Excel" finished the
meeting material and a share link went to the team chat.

**Acceptance Criteria:**
- [ ] Three key summary points are shown at the top
- [ ] The result table supports sorting and filtering
- [ ] Important numbers are emphasised by color and size
- [ ] One-click download as Excel, PDF or CSV
- [ ] A read-only share link valid for 24 hours can be created

## Story 3: Recover quickly from input mistakes
**As a** practitioner handling large data sets
**I want to** see exactly where an input error is and fix only that part
**So that** I can finish without starting over

**Scenario:**
Lee uploaded a 100-line CSV and saw "error on line 23".
The line was highlighted with the hint "date format: YYYY-MM-DD"
and an example. Lee fixed that line, pressed "Retry" and kept the
other 99 lines.

**Acceptance Criteria:**
- [ ] Errors show the exact line and field
- [ ] The cause is explained in plain language
- [ ] A correct input example is provided
- [ ] Only the failing field is outlined in red
- [ ] Valid data is preserved while fixing errors

## Story 4: Save time on repeated work
**As an** operator doing similar work every day
**I want to** save and reuse the settings of a previous task
**So that** a routine task takes one minute instead of fifteen

**Scenario:**
Choi writes the same daily report at 10 a.m. After ticking
"Save these settings" once, a "Load yesterday's task" button
appeared and filled every field with one click.

**Acceptance Criteria:**
- [ ] A "save settings" option is offered after completing a task
- [ ] Saved tasks are managed by name (up to 10)
- [ ] Loading a saved task fills every input
- [ ] Loaded values remain editable
- [ ] The three most recent tasks appear as shortcuts on the main screen

## Story 5: Handle urgent work on mobile
**As a** sales representative on the road
**I want to** finish simple tasks on my phone
**So that** I can respond to customers without returning to the office

**Scenario:**
Jung had to check data requested by a customer right after a meeting.
On the phone the same features were available with a touch-friendly
UI, and the share link went to the customer by email on the spot.

**Acceptance Criteria:**
- [ ] Responsive layout for mobile screen sizes
- [ ] Touch targets of at least 44x44px
- [ ] File upload and camera capture on mobile
- [ ] Portrait and landscape are both supported
- [ ] Input is kept locally while offline`

// MockPRDSummary is the canned PRD summary
const MockPRDSummary = `### Problem Definition
Users waste significant time on inefficient manual processes, and difficult data management with little collaboration lowers their productivity.

### Solution
A unified web and mobile platform provides automation, live collaboration and data visualisation to transform the user experience.

### Iteration Plan
Development proceeds in three incremental iterations starting from the core MVP, each shipping finished features that deliver real value.

### User Stories
Key features are defined from user-centred scenarios, each written as As-I want-So that with clear acceptance criteria.

### Tech Stack
A modern, scalable stack is chosen: React/Next.js frontend, Node.js or Python backend, PostgreSQL database and cloud infrastructure.

### Screen Layout
An intuitive UX/UI with mobile-first responsive design gives the best experience on every device.

### Success Metrics
Concrete KPIs such as daily active users, task completion rate and response time drive continuous, data-based improvement.`

// MockPRD returns the canned PRD, already fenced as markdown. The title
// embeds the first 100 characters of the problem statement.
func MockPRD(problem string, now time.Time) string {
	date := now.Format("2006-01-02")
	return fmt.Sprintf(mockPRDTemplate, util.FirstRunes(problem, 100), date, date, date)
}

const mockPRDTemplate = "```markdown\n" + `# PRD: %s

> This PRD was generated by analysing and completing the user's input.

**Date**: %s

---

## Table of Contents
1. Problem Definition
2. Solution Overview
3. Three-Iteration Plan
4. User Stories
5. Tech Stack
6. Main Screens
7. Data Model
8. API Spec
9. Security and Permissions
10. Performance Requirements
11. Implementation Guide
12. Success Metrics (KPI)

---

## 1. Problem Definition

### 1.1 Current situation
Users handle the task through manual, fragmented tools and lose time finding and reconciling information.

### 1.2 Target users
People who repeat the task weekly and need results they can share quickly.

### 1.3 Core problem
- Repetitive manual work
- Scattered data with no single source of truth
- Results that are hard to share

## 2. Solution Overview
A web application that collects input through a guided form, processes it automatically and presents shareable results.

## 3. Three-Iteration Plan
- Iteration 1: core input, processing and result display (MVP)
- Iteration 2: file upload, analysis and export
- Iteration 3: collaboration, automation and notifications

## 4. User Stories
See the iteration 1 user stories for the MVP scope and acceptance criteria.

## 5. Tech Stack

### 5.1 Frontend
- Next.js with TypeScript
- Tailwind CSS

### 5.2 Backend & database
- Next.js API routes
- PostgreSQL

### 5.3 Deployment
- Vercel for the web app
- Managed PostgreSQL

## 6. Main Screens

### 6.1 Home (` + "`/`" + `)
Entry point with a short explanation and a start button.

### 6.2 Work screen (` + "`/work`" + `)
Guided input form with inline validation.

### 6.3 Result screen (` + "`/result/[id]`" + `)
Key metrics on top, detailed table below, download and share actions.

## 7. Data Model

### 7.1 Users
- id, email, created_at

### 7.2 Tasks
- id, user_id, title, input, result, status, created_at

## 8. API Spec
- POST /api/tasks: create a task
- GET /api/tasks/:id: fetch a task and its result

## 9. Security and Permissions
- Authenticated access only
- Row-level access limited to the owner

## 10. Performance Requirements
- Results within 3 seconds for typical input
- Pages load within 2 seconds

## 11. Implementation Guide
- Build iteration by iteration; each iteration is deployable
- Keep components small and typed

## 12. Success Metrics (KPI)

### 12.1 Usability
- Task completion rate of 90%%+

### 12.2 Performance
- p95 processing time under 3 seconds

### 12.3 Business (iteration 2+)
- 20%%+ sign-up conversion

---

**Document version**: 1.0
**Created**: %s
**Last modified**: %s
` + "```"
