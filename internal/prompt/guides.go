package prompt

// Design thinking guide per basic question position (1-based)
var basicGuides = [QuestionsPerRound]string{
	`Question 1: Persona & scenario
   "Picture the specific person who will use this app. When, where and why do they use it?"

   Examples:
   - An office worker checking an investment portfolio on the subway commute
   - A shop owner analysing sales on a phone while running the store
   - A university student collaborating on a team project in a study cafe
   - A freelancer managing several project schedules from a cafe
   - A working parent managing a side business after work`,

	`Question 2: Current situation (As-Is)
   "How does the user solve this problem today, and what is inconvenient or inefficient about it?"

   Examples:
   - Ten spreadsheets maintained by hand -> 5 minutes to find anything, no versioning
   - Information scattered across chat and email -> 30+ minutes of scrolling
   - Notes on paper -> not searchable, easy to lose
   - Switching between several apps -> frequent copy-paste mistakes
   - Manual calculation -> errors and rework`,

	`Question 3: Ideal experience (To-Be)
   "How should the user's experience change after using the app? What should they get done in 5 minutes?"

   Examples:
   - Minute 1: key metrics dashboard on launch
   - Minute 2: data entry by voice or photo
   - Minute 3: automatic analysis results
   - Minute 4: report generated automatically
   - Minute 5: shared with the team`,

	`Question 4: Solution approach
   "How does the app solve the user's problem? What is different from the existing way?"

   Examples:
   - Before: five spreadsheets -> Now: one unified dashboard
   - Before: searching chat and email -> Now: organised automatically
   - Before: manual calculation -> Now: real-time analysis
   - Before: switching apps -> Now: everything in one place
   - Before: hard to share results -> Now: one link shares everything`,

	`Question 5: MVP core features
   "Which three core features would make a user say 'I would use it for this alone' in the first version?"

   Examples:
   - One-click analysis: analyse everything with a single button
   - Live collaboration dashboard: work with teammates at the same time
   - Smart alerts: immediate notice of important changes
   - Automatic reports: weekly and monthly reports written for you
   - Voice and photo input: speak or snap a photo to enter data`,

	`Question 6: Early user goals
   "What reaction do you expect from the first 10-50 test users?"

   Examples:
   - Used two or three times a week
   - Feedback such as "this is convenient" and "it saves me time"
   - Willing to recommend it to friends or colleagues
   - Feels at least 50% faster than the old way
   - Still in use a month later`,
}

// UX/UI guide per detailed question position (1-based)
var detailedGuides = [QuestionsPerRound]string{
	`Question 1: [Reference App] app or website to reference
   "Which app or website has the design style closest to this service? (layout, navigation and overall feel)"

   Examples:
   - Coupang: dense product grid, search first, optimised for shopping
   - Baemin: generous whitespace, large images and buttons, relaxed feel
   - YouTube: thumbnail-centred feed, compact header
   - Naver: high information density, tabs, prominent search
   - KakaoTalk: simple and clear, list based, yellow accent
   - Toss: minimal, large type, cards, trustworthy finance feel
   - Notion: document centred, clean hierarchy, sidebar navigation
   - Instagram: image centred, grid and feed, bottom tab bar
   - Karrot (Danggeun Market): friendly design, card lists, community feel
   - Airbnb: large imagery, refined, uses whitespace`,

	`Question 2: [Main Color] main color
   "What is the main (brand) color of the service?"

   Examples:
   - Coupang purple (#5F0080)
   - Baemin mint (#2AC1BC)
   - Naver green (#03C75A)
   - Kakao yellow (#FEE500)
   - Toss blue (#0064FF)
   - Instagram gradient (purple-pink-orange)
   - Custom (e.g. #FF6B6B or 'bright orange')
   - Same as the reference app`,

	`Question 3: [Typography Style] typography style
   "What feel do you want for text (font, size, weight)?"

   Examples:
   - Toss: large bold headings, concise sentences, emphasised numbers
   - Coupang: emphasised prices, two-line product names, small meta info
   - Notion: reading-friendly hierarchy, clearly separated headings
   - YouTube: emphasised titles, small grey view counts and dates
   - Karrot: friendly font, easy-to-read sizes
   - Same as the reference app`,

	`Question 4: [Main Screens] core screens
   "Which three screens will users see most often?"

   Examples:
   - Coupang: home (recommendations), search results, product detail
   - Baemin: home (restaurant list), store detail, checkout
   - YouTube: home feed, video player, search results
   - Toss: home (account summary), transfer, transaction history
   - Notion: workspace home, page editor, database
   - Instagram: feed, stories, profile`,

	`Question 5: [Navigation Pattern] navigation
   "How should users move between screens?"

   Examples:
   - Bottom tab bar (Instagram/YouTube): 4-5 main menus such as home, search, alerts, profile
   - Left sidebar (Notion/Gmail): categories and folders, desktop first
   - Top tabs (Naver/KakaoTalk): content categories
   - Hamburger menu (drawer): menu button top left for many sub menus
   - Full screen (Baemin/Toss): full-screen transitions with a back button
   - Same as the reference app`,

	`Question 6: [Key Interactions] key interactions
   "What are the user's main actions (taps, scrolling and so on)?"

   Examples:
   - Search first: top search bar, autocomplete, filters
   - Scrolling feed: infinite scroll, pull to refresh
   - Card selection: tap an item in a list -> detail screen
   - Input forms: fill several fields -> save or submit
   - Like and share: social features, bookmarks, comments
   - Map exploration: location search, pin taps, directions`,
}

// BasicGuide returns the guide for a basic question position (1-based).
// Positions outside the round yield an empty guide.
func BasicGuide(position int) string {
	if position < 1 || position > QuestionsPerRound {
		return ""
	}
	return basicGuides[position-1]
}

// DetailedGuide returns the guide for a detailed question position (1-based)
func DetailedGuide(position int) string {
	if position < 1 || position > QuestionsPerRound {
		return ""
	}
	return detailedGuides[position-1]
}
