package prompt

import (
	"strings"
)

const unknownColorPlaceholder = "[convert the user's chosen color to a hex code]"

// DesignInput is the design round distilled into the enrichment prompt variables
type DesignInput struct {
	ReferenceApp string
	MainColor    string
	Typography   string
	MainScreens  string
	Navigation   string
	Interactions string
	AppGuide     string
}

type appGuide struct {
	keywords []string
	guide    string
}

// Ordered; the first entry whose keyword appears in the reference answer wins
var appGuides = []appGuide{
	{[]string{"Coupang", "쿠팡"}, `
- Main color: purple (#5F0080)
- Buttons: 8px radius, no shadow, bold text
- Cards: white background, 1px grey border, product image on top
- Layout: dense two-column grid, efficient use of space
- Typography: large red prices, product names limited to two lines
- Navigation: bottom tab bar (home/categories/my page)`},

	{[]string{"Baemin", "배달의민족", "배민"}, `
- Main color: mint (#2AC1BC)
- Buttons: large radius (12px), generous padding, friendly labels
- Cards: white background, shadow, large image on top
- Layout: generous whitespace, single-column list, relaxed feel
- Typography: friendly font, easy-to-read sizes
- Navigation: top tabs plus a floating bottom button`},

	{[]string{"YouTube", "유튜브"}, `
- Main color: red (#FF0000)
- Buttons: prominent subscribe button, play button
- Cards: thumbnail first, 16:9 ratio, two-line titles
- Layout: grid (1 column on mobile, 3-4 on desktop)
- Typography: emphasised video titles, small grey meta info
- Navigation: left sidebar plus top search`},

	{[]string{"Toss", "토스"}, `
- Main color: blue (#0064FF)
- Buttons: very large radius (16px), generous padding, bold text
- Cards: white background, subtle shadow, large emphasised numbers
- Layout: generous whitespace, single column, one action per screen
- Typography: very bold headings (32px Bold), concise body
- Navigation: full-screen transitions with back navigation`},

	{[]string{"Naver", "네이버"}, `
- Main color: green (#03C75A)
- Buttons: simple, clear labels
- Cards: high information density, thin dividers
- Layout: tab structure, lots of information placed efficiently
- Typography: clean default font, information first
- Navigation: top tabs plus hamburger menu`},

	{[]string{"Kakao", "카카오"}, `
- Main color: yellow (#FEE500)
- Buttons: yellow background, black text, simple
- Cards: white background, clean dividers
- Layout: simple, clear structure
- Typography: clean and highly legible
- Navigation: bottom tab bar with clear icons`},

	{[]string{"Notion", "노션"}, `
- Main color: white and grey tones
- Buttons: minimal, icon first
- Cards: block structure, drag and drop
- Layout: document centred, deep hierarchy
- Typography: optimised for reading, clear hierarchy
- Navigation: left sidebar with folder structure`},

	{[]string{"Instagram", "인스타그램"}, `
- Main color: gradient (purple-pink-orange)
- Buttons: floating buttons, icon first
- Cards: square grid, image first
- Layout: scrolling feed, 1:1 images
- Typography: concise, the image is the hero
- Navigation: bottom tab bar (home/search/reels/profile)`},

	{[]string{"Karrot", "Danggeun", "당근마켓", "당근"}, `
- Main color: orange (#FF6F0F)
- Buttons: rounded corners, friendly feel
- Cards: white background, thumbnail left, title and price right
- Layout: list first, local information emphasised
- Typography: friendly font, emphasised prices
- Navigation: bottom tab bar (home/neighbourhood/chat/my karrot)`},

	{[]string{"Airbnb", "에어비앤비"}, `
- Main color: pink-red (#FF385C)
- Buttons: rounded corners, simple
- Cards: large images, refined shadow
- Layout: image first, generous whitespace
- Typography: refined and minimal
- Navigation: top search plus filters`},
}

// LookupAppGuide returns the design guide of the first reference app named in answer
func LookupAppGuide(answer string) string {
	lower := strings.ToLower(answer)
	for _, g := range appGuides {
		for _, kw := range g.keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return g.guide
			}
		}
	}
	return ""
}

// NewDesignInput maps the six design answers, in question order, onto the
// enrichment variables. Missing answers stay empty.
func NewDesignInput(answers []string) DesignInput {
	at := func(i int) string {
		if i < len(answers) {
			return answers[i]
		}
		return ""
	}

	in := DesignInput{
		ReferenceApp: at(0),
		MainColor:    at(1),
		Typography:   at(2),
		MainScreens:  at(3),
		Navigation:   at(4),
		Interactions: at(5),
	}
	in.AppGuide = LookupAppGuide(in.ReferenceApp)
	return in
}

// PrimaryColor is the main color when it is already concrete, otherwise an instruction to convert it
func (in DesignInput) PrimaryColor() string {
	lower := strings.ToLower(in.MainColor)
	if strings.Contains(in.MainColor, "#") || strings.Contains(lower, "same") || strings.Contains(in.MainColor, "동일") {
		return in.MainColor
	}
	return unknownColorPlaceholder
}

// ScreenSections expands each listed screen into a layout skeleton
func (in DesignInput) ScreenSections() string {
	var b strings.Builder
	for _, screen := range listItems(in.MainScreens) {
		b.WriteString("### " + screen + "\n")
		b.WriteString("- Top: [components]\n")
		b.WriteString("- Middle: [components]\n")
		b.WriteString("- Bottom: [components]\n")
		b.WriteString("- Main action: [button or interaction]\n\n")
	}
	return b.String()
}

// InteractionSections expands each listed interaction with a behaviour placeholder
func (in DesignInput) InteractionSections() string {
	var b strings.Builder
	for _, item := range listItems(in.Interactions) {
		b.WriteString(item + "\n")
		b.WriteString("- Behaviour: [concrete description]\n")
	}
	return b.String()
}

func listItems(s string) []string {
	var items []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}
