package wizard

import "testing"

func sampleLog() []Message {
	return []Message{
		infoMessage("intro"),
		questionMessage("Who uses it?", "", 0),
		userMessage("Freelancers"),
		questionMessage("When?", "", 1),
		userMessage("Month end"),
		infoMessage("quota reached"),
		questionMessage("Unanswered?", "", 2),
	}
}

func TestPairs(t *testing.T) {
	pairs := Pairs(sampleLog())
	if len(pairs) != 2 {
		t.Fatalf("Expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0] != (QAPair{Question: "Who uses it?", Answer: "Freelancers"}) {
		t.Errorf("Unexpected first pair: %+v", pairs[0])
	}
	if pairs[1] != (QAPair{Question: "When?", Answer: "Month end"}) {
		t.Errorf("Unexpected second pair: %+v", pairs[1])
	}
}

func TestFormatPairs(t *testing.T) {
	got := FormatPairs(Pairs(sampleLog()))
	want := "Q: Who uses it?\nA: Freelancers\n\nQ: When?\nA: Month end"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if FormatPairs(nil) != "" {
		t.Error("Expected empty output for no pairs")
	}
}

func TestTranscript(t *testing.T) {
	got := Transcript(sampleLog()[:3])
	want := "AI: intro\nAI: Who uses it?\nUser: Freelancers"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestAnswers(t *testing.T) {
	log := sampleLog()
	if n := AnswerCount(log); n != 2 {
		t.Errorf("Expected 2 answers, got %d", n)
	}
	answers := Answers(log)
	if len(answers) != 2 || answers[1] != "Month end" {
		t.Errorf("Unexpected answers: %v", answers)
	}

	got := numberedAnswers(answers, "Detailed question")
	want := "Detailed question 1 answer: Freelancers\nDetailed question 2 answer: Month end"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestMessage_IsQuestion(t *testing.T) {
	if infoMessage("x").IsQuestion() {
		t.Error("Informational message is not a question")
	}
	if userMessage("x").IsQuestion() {
		t.Error("User message is not a question")
	}
	if !questionMessage("x", "", 0).IsQuestion() {
		t.Error("Expected a question")
	}
}

func TestStepString(t *testing.T) {
	if StepDesign.String() != "design" || StepPRD.String() != "prd" {
		t.Errorf("Unexpected names: %s %s", StepDesign, StepPRD)
	}
	if Step(9).String() != "unknown" {
		t.Errorf("Expected unknown, got %s", Step(9))
	}
}
