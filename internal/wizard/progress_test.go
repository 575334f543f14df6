package wizard

import (
	"fmt"
	"testing"
)

func TestProgress_MonotonicAndClamped(t *testing.T) {
	var seen []int
	p := newProgress(func(v int) { seen = append(seen, v) })

	p.Set(10)
	p.Set(5)
	p.Set(10)
	p.Set(150)
	p.Set(-3)

	if fmt.Sprint(seen) != "[0 10 100]" {
		t.Errorf("Expected [0 10 100], got %v", seen)
	}
	if p.value() != 100 {
		t.Errorf("Expected 100, got %d", p.value())
	}
}

func TestProgress_Span(t *testing.T) {
	var seen []int
	p := newProgress(func(v int) { seen = append(seen, v) })
	span := p.Span(20, 60)

	span(0)
	span(10)
	span(3.33)
	span(95)

	// 20+4, 20+1.33 (ignored), 20+38
	if fmt.Sprint(seen) != "[0 20 24 58]" {
		t.Errorf("Expected [0 20 24 58], got %v", seen)
	}
}

func TestProgress_NilReporter(t *testing.T) {
	p := newProgress(nil)
	p.Set(42)
	if p.value() != 42 {
		t.Errorf("Expected 42, got %d", p.value())
	}
}
