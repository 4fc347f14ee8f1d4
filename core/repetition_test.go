package interview

import "testing"

func TestAskedQuestionsDetectsDuplicatesCaseInsensitively(t *testing.T) {
	asked := NewAskedQuestions()
	asked.Record("What is your experience with Go?")

	if !asked.IsDuplicate("WHAT IS YOUR EXPERIENCE WITH GO? Tell me more.") {
		t.Fatalf("expected duplicate to be detected regardless of case")
	}
	if asked.IsDuplicate("So, what is your experience with Go? Tell me more.") {
		t.Fatalf("expected reworded question not to be flagged, matching is exact")
	}
	if asked.IsDuplicate("What is your experience with Rust?") {
		t.Fatalf("expected unrelated question not to be flagged")
	}
	if asked.IsDuplicate("I have ten years of experience.") {
		t.Fatalf("expected text without questions not to be flagged")
	}
}

func TestAskedQuestionsRecordIsIdempotent(t *testing.T) {
	asked := NewAskedQuestions()

	asked.Record("How are you today? What brings you here?")
	if asked.Len() != 2 {
		t.Fatalf("expected two questions recorded, got %d", asked.Len())
	}

	asked.Record("how are you today?")
	if asked.Len() != 2 {
		t.Fatalf("expected re-recording to have no effect, got %d", asked.Len())
	}

	asked.Record("Any hobbies?")
	if asked.Len() != 3 {
		t.Fatalf("expected third question recorded, got %d", asked.Len())
	}
}

func TestAskedQuestionsGrowsMonotonically(t *testing.T) {
	asked := NewAskedQuestions()

	previous := 0
	for _, text := range []string{
		"How are you today?",
		"No questions in this one.",
		"What is your experience with Go? And with Rust?",
		"What is your experience with Go?",
	} {
		asked.Record(text)
		if asked.Len() < previous {
			t.Fatalf("expected set size to never shrink, got %d after %d", asked.Len(), previous)
		}
		previous = asked.Len()
	}

	if previous != 3 {
		t.Fatalf("expected three distinct questions, got %d", previous)
	}
}

func TestAskedQuestionsListsNormalizedQuestions(t *testing.T) {
	asked := NewAskedQuestions()
	asked.Record("  What is your experience with Go?  ")

	questions := asked.Questions()
	if len(questions) != 1 || questions[0] != "what is your experience with go?" {
		t.Fatalf("expected normalized question listing, got %v", questions)
	}
}
