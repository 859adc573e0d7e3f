package reports

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func inPool(category phraseCategory, sentiment Sentiment, phrase string) bool {
	for _, candidate := range phrasePools[category][sentiment] {
		if candidate == phrase {
			return true
		}
	}
	return false
}

func entry(returns string, expenses string, jobs int) DayReportEntry {
	return DayReportEntry{
		Returns:      decimal.RequireFromString(returns),
		Expenses:     decimal.RequireFromString(expenses),
		NumberOfJobs: jobs,
	}
}

func TestBuildComparisonNoteSingleEntryIsAllPositive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	note := buildComparisonNote([]DayReportEntry{entry("5000", "200", 4)}, rng)
	if !inPool(categoryReturns, SentimentPositive, note.Returns) {
		t.Errorf("returns note %q not in positive pool", note.Returns)
	}
	if !inPool(categoryExpenses, SentimentPositive, note.Expenses) {
		t.Errorf("expenses note %q not in positive pool", note.Expenses)
	}
	if !inPool(categoryJobs, SentimentPositive, note.NumberOfJobs) {
		t.Errorf("jobs note %q not in positive pool", note.NumberOfJobs)
	}
}

func TestBuildComparisonNoteBetterDay(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	note := buildComparisonNote([]DayReportEntry{
		entry("8000", "100", 6),
		entry("5000", "400", 3),
	}, rng)
	if !inPool(categoryReturns, SentimentPositive, note.Returns) {
		t.Errorf("higher returns should read positive, got %q", note.Returns)
	}
	if !inPool(categoryExpenses, SentimentPositive, note.Expenses) {
		t.Errorf("lower expenses should read positive, got %q", note.Expenses)
	}
	if !inPool(categoryJobs, SentimentPositive, note.NumberOfJobs) {
		t.Errorf("more jobs should read positive, got %q", note.NumberOfJobs)
	}
}

func TestBuildComparisonNoteWorseDay(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	note := buildComparisonNote([]DayReportEntry{
		entry("2000", "900", 2),
		entry("5000", "400", 5),
	}, rng)
	if !inPool(categoryReturns, SentimentNegative, note.Returns) {
		t.Errorf("lower returns should read negative, got %q", note.Returns)
	}
	if !inPool(categoryExpenses, SentimentNegative, note.Expenses) {
		t.Errorf("higher expenses should read negative, got %q", note.Expenses)
	}
	if !inPool(categoryJobs, SentimentNegative, note.NumberOfJobs) {
		t.Errorf("fewer jobs should read negative, got %q", note.NumberOfJobs)
	}
}

func TestBuildComparisonNoteFlatDay(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	note := buildComparisonNote([]DayReportEntry{
		entry("5000", "400", 3),
		entry("5000", "400", 3),
	}, rng)
	if !inPool(categoryReturns, SentimentNeutral, note.Returns) {
		t.Errorf("equal returns should read neutral, got %q", note.Returns)
	}
	if !inPool(categoryExpenses, SentimentNeutral, note.Expenses) {
		t.Errorf("equal expenses should read neutral, got %q", note.Expenses)
	}
	if !inPool(categoryJobs, SentimentNeutral, note.NumberOfJobs) {
		t.Errorf("equal jobs should read neutral, got %q", note.NumberOfJobs)
	}
}
