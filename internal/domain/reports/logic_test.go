package reports

import (
	"strings"
	"testing"
)

func TestBuildDashboard(t *testing.T) {
	stats := []AppraisalStat{
		{EmployeeID: "e1", EmployeeName: "Ana", Score: 400, MaxScore: 500},
		{EmployeeID: "e2", EmployeeName: "Ben", Score: 300, MaxScore: 500},
		{EmployeeID: "e3", EmployeeName: "Cy", Score: 0, MaxScore: 0},
	}
	d := BuildDashboard("p1", 10, map[string]int{"completed": 4, "pending": 6}, stats)

	if d.AssignmentsTotal != 10 {
		t.Fatalf("assignments total = %d, want 10", d.AssignmentsTotal)
	}
	if d.AppraisalsTotal != 3 {
		t.Fatalf("appraisals total = %d, want 3", d.AppraisalsTotal)
	}
	if d.CompletionRate != 0.4 {
		t.Fatalf("completion rate = %v, want 0.4", d.CompletionRate)
	}
	// zero-max appraisal is excluded from the average: (80 + 60) / 2
	if d.AveragePercentage != 70 {
		t.Fatalf("average percentage = %v, want 70", d.AveragePercentage)
	}
}

func TestBuildDashboardEmpty(t *testing.T) {
	d := BuildDashboard("p1", 0, nil, nil)
	if d.CompletionRate != 0 || d.AveragePercentage != 0 {
		t.Fatalf("empty dashboard has nonzero rates: %+v", d)
	}
	if d.AssignmentsByStat == nil {
		t.Fatal("status map should be non-nil for JSON output")
	}
}

func TestBuildRankingsOrderAndThreshold(t *testing.T) {
	stats := []AppraisalStat{
		{EmployeeID: "e1", EmployeeName: "Ana", Score: 450, MaxScore: 500},
		{EmployeeID: "e1", EmployeeName: "Ana", Score: 350, MaxScore: 500},
		{EmployeeID: "e2", EmployeeName: "Ben", Score: 500, MaxScore: 500},
		{EmployeeID: "e2", EmployeeName: "Ben", Score: 400, MaxScore: 500},
		{EmployeeID: "e3", EmployeeName: "Cy", Score: 500, MaxScore: 500},
	}
	rankings := BuildRankings(stats, 2)

	if len(rankings) != 2 {
		t.Fatalf("got %d rankings, want 2 (Cy below threshold)", len(rankings))
	}
	if rankings[0].EmployeeID != "e2" || rankings[0].Rank != 1 {
		t.Fatalf("first ranking = %+v, want Ben at rank 1", rankings[0])
	}
	if rankings[0].AveragePercentage != 90 {
		t.Fatalf("Ben average = %v, want 90", rankings[0].AveragePercentage)
	}
	if rankings[1].EmployeeID != "e1" || rankings[1].AveragePercentage != 80 {
		t.Fatalf("second ranking = %+v, want Ana at 80", rankings[1])
	}
}

func TestBuildRankingsTieBreaksByName(t *testing.T) {
	stats := []AppraisalStat{
		{EmployeeID: "e2", EmployeeName: "Ben", Score: 400, MaxScore: 500},
		{EmployeeID: "e1", EmployeeName: "Ana", Score: 400, MaxScore: 500},
	}
	rankings := BuildRankings(stats, 1)
	if len(rankings) != 2 {
		t.Fatalf("got %d rankings, want 2", len(rankings))
	}
	if rankings[0].EmployeeName != "Ana" || rankings[1].EmployeeName != "Ben" {
		t.Fatalf("tie not broken by name: %+v", rankings)
	}
}

func TestBuildRankingsSkipsZeroMax(t *testing.T) {
	stats := []AppraisalStat{
		{EmployeeID: "e1", EmployeeName: "Ana", Score: 0, MaxScore: 0},
	}
	if got := BuildRankings(stats, 1); len(got) != 0 {
		t.Fatalf("zero-max appraisals should not rank, got %+v", got)
	}
}

func TestNarrativeSummary(t *testing.T) {
	cases := []struct {
		avg   float64
		count int
		want  string
	}{
		{95, 3, "outstanding"},
		{80, 2, "strong"},
		{65, 2, "solid"},
		{50, 1, "room for improvement"},
		{20, 1, "needs significant improvement"},
		{0, 0, "no completed appraisals"},
	}
	for _, c := range cases {
		got := NarrativeSummary("Ana", "Q1 2026", c.avg, c.count)
		if !strings.Contains(got, c.want) {
			t.Errorf("summary for avg %v count %d = %q, want substring %q", c.avg, c.count, got, c.want)
		}
	}
}

func TestNarrativeSummarySingular(t *testing.T) {
	got := NarrativeSummary("Ana", "Q1", 80, 1)
	if !strings.Contains(got, "1 appraisal in") {
		t.Fatalf("singular form missing: %q", got)
	}
}
