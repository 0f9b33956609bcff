package output

import (
	"testing"

	"github.com/ccollicutt/textgrab/pkg/ocr"
	"github.com/ccollicutt/textgrab/pkg/splitter"
)

func splitterEmpty() *splitter.Result {
	return splitter.Split("")
}

func TestSplitReport_HasResults(t *testing.T) {
	if NewSplitReport(splitterEmpty(), Metadata{}).HasResults() {
		t.Error("empty split should have no results")
	}
	if !createSplitReport().HasResults() {
		t.Error("non-empty split should have results")
	}
}

func TestReports_UniqueIDs(t *testing.T) {
	a := createSplitReport()
	b := createSplitReport()
	if a.ReportID() == b.ReportID() {
		t.Errorf("report IDs collide: %s", a.ReportID())
	}
}

func TestReports_Kinds(t *testing.T) {
	if createSplitReport().Kind() != KindSplit {
		t.Error("split kind")
	}
	if createOCRReport().Kind() != KindOCR {
		t.Error("ocr kind")
	}
	if createInspectReport(t).Kind() != KindInspect {
		t.Error("inspect kind")
	}
}

func TestNewOCRReport_Summary(t *testing.T) {
	r := NewOCRReport(ocr.Input{ID: "a.png"}, &ocr.Result{PlainText: ""}, Metadata{})
	if r.HasResults() {
		t.Error("empty text should have no results")
	}
	if r.Summary.Lines != 0 || r.Summary.Characters != 0 {
		t.Errorf("summary = %+v", r.Summary)
	}

	r = NewOCRReport(ocr.Input{ID: "a.png"}, &ocr.Result{PlainText: "héllo wörld", Words: 7}, Metadata{})
	if r.Summary.Characters != 11 {
		t.Errorf("Characters = %d, want 11 runes", r.Summary.Characters)
	}
	if r.Summary.Words != 7 {
		t.Errorf("Words = %d, want engine count 7", r.Summary.Words)
	}
}

func TestInspectReport_HasIssues(t *testing.T) {
	if !createInspectReport(t).HasIssues() {
		t.Error("expected issues for irregular input")
	}
}

func TestSplitReport_ResultAfterDecode(t *testing.T) {
	r := &SplitReport{Column1: []string{"a"}, Column2: []string{"1"}}
	if r.Result().Len() != 1 {
		t.Errorf("Result().Len() = %d, want 1", r.Result().Len())
	}
}
