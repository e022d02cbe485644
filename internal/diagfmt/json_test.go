package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONReportShape(t *testing.T) {
	var sb strings.Builder
	if err := JSON(&sb, sampleBatch(), JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded BatchJSON
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}

	if len(decoded.Documents) != 2 {
		t.Fatalf("documents = %d, want 2", len(decoded.Documents))
	}
	bad := decoded.Documents[0]
	if !bad.HasErrors || bad.File != "bad.sysml" || bad.State != "loaded" {
		t.Fatalf("bad document = %+v", bad)
	}
	if len(bad.Diagnostics) != 2 {
		t.Fatalf("diagnostics = %d, want 2", len(bad.Diagnostics))
	}
	d := bad.Diagnostics[0]
	if d.Code != "SEM3001" || d.Severity != "error" || d.Origin != "semantic" {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 28 {
		t.Fatalf("location = %+v", d.Location)
	}

	good := decoded.Documents[1]
	if good.HasErrors || len(good.Diagnostics) != 0 {
		t.Fatalf("good document = %+v", good)
	}

	if len(decoded.Warnings) != 1 {
		t.Fatalf("batch warnings = %d, want 1", len(decoded.Warnings))
	}
	if decoded.Errors != 1 || decoded.Warning != 2 {
		t.Fatalf("counts = %d errors, %d warnings", decoded.Errors, decoded.Warning)
	}
}

func TestJSONOmitsPositionsByDefault(t *testing.T) {
	out := BuildBatchOutput(sampleBatch(), JSONOpts{})
	loc := out.Documents[0].Diagnostics[0].Location
	if loc.StartLine != 0 || loc.StartCol != 0 {
		t.Fatalf("positions included without IncludePositions: %+v", loc)
	}
	if loc.StartByte != 27 || loc.EndByte != 32 {
		t.Fatalf("byte offsets missing: %+v", loc)
	}
}
