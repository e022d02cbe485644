package diagfmt

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestJUnitReport(t *testing.T) {
	var sb strings.Builder
	if err := JUnit(&sb, sampleBatch(), JUnitMeta{SuiteName: "validate"}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "<testsuite") {
		t.Fatalf("missing testsuite element:\n%s", out)
	}
	if !strings.Contains(out, "<failure") {
		t.Fatalf("missing failure element for the broken document:\n%s", out)
	}

	var decoded junitSuite
	if err := xml.Unmarshal([]byte(out[len(xml.Header):]), &decoded); err != nil {
		t.Fatalf("report is not valid XML: %v", err)
	}
	if decoded.Tests != 2 || decoded.Failures != 1 {
		t.Fatalf("tests=%d failures=%d, want 2/1", decoded.Tests, decoded.Failures)
	}
	if len(decoded.Cases) != 2 {
		t.Fatalf("cases = %d", len(decoded.Cases))
	}
	failing := decoded.Cases[0]
	if failing.Name != "bad.sysml" || len(failing.Failures) != 1 {
		t.Fatalf("failing case = %+v", failing)
	}
	if failing.Failures[0].Type != "SEM3001" {
		t.Fatalf("failure type = %q", failing.Failures[0].Type)
	}
	if !strings.Contains(failing.SystemOut, "declares no members") {
		t.Fatalf("warning missing from system-out: %q", failing.SystemOut)
	}
	if len(decoded.Cases[1].Failures) != 0 {
		t.Fatalf("clean case has failures: %+v", decoded.Cases[1])
	}
	if decoded.Properties != nil {
		t.Fatalf("no properties expected without tool version: %+v", decoded.Properties)
	}
}

func TestJUnitToolVersionProperty(t *testing.T) {
	var sb strings.Builder
	meta := JUnitMeta{SuiteName: "validate", ToolVersion: "1.2.3"}
	if err := JUnit(&sb, sampleBatch(), meta); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := sb.String()

	var decoded junitSuite
	if err := xml.Unmarshal([]byte(out[len(xml.Header):]), &decoded); err != nil {
		t.Fatalf("report is not valid XML: %v", err)
	}
	if decoded.Properties == nil || len(decoded.Properties.Items) != 1 {
		t.Fatalf("missing properties element:\n%s", out)
	}
	prop := decoded.Properties.Items[0]
	if prop.Name != "tool.version" || prop.Value != "1.2.3" {
		t.Fatalf("property = %+v", prop)
	}
}
