package diagfmt

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"sysmltool/internal/diag"
	"sysmltool/internal/driver"
)

type junitFailure struct {
	XMLName xml.Name `xml:"failure"`
	Message string   `xml:"message,attr"`
	Type    string   `xml:"type,attr"`
	Body    string   `xml:",chardata"`
}

type junitTestCase struct {
	XMLName   xml.Name       `xml:"testcase"`
	Name      string         `xml:"name,attr"`
	ClassName string         `xml:"classname,attr"`
	Failures  []junitFailure `xml:"failure"`
	SystemOut string         `xml:"system-out,omitempty"`
}

type junitProperty struct {
	XMLName xml.Name `xml:"property"`
	Name    string   `xml:"name,attr"`
	Value   string   `xml:"value,attr"`
}

type junitProperties struct {
	XMLName xml.Name        `xml:"properties"`
	Items   []junitProperty `xml:"property"`
}

type junitSuite struct {
	XMLName    xml.Name         `xml:"testsuite"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Properties *junitProperties `xml:"properties,omitempty"`
	Cases      []junitTestCase  `xml:"testcase"`
}

// JUnit writes a CI-consumable test report: one testsuite per batch,
// one testcase per requested document, a <failure> element per error
// diagnostic. Warnings are folded into the case's system-out so they
// stay visible without failing the build; the tool version renders as a
// suite property.
func JUnit(w io.Writer, batch *driver.Batch, meta JUnitMeta) error {
	suite := junitSuite{
		Name:  meta.SuiteName,
		Tests: len(batch.Results),
		Cases: make([]junitTestCase, 0, len(batch.Results)),
	}
	if suite.Name == "" {
		suite.Name = "validate"
	}
	if meta.ToolVersion != "" {
		suite.Properties = &junitProperties{
			Items: []junitProperty{{Name: "tool.version", Value: meta.ToolVersion}},
		}
	}

	for i := range batch.Results {
		res := &batch.Results[i]
		tc := junitTestCase{
			Name:      res.Path,
			ClassName: suite.Name,
		}
		var warnings []string
		for _, d := range res.Diagnostics {
			if d.Severity == diag.SevError {
				tc.Failures = append(tc.Failures, junitFailure{
					Message: d.Message,
					Type:    d.Code.ID(),
					Body:    diagLine(batch.Files, d, PathModeAuto),
				})
				continue
			}
			warnings = append(warnings, diagLine(batch.Files, d, PathModeAuto))
		}
		if len(tc.Failures) > 0 {
			suite.Failures++
		}
		tc.SystemOut = strings.Join(warnings, "\n")
		suite.Cases = append(suite.Cases, tc)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(suite); err != nil {
		return fmt.Errorf("encode junit report: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
