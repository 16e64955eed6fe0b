package report

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
)

const junitSuite = "cwt.inject"

// writeJUnit maps Succeeded to passing cases, Ignored to skipped and Failed
// to failures. A run-level error becomes one extra errored case.
func writeJUnit(w io.Writer, r Report) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	tests := r.Counts.Total
	errs := 0
	if r.Error != "" {
		tests++
		errs = 1
	}

	suites := doc.CreateElement("testsuites")
	suite := suites.CreateElement("testsuite")
	suite.CreateAttr("name", junitSuite)
	suite.CreateAttr("tests", strconv.Itoa(tests))
	suite.CreateAttr("failures", strconv.Itoa(r.Counts.Failed))
	suite.CreateAttr("skipped", strconv.Itoa(r.Counts.Ignored))
	suite.CreateAttr("errors", strconv.Itoa(errs))

	props := suite.CreateElement("properties")
	prop := props.CreateElement("property")
	prop.CreateAttr("name", "trace_id")
	prop.CreateAttr("value", r.TraceID)

	for _, p := range r.Succeeded {
		testCase(suite, p)
	}
	for _, o := range r.Ignored {
		testCase(suite, o.Path).CreateElement("skipped").CreateAttr("message", string(o.Reason))
	}
	for _, o := range r.Failed {
		f := testCase(suite, o.Path).CreateElement("failure")
		f.CreateAttr("message", string(o.Reason))
		f.CreateAttr("type", "inject")
	}
	if r.Error != "" {
		e := testCase(suite, "run").CreateElement("error")
		e.CreateAttr("message", r.Error)
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func testCase(suite *etree.Element, path string) *etree.Element {
	tc := suite.CreateElement("testcase")
	tc.CreateAttr("classname", junitSuite)
	tc.CreateAttr("name", path)
	tc.CreateAttr("file", path)
	return tc
}
