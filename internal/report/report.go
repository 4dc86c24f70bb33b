// Package report renders upload results to the operator's console.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"uploadtest/internal/uploader"
)

// Printer writes human readable output. It is not a logger: every line is
// meant for the person running the smoke test.
type Printer struct {
	Out io.Writer
}

// Line prints a formatted line.
func (p Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.Out, format+"\n", args...)
}

// Response prints the status and body, then the verdict. It reports whether the
// upload passed. A body labelled JSON that does not parse yields an error before
// any verdict; a 200 body that is not a JSON object yields one after it.
func (p Printer) Response(resp *uploader.Response) (bool, error) {
	p.Line("\nResponse Status: %d", resp.StatusCode)
	p.Line("\nResponse Body:")

	if resp.IsJSON() {
		pretty, err := indent(resp.Body)
		if err != nil {
			return false, fmt.Errorf("decode response body: %w", err)
		}
		p.Line("%s", pretty)
	} else {
		p.Line("%s", resp.Body)
	}

	if resp.StatusCode != http.StatusOK {
		p.Line("\n❌ Test FAILED!")
		return false, nil
	}

	p.Line("\n✅ Test PASSED! Document upload working correctly.")

	var data map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return true, fmt.Errorf("decode response body: %w", err)
	}
	id, ok := data["applicationId"]
	if !ok {
		return true, nil
	}
	p.Line("\nApplication ID: %s", scalar(id))
	count := "0"
	if n, ok := data["documentsUploaded"]; ok {
		count = scalar(n)
	}
	p.Line("Documents uploaded: %s", count)

	if details, ok := data["documentDetails"]; ok {
		pretty, err := indent(details)
		if err != nil {
			return true, fmt.Errorf("decode document details: %w", err)
		}
		p.Line("\nDocument details:")
		p.Line("%s", pretty)
	}
	return true, nil
}

// RequestFailed reports a transport failure with a hint to start the dev server.
func (p Printer) RequestFailed(err error) {
	p.Line("\n❌ Request failed: %v", err)
	p.Line("\nMake sure the development server is running:")
	p.Line("npm run dev")
}

// Failed reports any other error.
func (p Printer) Failed(err error) {
	p.Line("\n❌ Error: %v", err)
}

// indent re-indents JSON with two spaces, keeping the server's key order.
func indent(raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// scalar renders a JSON value the way it reads: strings unquoted, the rest verbatim.
func scalar(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
