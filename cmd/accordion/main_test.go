package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-accordion/cmd/accordion/internal/bootstrap"
)

const faqHTML = `<!doctype html>
<html><body>
<dl id="faq">
  <dt>Alpha</dt><dd>first</dd>
  <dt>Beta</dt><dd>second</dd>
</dl>
</body></html>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func quietConfig(t *testing.T, dir string) string {
	t.Helper()
	return writeFile(t, dir, "accordion.yaml", "logging:\n  provider: noop\n")
}

func TestRunOpensRequestedItems(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "faq.html", faqHTML)

	var out bytes.Buffer
	if err := run([]string{
		"-input", input,
		"-config", quietConfig(t, dir),
		"-open", "1",
		"-fragment",
	}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	rendered := out.String()
	if !strings.HasPrefix(rendered, "<dl") {
		t.Fatalf("expected fragment output, got %q", rendered)
	}
	if got := strings.Count(rendered, "jaccordion__header--opened"); got != 1 {
		t.Fatalf("expected exactly one opened header, got %d in %s", got, rendered)
	}
	if strings.Index(rendered, "jaccordion__header--opened") < strings.Index(rendered, "Alpha</dt>") {
		t.Fatalf("expected Beta to be the opened header: %s", rendered)
	}
}

func TestRunRemovesItemsAndWritesDocument(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "faq.html", faqHTML)
	output := filepath.Join(dir, "out.html")

	if err := run([]string{
		"-input", input,
		"-config", quietConfig(t, dir),
		"-remove", "0",
		"-output", output,
	}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	rendered := string(data)
	if !strings.Contains(rendered, "<html>") {
		t.Fatalf("expected full document, got %s", rendered)
	}
	if strings.Contains(rendered, "Alpha") || !strings.Contains(rendered, "Beta") {
		t.Fatalf("expected markup item 0 removed, got %s", rendered)
	}
}

func TestRunImportsStoredEntries(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "faq.html", faqHTML)

	var out bytes.Buffer
	if err := run([]string{
		"-input", input,
		"-config", quietConfig(t, dir),
		"-db", filepath.Join(dir, "entries.db"),
		"-collection", "faq",
		"-import", filepath.Join("..", "..", "internal", "markdown", "testdata", "entries"),
		"-fragment",
	}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	rendered := out.String()
	for _, header := range []string{"Alpha", "Beta", "Shipping", "Returns", "Warranty"} {
		if !strings.Contains(rendered, header) {
			t.Fatalf("expected %s in output, got %s", header, rendered)
		}
	}
	if strings.Index(rendered, "Returns") > strings.Index(rendered, "Warranty") {
		t.Fatalf("expected stored order to be kept: %s", rendered)
	}
}

func TestRunRequiresStoreForImport(t *testing.T) {
	err := run([]string{"-input", "faq.html", "-import", "entries"}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "-import requires") {
		t.Fatalf("expected import flag validation error, got %v", err)
	}
}

func TestRunReportsBootstrapFailure(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	boom := errors.New("boom")
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return nil, boom
	}

	err := run([]string{"-input", "faq.html"}, &bytes.Buffer{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected bootstrap error, got %v", err)
	}
}

func TestRunRejectsUnknownItem(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "faq.html", faqHTML)

	err := run([]string{
		"-input", input,
		"-config", quietConfig(t, dir),
		"-toggle", "9",
	}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "No item found with id 9") {
		t.Fatalf("expected not found error, got %v", err)
	}
}
