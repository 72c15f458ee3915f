package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func TestText_PlainText(t *testing.T) {
	got, err := Text("notes.txt", "text/plain", []byte("  hello\n\n   world   again  "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello world again" {
		t.Fatalf("got %q", got)
	}
}

func TestText_HTMLStripsTags(t *testing.T) {
	html := `<!DOCTYPE html><html><body><h1>Title</h1><p>Some &amp; more&nbsp;text</p></body></html>`
	got, err := Text("page.html", "text/html", []byte(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Title Some & more text" {
		t.Fatalf("got %q", got)
	}
}

func TestText_SniffsHTMLWithoutExtension(t *testing.T) {
	html := `<html><body>sniffed</body></html>`
	got, err := Text("download", "", []byte(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "sniffed" {
		t.Fatalf("got %q", got)
	}
}

func TestText_EmptyFile(t *testing.T) {
	if _, err := Text("empty.txt", "text/plain", nil); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestText_ClaimedPDFWithoutHeader(t *testing.T) {
	_, err := Text("fake.pdf", "application/pdf", []byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe})
	if err == nil {
		t.Fatalf("expected error for fake pdf")
	}
	if !strings.Contains(err.Error(), "claims pdf") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestText_DOCX(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body><w:p><w:r><w:t>Hello</w:t></w:r><w:r><w:t>docx</w:t></w:r></w:p></w:body>
</w:document>`
	data := buildZip(t, map[string]string{
		"word/document.xml": doc,
		"[Content_Types].xml": `<Types/>`,
	})

	got, err := Text("report.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello docx" {
		t.Fatalf("got %q", got)
	}
}

func TestText_PPTX(t *testing.T) {
	slide := `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <a:t>Slide one</a:t>
</p:sld>`
	data := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml": slide,
		"[Content_Types].xml":   `<Types/>`,
	})

	got, err := Text("deck.pptx", "", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Slide one" {
		t.Fatalf("got %q", got)
	}
}

func TestText_ZipThatIsNeitherDocxNorPptx(t *testing.T) {
	data := buildZip(t, map[string]string{"random.txt": "x"})
	if _, err := Text("archive.docx", "", data); err == nil {
		t.Fatalf("expected error for zip without word/ or ppt/ entries")
	}
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}
