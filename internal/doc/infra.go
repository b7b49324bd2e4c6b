package doc

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

// ParagraphExtractor returns the text of every top-level body paragraph,
// each followed by a newline. Tables, headers and text boxes are skipped.
type ParagraphExtractor struct{}

func NewParagraphExtractor() *ParagraphExtractor {
	return &ParagraphExtractor{}
}

func (e *ParagraphExtractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", errors.New("docx has no " + documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", documentPart, err)
	}
	defer rc.Close()

	paragraphs, err := readParagraphs(ctx, rc)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, p := range paragraphs {
		b.WriteString(p)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// readParagraphs walks document.xml and collects the run text of each w:p
// that is a direct child of w:body.
func readParagraphs(ctx context.Context, r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		stack []string
		out   []string
		cur   strings.Builder
		inPar bool
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if name == "p" && parentIs(stack, "body") {
				inPar = true
				cur.Reset()
			}
			if inPar && inRun(stack) {
				switch name {
				case "tab":
					cur.WriteString("\t")
				case "br":
					if isLineBreak(t) {
						cur.WriteString("\n")
					}
				case "cr":
					cur.WriteString("\n")
				}
			}
			stack = append(stack, name)

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			stack = stack[:len(stack)-1]
			if t.Name.Local == "p" && inPar && parentIs(stack, "body") {
				out = append(out, cur.String())
				inPar = false
			}

		case xml.CharData:
			if inPar && len(stack) > 0 && stack[len(stack)-1] == "t" && inRun(stack[:len(stack)-1]) {
				cur.Write(t)
			}
		}
	}

	return out, nil
}

func parentIs(stack []string, name string) bool {
	return len(stack) > 0 && stack[len(stack)-1] == name
}

// inRun reports whether the top of the stack is a run of a body paragraph,
// either directly or through a hyperlink.
func inRun(stack []string) bool {
	n := len(stack)
	if n < 3 || stack[n-1] != "r" {
		return false
	}
	if stack[n-2] == "p" && stack[n-3] == "body" {
		return true
	}
	return n >= 4 && stack[n-2] == "hyperlink" && stack[n-3] == "p" && stack[n-4] == "body"
}

// isLineBreak reports whether a w:br is a text-wrapping break. Page and
// column breaks carry no text.
func isLineBreak(br xml.StartElement) bool {
	for _, a := range br.Attr {
		if a.Name.Local == "type" {
			return a.Value == "" || a.Value == "textWrapping"
		}
	}
	return true
}
