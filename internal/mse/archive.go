package mse

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/google/renameio/v2"

	"github.com/arcanaland/cardsmith/internal/template"
)

// SetMember is the archive member holding the set file
const SetMember = "set"

// archives carry a fixed timestamp so identical input gives identical bytes
var memberTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Serialize writes the document as a zip archive: the set file first, then one member
// per distinct art blob in first-reference order
func Serialize(doc *SetDocument) ([]byte, error) {
	var set bytes.Buffer
	if err := doc.DataFile().Encode(&set); err != nil {
		return nil, fmt.Errorf("%w: encoding set file: %v", ErrArchiveWrite, err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if err := addMember(zw, SetMember, set.Bytes()); err != nil {
		return nil, err
	}
	for i, blob := range doc.Blobs {
		if err := addMember(zw, fmt.Sprintf("image%d", i+1), blob.Data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveWrite, err)
	}
	return buf.Bytes(), nil
}

func addMember(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: memberTime,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrArchiveWrite, name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrArchiveWrite, name, err)
	}
	return nil
}

// WriteArchive places data at path atomically: the archive is written to a temporary
// file next to path and renamed over it only once complete. A path of "-" writes to
// stdout instead.
func WriteArchive(path string, data []byte, stdout io.Writer) error {
	if path == "-" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrArchiveWrite, err)
		}
		return nil
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrArchiveWrite, path, err)
	}
	return nil
}

// Archive is the content of a set archive read back from disk
type Archive struct {
	Set     *DataFile
	Members map[string][]byte
	// Order lists member names as they appear in the archive
	Order []string
}

// ReadArchive opens a set archive
func ReadArchive(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %v", err)
	}

	a := &Archive{Members: make(map[string][]byte)}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open member %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read member %s: %v", f.Name, err)
		}
		a.Members[f.Name] = content
		a.Order = append(a.Order, f.Name)
	}

	set, ok := a.Members[SetMember]
	if !ok {
		return nil, fmt.Errorf("archive has no %q member", SetMember)
	}
	if a.Set, err = ParseSchema(bytes.NewReader(set), SetSchema); err != nil {
		return nil, fmt.Errorf("failed to parse set file: %v", err)
	}
	return a, nil
}

// Card is a card block read back from a set file
type Card struct {
	TemplateID string
	Fields     template.Fields
}

// Cards lists the card blocks of a set file. Blocks without their own stylesheet use
// the set's.
func (d *DataFile) Cards() []Card {
	def, _ := d.Get("stylesheet")
	var cards []Card
	for _, block := range d.All("card") {
		c := Card{TemplateID: def}
		for _, item := range block.Items {
			switch {
			case item.Sub != nil:
			case item.Key == "stylesheet":
				c.TemplateID = item.Text
			default:
				c.Fields = append(c.Fields, template.Field{Key: item.Key, Value: item.Text})
			}
		}
		cards = append(cards, c)
	}
	return cards
}
