package mse

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Item is one key of a data file. It holds either a text value or a nested data file.
type Item struct {
	Key  string
	Text string
	Sub  *DataFile
}

// DataFile is the nested key/value format MSE stores sets in. Keys keep their order and
// may repeat, as "card" does.
type DataFile struct {
	Items []Item
}

// Add appends a text value
func (d *DataFile) Add(key, text string) {
	d.Items = append(d.Items, Item{Key: key, Text: text})
}

// AddSub appends a nested data file and returns it
func (d *DataFile) AddSub(key string) *DataFile {
	sub := &DataFile{}
	d.Items = append(d.Items, Item{Key: key, Sub: sub})
	return sub
}

// Get returns the text value of the first item with the key
func (d *DataFile) Get(key string) (string, bool) {
	for _, item := range d.Items {
		if item.Key == key && item.Sub == nil {
			return item.Text, true
		}
	}
	return "", false
}

// Sub returns the first nested data file with the key
func (d *DataFile) Sub(key string) *DataFile {
	for _, item := range d.Items {
		if item.Key == key && item.Sub != nil {
			return item.Sub
		}
	}
	return nil
}

// All returns every nested data file with the key, in order
func (d *DataFile) All(key string) []*DataFile {
	var subs []*DataFile
	for _, item := range d.Items {
		if item.Key == key && item.Sub != nil {
			subs = append(subs, item.Sub)
		}
	}
	return subs
}

// Encode writes the data file with tab indentation and CRLF line endings. Text
// containing newlines is written as an indented block below its key.
func (d *DataFile) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	d.encode(bw, 0)
	return bw.Flush()
}

func (d *DataFile) encode(w *bufio.Writer, indent int) {
	tabs := strings.Repeat("\t", indent)
	for _, item := range d.Items {
		switch {
		case item.Sub != nil:
			fmt.Fprintf(w, "%s%s:\r\n", tabs, item.Key)
			item.Sub.encode(w, indent+1)
		case strings.Contains(item.Text, "\n"):
			fmt.Fprintf(w, "%s%s:\r\n", tabs, item.Key)
			for _, line := range strings.Split(item.Text, "\n") {
				fmt.Fprintf(w, "%s\t%s\r\n", tabs, line)
			}
		default:
			fmt.Fprintf(w, "%s%s: %s\r\n", tabs, item.Key, item.Text)
		}
	}
}

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9 _-]*$`)

// Schema names the keys of a data file that hold nested data files, with the schema of
// each. The key "*" stands for any key. Every other key holds text.
type Schema map[string]Schema

// SetSchema is the layout of a set file
var SetSchema = Schema{
	"set info":        {},
	"styling":         {"*": {}},
	"card":            {"extra data": {"*": {}}},
	"version control": {},
}

// Parse reads a data file written by Encode. A key followed by an indented block holds
// a nested data file when every line of the block is itself a key, and multiline text
// otherwise.
func Parse(r io.Reader) (*DataFile, error) {
	return ParseSchema(r, nil)
}

// ParseSchema reads a data file whose nested keys are known. Indented blocks below any
// other key are read as text, even when their lines look like keys.
func ParseSchema(r io.Reader, schema Schema) (*DataFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	d, pos, err := parseBlock(lines, 0, 0, schema)
	if err != nil {
		return nil, err
	}
	if pos != len(lines) {
		return nil, fmt.Errorf("line %d: unexpected indentation", pos+1)
	}
	return d, nil
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, "\t"))
}

func parseBlock(lines []string, pos, indent int, schema Schema) (*DataFile, int, error) {
	d := &DataFile{}
	for pos < len(lines) {
		line := lines[pos]
		depth := indentOf(line)
		if depth < indent {
			break
		}
		if depth > indent {
			return nil, pos, fmt.Errorf("line %d: unexpected indentation", pos+1)
		}
		content := line[indent:]

		if key, text, ok := strings.Cut(content, ": "); ok {
			d.Add(key, text)
			pos++
			continue
		}
		if !strings.HasSuffix(content, ":") {
			return nil, pos, fmt.Errorf("line %d: expected key: %q", pos+1, content)
		}
		key := strings.TrimSuffix(content, ":")
		pos++

		end := pos
		for end < len(lines) && indentOf(lines[end]) > indent {
			end++
		}
		block := lines[pos:end]

		nested, ok := schema.lookup(key)
		if schema == nil {
			ok = isSubfile(block, indent+1)
		}
		if ok {
			sub, next, err := parseBlock(lines[:end], pos, indent+1, nested)
			if err != nil {
				return nil, next, err
			}
			d.Items = append(d.Items, Item{Key: key, Sub: sub})
		} else {
			text := make([]string, len(block))
			for i, l := range block {
				text[i] = l[indent+1:]
			}
			d.Add(key, strings.Join(text, "\n"))
		}
		pos = end
	}
	return d, pos, nil
}

func (s Schema) lookup(key string) (Schema, bool) {
	if nested, ok := s[key]; ok {
		return nested, true
	}
	nested, ok := s["*"]
	return nested, ok
}

func isSubfile(block []string, indent int) bool {
	for _, line := range block {
		if indentOf(line) != indent {
			continue
		}
		content := line[indent:]
		key, _, ok := strings.Cut(content, ": ")
		if !ok {
			if !strings.HasSuffix(content, ":") {
				return false
			}
			key = strings.TrimSuffix(content, ":")
		}
		if !keyPattern.MatchString(key) {
			return false
		}
	}
	return true
}
