// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-directory/internal/ingest"
	"github.com/pdiddy/research-directory/pkg/types"
)

// CSLItem is a bibliographic entry in CSL (Citation Style Language) form,
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// WriteCSL writes an expert's publications as a CSL-YAML list. Item ids
// are derived from the expert id and the publication position.
func WriteCSL(expertID string, pubs []types.Publication, w io.Writer) error {
	items := make([]CSLItem, len(pubs))
	for i, p := range pubs {
		items[i] = toCSLItem(fmt.Sprintf("%s-%d", expertID, i+1), p)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(id string, p types.Publication) CSLItem {
	item := CSLItem{
		ID:             id,
		Type:           "article-journal",
		Title:          p.Title,
		ContainerTitle: p.PublishedIn,
		URL:            p.Link,
	}
	for _, a := range splitAuthors(p.AuthorsDisplay) {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	if d := ingest.ParseDate(p.PublicationDate); d != nil {
		item.Issued = &CSLDate{DateParts: [][]int{{d.Year(), int(d.Month()), d.Day()}}}
	}
	if i := strings.Index(p.Link, "doi.org/"); i >= 0 {
		item.DOI = p.Link[i+len("doi.org/"):]
	}
	return item
}

// splitAuthors splits a display author string on semicolons when present,
// otherwise on commas.
func splitAuthors(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	sep := ","
	if strings.Contains(s, ";") {
		sep = ";"
	}
	var out []string
	for _, a := range strings.Split(s, sep) {
		a = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(a), "and "))
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// parseAuthorName splits a full name into CSL family/given parts on the
// last space. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
