// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"math"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// blockEnd lists elements whose boundaries separate words.
var blockEnd = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Li: true, atom.Section: true,
	atom.Article: true, atom.Tr: true, atom.Td: true, atom.Th: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Br: true, atom.Ul: true, atom.Ol: true,
}

var jammedSentence = regexp.MustCompile(`([.!?])([A-Z])`)

// Description flattens an HTML description to a single line of text. Tags
// are removed, block boundaries become spaces, entities are decoded, and
// sentences run together without a space ("year.Next") are separated.
func Description(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			text := strings.Join(strings.Fields(b.String()), " ")
			return jammedSentence.ReplaceAllString(text, "$1 $2")
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch a := atom.Lookup(name); {
			case a == atom.Script || a == atom.Style:
				skip++
			case blockEnd[a]:
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch a := atom.Lookup(name); {
			case (a == atom.Script || a == atom.Style) && skip > 0:
				skip--
			case blockEnd[a]:
				b.WriteByte(' ')
			}
		}
	}
}

var printer = message.NewPrinter(language.AmericanEnglish)

// Money formats a dollar amount rounded to whole dollars with digit
// grouping, or "N/A" when absent.
func Money(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return "N/A"
	}
	n := int64(math.Round(*v))
	if n < 0 {
		return printer.Sprintf("-$%d", -n)
	}
	return printer.Sprintf("$%d", n)
}

// Date formats a date as "Jan 2, 2006", or "N/A" when absent.
func Date(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("Jan 2, 2006")
}
