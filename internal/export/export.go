// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pdiddy/research-directory/internal/citation"
	"github.com/pdiddy/research-directory/internal/ingest"
	"github.com/pdiddy/research-directory/pkg/types"
)

const listQuery = `
SELECT
	r.employee_id AS id,
	COALESCE(e.first_name || ' ' || e.last_name, e.email, r.employee_id) AS name,
	e.title AS title,
	c.name AS college,
	d.name AS department,
	'' AS degree,
	(SELECT COUNT(*) FROM papers_researchers pr WHERE pr.researcher_id = r.employee_id) AS publication_count,
	(SELECT COUNT(DISTINCT pk.keyword)
	   FROM papers_researchers pr
	   JOIN paper_keywords pk ON pk.paper_id = pr.paper_id
	  WHERE pr.researcher_id = r.employee_id) AS keyword_count
FROM users_researcher r
JOIN users_employee e ON e.auid = r.employee_id
LEFT JOIN users_college c ON c.id = e.college_id
LEFT JOIN users_department d ON d.id = e.department_id
ORDER BY e.last_name, e.first_name`

const expertiseQuery = `SELECT researcher_id, topic FROM researcher_expertise ORDER BY rowid`

const keywordQuery = `
SELECT pr.researcher_id, pk.keyword
FROM papers_researchers pr
JOIN paper_keywords pk ON pk.paper_id = pr.paper_id
ORDER BY pr.rowid, pk.rowid`

const publicationQuery = `
SELECT pr.researcher_id,
	p.title, p.publication_date, p.link, p.authors_display, p.published_in,
	p.total_citations, p.citation_per_year
FROM papers_researchers pr
JOIN papers p ON p.id = pr.paper_id
ORDER BY pr.researcher_id, p.publication_date DESC`

type expertRow struct {
	ID               string         `db:"id"`
	Name             sql.NullString `db:"name"`
	Title            sql.NullString `db:"title"`
	College          sql.NullString `db:"college"`
	Department       sql.NullString `db:"department"`
	Degree           string         `db:"degree"`
	PublicationCount int            `db:"publication_count"`
	KeywordCount     int            `db:"keyword_count"`
}

type topicRow struct {
	ResearcherID string         `db:"researcher_id"`
	Topic        sql.NullString `db:"topic"`
}

type keywordRow struct {
	ResearcherID string         `db:"researcher_id"`
	Keyword      sql.NullString `db:"keyword"`
}

type publicationRow struct {
	ResearcherID    string         `db:"researcher_id"`
	Title           sql.NullString `db:"title"`
	PublicationDate sql.NullString `db:"publication_date"`
	Link            sql.NullString `db:"link"`
	AuthorsDisplay  sql.NullString `db:"authors_display"`
	PublishedIn     sql.NullString `db:"published_in"`
	TotalCitations  sql.NullInt64  `db:"total_citations"`
	CitationPerYear sql.NullString `db:"citation_per_year"`
}

// ListEntry is one record of the experts list document. CitationsPerYear
// is keyed by year so the list stays compact.
type ListEntry struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Title            string         `json:"title"`
	College          string         `json:"college"`
	Department       string         `json:"department"`
	Degree           string         `json:"degree"`
	PublicationCount int            `json:"publicationCount"`
	KeywordCount     int            `json:"keywordCount"`
	TotalCitations   int            `json:"totalCitations"`
	CitationsPerYear map[string]int `json:"citationsPerYear"`
}

// Detail is one value of the expert details document.
type Detail struct {
	Name         string              `json:"name"`
	Title        string              `json:"title"`
	College      string              `json:"college"`
	Department   string              `json:"department"`
	Degree       string              `json:"degree"`
	Expertise    []string            `json:"expertise"`
	Keywords     []string            `json:"keywords"`
	Publications []types.Publication `json:"publications"`
}

// Summary reports what an export wrote.
type Summary struct {
	Experts int      `json:"experts"`
	Similar int      `json:"similar"`
	Files   []string `json:"files"`
}

// Export reads the database and writes the experts list, expert details,
// and similar-profile documents into outDir. Progress lines go to w.
func (s *Store) Export(ctx context.Context, outDir string, w io.Writer) (Summary, error) {
	var sum Summary
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return sum, fmt.Errorf("creating output directory: %w", err)
	}

	list, err := s.experts(ctx)
	if err != nil {
		return sum, err
	}
	details, err := s.details(ctx, list)
	if err != nil {
		return sum, err
	}
	similar, err := s.similar(ctx)
	if err != nil {
		return sum, err
	}

	writes := []struct {
		name string
		v    any
		note string
	}{
		{ingest.DefaultExpertsFile, list, fmt.Sprintf("%d experts", len(list))},
		{ingest.DefaultExpertDetailsFile, details, "detail view for all experts, with publications"},
		{ingest.DefaultSimilarFile, similar, fmt.Sprintf("%d experts with similar profiles", len(similar))},
	}
	for _, wr := range writes {
		path := filepath.Join(outDir, wr.name)
		if err := writeJSONFile(path, wr.v); err != nil {
			return sum, err
		}
		fmt.Fprintf(w, "Wrote %s (%s)\n", path, wr.note)
		sum.Files = append(sum.Files, path)
	}

	sum.Experts = len(list)
	sum.Similar = len(similar)
	return sum, nil
}

func (s *Store) experts(ctx context.Context) ([]ListEntry, error) {
	var rows []expertRow
	if err := s.db.SelectContext(ctx, &rows, listQuery); err != nil {
		return nil, fmt.Errorf("querying experts: %w", err)
	}
	list := make([]ListEntry, 0, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(r.Name.String)
		if name == "" {
			name = "Unnamed"
		}
		list = append(list, ListEntry{
			ID:               strings.TrimSpace(r.ID),
			Name:             name,
			Title:            r.Title.String,
			College:          r.College.String,
			Department:       r.Department.String,
			Degree:           r.Degree,
			PublicationCount: r.PublicationCount,
			KeywordCount:     r.KeywordCount,
			CitationsPerYear: map[string]int{},
		})
	}
	return list, nil
}

// details builds the detail document and folds publication citations
// into the matching list entries.
func (s *Store) details(ctx context.Context, list []ListEntry) (map[string]*Detail, error) {
	byID := make(map[string]*Detail, len(list))
	entry := make(map[string]int, len(list))
	for i, e := range list {
		byID[e.ID] = &Detail{
			Name:         e.Name,
			Title:        e.Title,
			College:      e.College,
			Department:   e.Department,
			Degree:       e.Degree,
			Expertise:    []string{},
			Keywords:     []string{},
			Publications: []types.Publication{},
		}
		entry[e.ID] = i
	}

	var topics []topicRow
	if err := s.db.SelectContext(ctx, &topics, expertiseQuery); err != nil {
		return nil, fmt.Errorf("querying expertise: %w", err)
	}
	for _, t := range topics {
		if d, ok := byID[strings.TrimSpace(t.ResearcherID)]; ok && t.Topic.Valid {
			d.Expertise = append(d.Expertise, t.Topic.String)
		}
	}

	var keywords []keywordRow
	if err := s.db.SelectContext(ctx, &keywords, keywordQuery); err != nil {
		return nil, fmt.Errorf("querying keywords: %w", err)
	}
	for _, k := range keywords {
		d, ok := byID[strings.TrimSpace(k.ResearcherID)]
		if !ok || !k.Keyword.Valid || slices.Contains(d.Keywords, k.Keyword.String) {
			continue
		}
		d.Keywords = append(d.Keywords, k.Keyword.String)
	}

	var pubs []publicationRow
	if err := s.db.SelectContext(ctx, &pubs, publicationQuery); err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	years := make(map[string]map[int]int)
	for _, p := range pubs {
		id := strings.TrimSpace(p.ResearcherID)
		d, ok := byID[id]
		if !ok {
			continue
		}
		hist := ingest.ParseHistory(p.CitationPerYear.String)
		if hist == nil {
			hist = types.CitationHistory{}
		}
		pub := types.Publication{
			Title:            p.Title.String,
			PublicationDate:  dateOnly(p.PublicationDate.String),
			Link:             p.Link.String,
			TotalCitations:   int(p.TotalCitations.Int64),
			CitationsPerYear: hist,
			AuthorsDisplay:   p.AuthorsDisplay.String,
			PublishedIn:      p.PublishedIn.String,
		}
		d.Publications = append(d.Publications, pub)

		e := &list[entry[id]]
		e.TotalCitations += pub.TotalCitations
		years[id] = citation.Accumulate(years[id], hist)
	}
	for id, counts := range years {
		e := &list[entry[id]]
		for y, c := range counts {
			e.CitationsPerYear[strconv.Itoa(y)] = c
		}
	}
	return byID, nil
}

func dateOnly(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[:10]
	}
	return s
}

var (
	similarTables = []string{"users_similarprofile", "users_similarprofiles"}
	idColumn      = regexp.MustCompile(`researcher_id|user_id|auid|faculty_id|source`)
	scoreColumn   = regexp.MustCompile(`(?i)^score$|similarity`)
	targetColumn  = regexp.MustCompile(`similar|target|match|other|_id|auid`)
	scoreValue    = regexp.MustCompile(`^\d*\.?\d+$`)
)

// similar reads the first similar-profile table present. The source and
// target columns are picked by name, and values that look like scores
// rather than researcher ids are skipped.
func (s *Store) similar(ctx context.Context) (map[string][]string, error) {
	out := map[string][]string{}
	for _, table := range similarTables {
		ok, err := s.hasTable(ctx, table)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		var cols []Column
		if err := s.db.SelectContext(ctx, &cols, `SELECT cid, name, type, "notnull", dflt_value, pk FROM pragma_table_info(?)`, table); err != nil {
			return nil, fmt.Errorf("describing %s: %w", table, err)
		}
		src, dst, ok := similarColumns(cols)
		if !ok {
			continue
		}

		q := fmt.Sprintf(`SELECT CAST(%s AS TEXT), CAST(%s AS TEXT) FROM %s ORDER BY rowid`,
			quoteIdent(src), quoteIdent(dst), quoteIdent(table))
		rows, err := s.db.QueryxContext(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("querying %s: %w", table, err)
		}
		for rows.Next() {
			var id, other sql.NullString
			if err := rows.Scan(&id, &other); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning %s: %w", table, err)
			}
			a, b := strings.TrimSpace(id.String), strings.TrimSpace(other.String)
			if a == "" || b == "" || a == b {
				continue
			}
			if scoreValue.MatchString(b) && len(b) <= 5 {
				continue
			}
			if !slices.Contains(out[a], b) {
				out[a] = append(out[a], b)
			}
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", table, err)
		}
		break
	}
	return out, nil
}

// similarColumns picks the source id column and the similar id column.
func similarColumns(cols []Column) (src, dst string, ok bool) {
	if len(cols) < 2 {
		return "", "", false
	}
	src = cols[0].Name
	for _, c := range cols {
		if idColumn.MatchString(c.Name) {
			src = c.Name
			break
		}
	}
	var candidates []string
	for _, c := range cols {
		if c.Name != src && !scoreColumn.MatchString(c.Name) {
			candidates = append(candidates, c.Name)
		}
	}
	switch {
	case len(candidates) == 0:
		dst = cols[1].Name
	default:
		dst = candidates[0]
		for _, c := range candidates {
			if targetColumn.MatchString(c) {
				dst = c
				break
			}
		}
	}
	return src, dst, src != dst
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// writeJSONFile writes v as indented JSON to a temp file beside path and
// renames it into place.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
