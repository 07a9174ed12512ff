// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pdiddy/research-directory/internal/filter"
	"github.com/pdiddy/research-directory/internal/format"
	"github.com/pdiddy/research-directory/internal/order"
	"github.com/pdiddy/research-directory/internal/query"
	"github.com/pdiddy/research-directory/pkg/types"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	st := s.holder.Load()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"experts":       len(st.Snapshot.Experts),
		"opportunities": len(st.Snapshot.Opportunities),
		"agencies":      st.Agencies.Len(),
		"loaded_at":     st.Snapshot.LoadedAt.Format(time.RFC3339),
	})
}

func (s *Server) listExperts(w http.ResponseWriter, r *http.Request) {
	p := &params{q: r.URL.Query()}
	req := query.ExpertRequest{
		ExpertCriteria: filter.ExpertCriteria{
			Search:       p.str("search"),
			Colleges:     p.list("college"),
			Departments:  p.list("department"),
			Degrees:      p.list("degree"),
			MinCitations: p.integer("min_citations"),
			RecencyYear:  p.integer("recency"),
		},
		Sort:   p.sort(order.ExpertKeys),
		Window: p.window(s.pageSize),
	}
	if p.err != nil {
		writeError(w, r, http.StatusBadRequest, p.err.Error())
		return
	}
	writeJSON(w, http.StatusOK, query.Experts(s.holder.Load().Snapshot, req))
}

func (s *Server) expertFacets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, query.ExpertFacetsOf(s.holder.Load().Snapshot.Experts))
}

func (s *Server) getExpert(w http.ResponseWriter, r *http.Request) {
	prof, err := query.ExpertProfile(s.holder.Load().Snapshot, chi.URLParam(r, "id"))
	if err != nil {
		s.notFoundOr500(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prof)
}

func (s *Server) listPublications(w http.ResponseWriter, r *http.Request) {
	p := &params{q: r.URL.Query()}
	req := query.PublicationRequest{
		PublicationCriteria: filter.PublicationCriteria{
			Search:       p.str("search"),
			MinCitations: p.integer("min_citations"),
			RecencyYear:  p.integer("recency"),
			StartYear:    p.integer("start_year"),
			EndYear:      p.integer("end_year"),
		},
		Sort:   p.sort(order.PublicationKeys),
		Window: p.window(s.pageSize),
	}
	if p.err != nil {
		writeError(w, r, http.StatusBadRequest, p.err.Error())
		return
	}

	prof, err := query.ExpertProfile(s.holder.Load().Snapshot, chi.URLParam(r, "id"))
	if err != nil {
		s.notFoundOr500(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, query.Publications(prof, req))
}

func (s *Server) listOpportunities(w http.ResponseWriter, r *http.Request) {
	p := &params{q: r.URL.Query()}
	req := query.OpportunityRequest{
		OpportunityCriteria: filter.OpportunityCriteria{
			Search:      p.str("search"),
			Now:         s.now(),
			FundingMin:  p.number("funding_min"),
			FundingMax:  p.number("funding_max"),
			Eligibility: p.list("eligibility"),
		},
		Agency: p.str("agency"),
		Bucket: p.integer("bucket"),
		Sort:   p.sort(order.OpportunityKeys),
		Window: p.window(s.pageSize),
	}
	if p.err != nil {
		writeError(w, r, http.StatusBadRequest, p.err.Error())
		return
	}
	if _, ok := filter.Bucket(req.Bucket); !ok {
		writeError(w, r, http.StatusBadRequest, "parameter bucket is out of range")
		return
	}
	st := s.holder.Load()
	writeJSON(w, http.StatusOK, query.Opportunities(st.Snapshot, st.Agencies, req))
}

func (s *Server) opportunityFacets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, query.OpportunityFacetsOf(s.holder.Load(), s.now()))
}

// OpportunityView is a merged opportunity with its description flattened
// to plain text and its agency name resolved.
type OpportunityView struct {
	types.Opportunity
	DescriptionText string `json:"description_text"`
	AgencyName      string `json:"agency_name,omitempty"`
	Open            bool   `json:"open"`
}

func (s *Server) getOpportunity(w http.ResponseWriter, r *http.Request) {
	st := s.holder.Load()
	o, err := query.OpportunityDetail(st.Snapshot, chi.URLParam(r, "id"))
	if err != nil {
		s.notFoundOr500(w, r, err)
		return
	}
	view := OpportunityView{
		Opportunity: o,
		AgencyName:  st.Agencies.Name(o.AgencyID),
		Open:        o.IsOpen(s.now()),
	}
	if o.Description != nil {
		view.DescriptionText = format.Description(*o.Description)
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) agencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, query.OpportunityFacetsOf(s.holder.Load(), s.now()).Agencies)
}

func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(r.Context()); err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	st := s.holder.Load()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "reloaded",
		"experts":       len(st.Snapshot.Experts),
		"opportunities": len(st.Snapshot.Opportunities),
		"loaded_at":     st.Snapshot.LoadedAt.Format(time.RFC3339),
	})
}

func (s *Server) notFoundOr500(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, query.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	s.logger.Error("query failed", zap.Error(err))
	writeError(w, r, http.StatusInternalServerError, "internal error")
}
