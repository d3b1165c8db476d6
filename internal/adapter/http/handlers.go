package http

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/spardeck/marine-measure/internal/units"
	"github.com/spardeck/marine-measure/internal/water"
)

type conversionRequest struct {
	Value    decimal.Decimal  `json:"value"`
	From     units.SystemID   `json:"from"`
	To       units.SystemID   `json:"to"`
	Category units.CategoryID `json:"category"`
}

type conversionResponse struct {
	Value    decimal.Decimal  `json:"value"`
	From     units.SystemID   `json:"from"`
	To       units.SystemID   `json:"to"`
	Category units.CategoryID `json:"category"`
	Result   decimal.Decimal  `json:"result"`
}

// handleConvert converts a single value. Unknown systems or categories
// do not fail: the engine returns the value unchanged and reports the
// miss through its fallback hook.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req conversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "decode request: "+err.Error())
		return
	}

	result := s.conv.Convert(req.Value, req.From, req.To, req.Category)
	s.metrics.ConversionsTotal.WithLabelValues(string(req.Category)).Inc()

	writeJSON(w, http.StatusOK, conversionResponse{
		Value:    req.Value,
		From:     req.From,
		To:       req.To,
		Category: req.Category,
		Result:   result,
	})
}

type batchRequest struct {
	From    units.SystemID              `json:"from"`
	To      units.SystemID              `json:"to"`
	Entries map[string]units.BatchEntry `json:"entries"`
}

type batchResponse struct {
	From    units.SystemID             `json:"from"`
	To      units.SystemID             `json:"to"`
	Results map[string]decimal.Decimal `json:"results"`
}

func (s *Server) handleConvertBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "decode request: "+err.Error())
		return
	}

	results := s.conv.ConvertBatch(req.Entries, req.From, req.To)
	s.metrics.BatchSize.Observe(float64(len(req.Entries)))
	for _, entry := range req.Entries {
		s.metrics.ConversionsTotal.WithLabelValues(string(entry.Category)).Inc()
	}

	writeJSON(w, http.StatusOK, batchResponse{From: req.From, To: req.To, Results: results})
}

type formatRequest struct {
	Value    decimal.Decimal  `json:"value"`
	System   units.SystemID   `json:"system"`
	Category units.CategoryID `json:"category"`
	Locale   string           `json:"locale"`
	Decimals *int             `json:"decimals"`
}

type formatResponse struct {
	Formatted string `json:"formatted"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "decode request: "+err.Error())
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = s.defaultLocale
	}
	decimals := -1
	if req.Decimals != nil {
		decimals = *req.Decimals
	}

	formatted, err := s.conv.FormatValue(req.Value, req.System, req.Category, locale, decimals)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.metrics.FormatRequests.Inc()

	writeJSON(w, http.StatusOK, formatResponse{Formatted: formatted})
}

type systemsResponse struct {
	UnitSystems []units.SystemInfo `json:"unit_systems"`
}

func (s *Server) handleListSystems(w http.ResponseWriter, r *http.Request) {
	systems, err := s.conv.Registry().ListSystems(s.locale(r))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, systemsResponse{UnitSystems: systems})
}

func (s *Server) handleGetSystem(w http.ResponseWriter, r *http.Request) {
	info, err := s.conv.Registry().System(units.SystemID(r.PathValue("system")), s.locale(r))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleWaterProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	temperature, err := decimal.NewFromString(q.Get("temperature_c"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid temperature_c")
		return
	}
	salinity := water.DefaultSalinityPSU
	if v := q.Get("salinity_psu"); v != "" {
		salinity, err = decimal.NewFromString(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "invalid salinity_psu")
			return
		}
	}

	medium := water.MediumForSalinity(salinity)
	timer := prometheus.NewTimer(s.metrics.WaterLookupDuration)
	props, err := s.interp.Properties(r.Context(), temperature, salinity)
	timer.ObserveDuration()
	s.metrics.WaterLookups.WithLabelValues(string(medium), lookupOutcome(err)).Inc()

	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, props)
}

func lookupOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case water.IsRangeError(err):
		return "range_error"
	case water.IsLookupError(err):
		return "lookup_error"
	default:
		return "error"
	}
}

type anchorsResponse struct {
	AnchorPoints []water.AnchorPoint `json:"anchor_points"`
}

func (s *Server) handleWaterAnchors(w http.ResponseWriter, r *http.Request) {
	if m := r.URL.Query().Get("medium"); m != "" {
		medium, err := water.ParseMedium(m)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
			return
		}
		points, err := s.interp.AnchorPoints(r.Context(), medium)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, anchorsResponse{AnchorPoints: points})
		return
	}

	points, err := s.interp.AllAnchorPoints(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.metrics.AnchorPoints.Set(float64(len(points)))
	writeJSON(w, http.StatusOK, anchorsResponse{AnchorPoints: points})
}
