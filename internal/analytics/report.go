package analytics

import (
	"encoding/json"
	"fmt"

	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
)

// DateRange is a report date range with ISO dates or relative forms
// like "7daysAgo" and "today".
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Name      string `json:"name,omitempty"`
}

// ReportSpec describes a historical report request. Filters and
// orderings are passed through as raw FilterExpression / OrderBy
// documents (camelCase field names, as in the Data API).
type ReportSpec struct {
	DateRanges      []DateRange     `json:"date_ranges"`
	Dimensions      []string        `json:"dimensions,omitempty"`
	Metrics         []string        `json:"metrics,omitempty"`
	DimensionFilter json.RawMessage `json:"dimension_filter,omitempty"`
	MetricFilter    json.RawMessage `json:"metric_filter,omitempty"`
	OrderBys        json.RawMessage `json:"order_bys,omitempty"`
	Limit           *int64          `json:"limit,omitempty"`
	Offset          *int64          `json:"offset,omitempty"`
}

// RealtimeSpec describes a realtime report request.
type RealtimeSpec struct {
	Dimensions      []string        `json:"dimensions,omitempty"`
	Metrics         []string        `json:"metrics,omitempty"`
	DimensionFilter json.RawMessage `json:"dimension_filter,omitempty"`
	MetricFilter    json.RawMessage `json:"metric_filter,omitempty"`
	Limit           *int64          `json:"limit,omitempty"`
}

func (s ReportSpec) toRequest() (*analyticsdata.RunReportRequest, error) {
	req := &analyticsdata.RunReportRequest{}
	for _, dr := range s.DateRanges {
		req.DateRanges = append(req.DateRanges, &analyticsdata.DateRange{
			StartDate: dr.StartDate,
			EndDate:   dr.EndDate,
			Name:      dr.Name,
		})
	}
	for _, d := range s.Dimensions {
		req.Dimensions = append(req.Dimensions, &analyticsdata.Dimension{Name: d})
	}
	for _, m := range s.Metrics {
		req.Metrics = append(req.Metrics, &analyticsdata.Metric{Name: m})
	}

	var err error
	if req.DimensionFilter, err = parseFilter("dimension_filter", s.DimensionFilter); err != nil {
		return nil, err
	}
	if req.MetricFilter, err = parseFilter("metric_filter", s.MetricFilter); err != nil {
		return nil, err
	}
	if len(s.OrderBys) > 0 {
		if err := json.Unmarshal(s.OrderBys, &req.OrderBys); err != nil {
			return nil, fmt.Errorf("invalid order_bys: %w", err)
		}
	}
	if s.Limit != nil {
		req.Limit = *s.Limit
	}
	if s.Offset != nil {
		req.Offset = *s.Offset
	}
	return req, nil
}

func (s RealtimeSpec) toRequest() (*analyticsdata.RunRealtimeReportRequest, error) {
	req := &analyticsdata.RunRealtimeReportRequest{}
	for _, d := range s.Dimensions {
		req.Dimensions = append(req.Dimensions, &analyticsdata.Dimension{Name: d})
	}
	for _, m := range s.Metrics {
		req.Metrics = append(req.Metrics, &analyticsdata.Metric{Name: m})
	}

	var err error
	if req.DimensionFilter, err = parseFilter("dimension_filter", s.DimensionFilter); err != nil {
		return nil, err
	}
	if req.MetricFilter, err = parseFilter("metric_filter", s.MetricFilter); err != nil {
		return nil, err
	}
	if s.Limit != nil {
		req.Limit = *s.Limit
	}
	return req, nil
}

func parseFilter(field string, raw json.RawMessage) (*analyticsdata.FilterExpression, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var f analyticsdata.FilterExpression
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	return &f, nil
}
