package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSpec_ToRequest(t *testing.T) {
	limit := int64(50)
	offset := int64(10)
	spec := ReportSpec{
		DateRanges:      []DateRange{{StartDate: "7daysAgo", EndDate: "today", Name: "recent"}},
		Dimensions:      []string{"country", "city"},
		Metrics:         []string{"activeUsers"},
		DimensionFilter: json.RawMessage(`{"filter": {"fieldName": "country", "stringFilter": {"value": "US"}}}`),
		OrderBys:        json.RawMessage(`[{"desc": true, "metric": {"metricName": "activeUsers"}}]`),
		Limit:           &limit,
		Offset:          &offset,
	}

	req, err := spec.toRequest()
	require.NoError(t, err)

	require.Len(t, req.DateRanges, 1)
	assert.Equal(t, "7daysAgo", req.DateRanges[0].StartDate)
	assert.Equal(t, "today", req.DateRanges[0].EndDate)
	assert.Equal(t, "recent", req.DateRanges[0].Name)

	require.Len(t, req.Dimensions, 2)
	assert.Equal(t, "country", req.Dimensions[0].Name)
	require.Len(t, req.Metrics, 1)
	assert.Equal(t, "activeUsers", req.Metrics[0].Name)

	require.NotNil(t, req.DimensionFilter)
	assert.Equal(t, "country", req.DimensionFilter.Filter.FieldName)
	require.Len(t, req.OrderBys, 1)
	assert.True(t, req.OrderBys[0].Desc)

	assert.Equal(t, int64(50), req.Limit)
	assert.Equal(t, int64(10), req.Offset)
}

func TestReportSpec_InvalidFilter(t *testing.T) {
	spec := ReportSpec{
		DateRanges:      []DateRange{{StartDate: "7daysAgo", EndDate: "today"}},
		DimensionFilter: json.RawMessage(`"not an object"`),
	}

	_, err := spec.toRequest()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dimension_filter")
}

func TestRealtimeSpec_ToRequest(t *testing.T) {
	limit := int64(5)
	spec := RealtimeSpec{
		Dimensions: []string{"country"},
		Metrics:    []string{"activeUsers"},
		Limit:      &limit,
	}

	req, err := spec.toRequest()
	require.NoError(t, err)
	require.Len(t, req.Dimensions, 1)
	require.Len(t, req.Metrics, 1)
	assert.Equal(t, int64(5), req.Limit)
}
