package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/go-querystring/query"

	"instagram-gateway/domain/dto"
	"instagram-gateway/domain/repository"
	"instagram-gateway/infrastructure/configuration"
)

// IInsightsUsecase defines the interface for analytics reads.
type IInsightsUsecase interface {
	UserInsights(ctx context.Context, req *dto.UserInsightsRequest) (map[string]interface{}, error)
	MediaInsights(ctx context.Context, req *dto.MediaInsightsRequest) (map[string]interface{}, error)
}

// InsightsUsecase implements the analytics reads.
type InsightsUsecase struct {
	graph repository.IGraph
}

// NewInsightsUsecase creates a new insights use case instance
func NewInsightsUsecase(graph repository.IGraph) IInsightsUsecase {
	return &InsightsUsecase{graph: graph}
}

// UserInsights reads account-level metrics. metric_type, breakdown, since,
// until and timeframe pass through untouched; the API validates their
// combinations.
func (u *InsightsUsecase) UserInsights(ctx context.Context, req *dto.UserInsightsRequest) (map[string]interface{}, error) {
	if req == nil || len(req.Metrics) == 0 {
		return nil, fmt.Errorf("metric is required")
	}
	igUserID, err := u.graph.InstagramUserID(ctx, req.IGUserID)
	if err != nil {
		return nil, err
	}

	period := req.Period
	if period == "" {
		period = "day"
	}
	params, err := query.Values(dto.InsightsParams{
		Metric:     strings.Join(req.Metrics, ","),
		Period:     period,
		MetricType: req.MetricType,
		Breakdown:  req.Breakdown,
		Since:      req.Since,
		Until:      req.Until,
		Timeframe:  req.Timeframe,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode insights params: %w", err)
	}

	return u.graph.Do(ctx, http.MethodGet, igUserID+"/insights", params, nil, versionOpts(req.GraphVersion)...)
}

// MediaInsights reads metrics for one media object. The impressions metric
// was removed in Graph API v22.0; on v22+ it is silently swapped for reach so
// stale metric lists keep working.
func (u *InsightsUsecase) MediaInsights(ctx context.Context, req *dto.MediaInsightsRequest) (map[string]interface{}, error) {
	if req == nil || req.MediaID == "" {
		return nil, fmt.Errorf("media_id is required")
	}
	if len(req.Metrics) == 0 {
		return nil, fmt.Errorf("metric is required")
	}

	version := req.GraphVersion
	if version == "" {
		version = configuration.C.Graph.Version
	}
	metrics := req.Metrics
	if graphMajor(version) >= 22 {
		metrics = swapImpressionsForReach(metrics)
	}

	period := req.Period
	if period == "" {
		period = "lifetime"
	}
	params, err := query.Values(dto.InsightsParams{
		Metric: strings.Join(metrics, ","),
		Period: period,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode insights params: %w", err)
	}

	return u.graph.Do(ctx, http.MethodGet, req.MediaID+"/insights", params, nil, versionOpts(req.GraphVersion)...)
}

// graphMajor parses the major number out of a version like "v22.0". Unknown
// shapes yield 0, which disables version-gated rewrites.
func graphMajor(version string) int {
	version = strings.TrimPrefix(version, "v")
	if i := strings.IndexByte(version, '.'); i >= 0 {
		version = version[:i]
	}
	major, err := strconv.Atoi(version)
	if err != nil {
		return 0
	}
	return major
}

func swapImpressionsForReach(metrics []string) []string {
	out := make([]string, 0, len(metrics))
	hasReach := false
	hadImpressions := false
	for _, m := range metrics {
		if m == "impressions" {
			hadImpressions = true
			continue
		}
		if m == "reach" {
			hasReach = true
		}
		out = append(out, m)
	}
	if hadImpressions && !hasReach {
		out = append(out, "reach")
	}
	return out
}
