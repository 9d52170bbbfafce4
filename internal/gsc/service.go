// Package gsc is a thin binding over the Google Search Console API.
//
// It wraps the generated searchconsole/v1 client with the credential
// sources the connector resolves (user OAuth refresh token or service
// account key) and gives every operation uniform error wrapping,
// including revoked-grant detection via IsCredentialRevoked.
package gsc

import (
	"context"
	"fmt"

	"google.golang.org/api/searchconsole/v1"
)

const (
	defaultRowLimit     = 1000
	defaultLanguageCode = "en-US"
)

// Service exposes the Search Console operations the connector uses.
type Service struct {
	api *searchconsole.Service
}

// New builds a Service authenticated per opts.
func New(ctx context.Context, opts Options) (*Service, error) {
	clientOpts, err := opts.clientOptions(ctx)
	if err != nil {
		return nil, err
	}
	api, err := searchconsole.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating search console client: %w", err)
	}
	return &Service{api: api}, nil
}

// Query describes a Search Analytics request. StartDate and EndDate are
// required, in YYYY-MM-DD form. A zero RowLimit requests 1000 rows.
type Query struct {
	StartDate  string
	EndDate    string
	Dimensions []string
	SearchType string
	DataState  string
	RowLimit   int64
	StartRow   int64
}

// ListSites returns the sites the credential can access.
func (s *Service) ListSites(ctx context.Context) ([]*searchconsole.WmxSite, error) {
	resp, err := s.api.Sites.List().Context(ctx).Do()
	if err != nil {
		return nil, s.wrap("listing sites", err)
	}
	return resp.SiteEntry, nil
}

// GetSite returns permission details for one site.
func (s *Service) GetSite(ctx context.Context, siteURL string) (*searchconsole.WmxSite, error) {
	site, err := s.api.Sites.Get(siteURL).Context(ctx).Do()
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("getting site %s", siteURL), err)
	}
	return site, nil
}

// AddSite adds a site to the account's Search Console properties.
func (s *Service) AddSite(ctx context.Context, siteURL string) error {
	if err := s.api.Sites.Add(siteURL).Context(ctx).Do(); err != nil {
		return s.wrap(fmt.Sprintf("adding site %s", siteURL), err)
	}
	return nil
}

// DeleteSite removes a site from the account's Search Console properties.
func (s *Service) DeleteSite(ctx context.Context, siteURL string) error {
	if err := s.api.Sites.Delete(siteURL).Context(ctx).Do(); err != nil {
		return s.wrap(fmt.Sprintf("deleting site %s", siteURL), err)
	}
	return nil
}

// ListSitemaps returns the sitemaps submitted for a site.
func (s *Service) ListSitemaps(ctx context.Context, siteURL string) ([]*searchconsole.WmxSitemap, error) {
	resp, err := s.api.Sitemaps.List(siteURL).Context(ctx).Do()
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("listing sitemaps for %s", siteURL), err)
	}
	return resp.Sitemap, nil
}

// GetSitemap returns status details for one submitted sitemap.
func (s *Service) GetSitemap(ctx context.Context, siteURL, feedPath string) (*searchconsole.WmxSitemap, error) {
	sitemap, err := s.api.Sitemaps.Get(siteURL, feedPath).Context(ctx).Do()
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("getting sitemap %s", feedPath), err)
	}
	return sitemap, nil
}

// SubmitSitemap submits a sitemap for crawling.
func (s *Service) SubmitSitemap(ctx context.Context, siteURL, feedPath string) error {
	if err := s.api.Sitemaps.Submit(siteURL, feedPath).Context(ctx).Do(); err != nil {
		return s.wrap(fmt.Sprintf("submitting sitemap %s", feedPath), err)
	}
	return nil
}

// DeleteSitemap removes a submitted sitemap.
func (s *Service) DeleteSitemap(ctx context.Context, siteURL, feedPath string) error {
	if err := s.api.Sitemaps.Delete(siteURL, feedPath).Context(ctx).Do(); err != nil {
		return s.wrap(fmt.Sprintf("deleting sitemap %s", feedPath), err)
	}
	return nil
}

// QueryAnalytics runs a Search Analytics query against a site.
func (s *Service) QueryAnalytics(ctx context.Context, siteURL string, q Query) (*searchconsole.SearchAnalyticsQueryResponse, error) {
	if q.StartDate == "" || q.EndDate == "" {
		return nil, fmt.Errorf("querying analytics: start and end dates are required")
	}
	rowLimit := q.RowLimit
	if rowLimit == 0 {
		rowLimit = defaultRowLimit
	}
	req := &searchconsole.SearchAnalyticsQueryRequest{
		StartDate:  q.StartDate,
		EndDate:    q.EndDate,
		Dimensions: q.Dimensions,
		Type:       q.SearchType,
		DataState:  q.DataState,
		RowLimit:   rowLimit,
		StartRow:   q.StartRow,
	}
	resp, err := s.api.Searchanalytics.Query(siteURL, req).Context(ctx).Do()
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("querying analytics for %s", siteURL), err)
	}
	return resp, nil
}

// InspectURL fetches the index status of a URL within a site. An empty
// languageCode defaults to en-US.
func (s *Service) InspectURL(ctx context.Context, siteURL, inspectionURL, languageCode string) (*searchconsole.UrlInspectionResult, error) {
	if languageCode == "" {
		languageCode = defaultLanguageCode
	}
	req := &searchconsole.InspectUrlIndexRequest{
		SiteUrl:       siteURL,
		InspectionUrl: inspectionURL,
		LanguageCode:  languageCode,
	}
	resp, err := s.api.UrlInspection.Index.Inspect(req).Context(ctx).Do()
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("inspecting %s", inspectionURL), err)
	}
	return resp.InspectionResult, nil
}

// wrap gives every operation the same error shape and tags revoked
// credentials so callers can tell auth failures from everything else.
func (s *Service) wrap(op string, err error) error {
	if IsCredentialRevoked(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrCredentialRevoked, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
