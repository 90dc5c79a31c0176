package collect

import (
	"context"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/osintworks/recon-cli/internal/model"
)

const (
	defaultSearchBaseURL = "https://html.duckduckgo.com"
	maxResultsPerQuery   = 30
	maxQueryKeywords     = 3
)

var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_5) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0",
}

// sourceQueryHints shapes the search query per collection channel.
var sourceQueryHints = map[model.Source]string{
	model.SourceSearchEngines:       "",
	model.SourceSocialMedia:         "site:linkedin.com OR site:twitter.com",
	model.SourceBusinessDirectories: "directory listing contact",
	model.SourceJobPortals:          "hiring OR careers OR vacancies",
	model.SourceSpecializedTools:    "company profile technology",
}

// sourceDataType is the data type attached to snippet findings per channel.
var sourceDataType = map[model.Source]string{
	model.SourceSearchEngines:       model.DataTypeBusinessInfo,
	model.SourceSocialMedia:         model.DataTypeSocialProfile,
	model.SourceBusinessDirectories: model.DataTypeBusinessInfo,
	model.SourceJobPortals:          model.DataTypeBusinessInfo,
	model.SourceSpecializedTools:    model.DataTypeBusinessInfo,
}

var (
	emailRe   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe   = regexp.MustCompile(`\+?[0-9][0-9 \-()]{7,14}[0-9]`)
	anchorRe  = regexp.MustCompile(`<a[^>]*href="([^"]+)"[^>]*>([^<]{10,160})</a>`)
	tagRe     = regexp.MustCompile(`<[^>]+>`)
	spacesRe  = regexp.MustCompile(`\s+`)
	uddgParam = "uddg"
)

// WebCollectorOptions configures a WebCollector.
type WebCollectorOptions struct {
	BaseURL string
	Timeout time.Duration
	Proxies ProxyManager
}

// WebCollector queries a public HTML search endpoint and extracts findings
// from the returned snippets. One instance serves one collection channel.
type WebCollector struct {
	source  model.Source
	baseURL string
	client  *http.Client
}

// NewWebCollector builds a collector for the given channel.
func NewWebCollector(source model.Source, opts WebCollectorOptions) *WebCollector {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultSearchBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if opts.Proxies != nil {
		proxies := opts.Proxies
		transport.Proxy = func(*http.Request) (*url.URL, error) {
			addr := proxies.GetProxy()
			if addr == "" {
				return nil, nil
			}
			return url.Parse(addr)
		}
	}

	return &WebCollector{
		source:  source,
		baseURL: opts.BaseURL,
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
	}
}

// Collect runs one shaped search for the target and extracts emails,
// phone numbers and result snippets from the response.
func (c *WebCollector) Collect(ctx context.Context, target string, params Params) ([]model.IntelligenceResult, error) {
	query := c.buildQuery(target, params)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/html/?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, eris.Wrap(err, "collect: create request")
	}
	req.Header.Set("User-Agent", c.userAgent(params))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "collect: search %s", c.source)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("collect: unexpected status %d from %s", resp.StatusCode, c.source)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, eris.Wrap(err, "collect: read response")
	}

	results := c.extract(string(body), params)
	zap.L().Debug("collect: search complete",
		zap.String("source", string(c.source)),
		zap.String("query", query),
		zap.Int("results", len(results)),
	)
	return results, nil
}

func (c *WebCollector) buildQuery(target string, params Params) string {
	parts := []string{target}

	kw := params.Keywords
	if len(kw) > maxQueryKeywords {
		kw = kw[:maxQueryKeywords]
	}
	for _, k := range kw {
		if !strings.EqualFold(k, target) {
			parts = append(parts, k)
		}
	}
	if params.GeographicFocus != "" && params.GeographicFocus != "global" {
		parts = append(parts, params.GeographicFocus)
	}
	if hint := sourceQueryHints[c.source]; hint != "" {
		parts = append(parts, hint)
	}
	return strings.Join(parts, " ")
}

func (c *WebCollector) userAgent(params Params) string {
	if params.RiskMitigation.UserAgentRotation {
		return defaultUserAgents[rand.IntN(len(defaultUserAgents))]
	}
	return defaultUserAgents[0]
}

func (c *WebCollector) extract(body string, params Params) []model.IntelligenceResult {
	now := time.Now().UTC()
	seen := make(map[string]bool)
	var out []model.IntelligenceResult

	add := func(dataType, value, sourceURL string, confidence float64) {
		key := dataType + ":" + strings.ToLower(value)
		if value == "" || seen[key] || len(out) >= maxResultsPerQuery {
			return
		}
		seen[key] = true
		out = append(out, model.IntelligenceResult{
			DataType:           dataType,
			Value:              value,
			Confidence:         confidence,
			SourceMethod:       string(c.source),
			SourceURL:          sourceURL,
			Timestamp:          now,
			ValidationStatus:   model.ValidationPending,
			GeographicLocation: params.GeographicFocus,
		})
	}

	for _, m := range anchorRe.FindAllStringSubmatch(body, -1) {
		link := resolveRedirect(m[1])
		title := cleanText(m[2])
		if !strings.HasPrefix(link, "http") || title == "" {
			continue
		}
		add(sourceDataType[c.source], title, link, 0.5)
	}

	text := cleanText(tagRe.ReplaceAllString(body, " "))
	for _, email := range emailRe.FindAllString(text, -1) {
		add(model.DataTypeEmail, email, "", 0.7)
	}
	for _, phone := range phoneRe.FindAllString(text, -1) {
		if len(strings.Map(keepDigits, phone)) >= 8 {
			add(model.DataTypePhone, strings.TrimSpace(phone), "", 0.6)
		}
	}

	return out
}

// resolveRedirect unwraps search engine redirect links of the form
// //host/l/?uddg=<encoded target url>.
func resolveRedirect(link string) string {
	if strings.HasPrefix(link, "//") {
		link = "https:" + link
	}
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	if target := u.Query().Get(uddgParam); target != "" {
		if decoded, err := url.QueryUnescape(target); err == nil {
			return decoded
		}
	}
	return link
}

func cleanText(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

func keepDigits(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	return -1
}
