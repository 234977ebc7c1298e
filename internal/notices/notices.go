// Package notices fetches the Sichuan DRC announcement list and filters it
// down to fuel price notices. This pipeline is independent of the price
// quote pipeline.
package notices

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/oilprice-cn/oilquery/internal/errs"
	"github.com/oilprice-cn/oilquery/internal/models"
	"github.com/oilprice-cn/oilquery/internal/source"
	"github.com/oilprice-cn/oilquery/internal/useragent"
)

const (
	// listURL is the announcement listing page. There is no machine-readable
	// API; the list is located by structural markers.
	listURL = "https://fgw.sc.gov.cn/sfgw/c106084/common_list.shtml"
	// DefaultMaxResults caps the returned notices.
	DefaultMaxResults = 5
)

// keywords mark a title as a fuel price notice.
var keywords = []string{"成品油", "油价", "川发改价格"}

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Fetcher retrieves and filters the announcement list.
type Fetcher struct {
	client  *http.Client
	logger  zerolog.Logger
	listURL string
}

// New creates a notice fetcher.
func New(logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		client:  source.NewHTTPClient(),
		logger:  logger.With().Str("component", "notices").Logger(),
		listURL: listURL,
	}
}

// FetchLatest fetches the listing page and returns up to maxResults fuel
// price notices, newest first. Items without a matching keyword, a
// resolvable URL, or a parseable date are silently skipped. An empty result
// after filtering is a NoNoticesError, distinct from network failures.
func (f *Fetcher) FetchLatest(ctx context.Context, maxResults int) ([]models.Notice, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", useragent.Random())

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &errs.NetworkError{Source: "notices", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &errs.NetworkError{
			Source: "notices",
			Err:    fmt.Errorf("unexpected status code %d", resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	base, err := url.Parse(f.listURL)
	if err != nil {
		return nil, fmt.Errorf("parsing list URL: %w", err)
	}

	var notices []models.Notice
	doc.Find("ul.list li").Each(func(_ int, li *goquery.Selection) {
		link := li.Find("a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		dateText := strings.TrimSpace(li.Find("span").First().Text())

		if title == "" || href == "" {
			return
		}
		if !hasKeyword(title) {
			return
		}

		dateStr := datePattern.FindString(dateText)
		if dateStr == "" {
			return
		}
		date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		notices = append(notices, models.Notice{
			Date:  date,
			Title: title,
			URL:   base.ResolveReference(ref).String(),
		})
	})

	if len(notices) == 0 {
		return nil, &errs.NoNoticesError{}
	}

	sort.SliceStable(notices, func(i, j int) bool {
		return notices[i].Date.After(notices[j].Date)
	})
	if len(notices) > maxResults {
		notices = notices[:maxResults]
	}

	f.logger.Info().Int("count", len(notices)).Msg("fetched fuel price notices")
	return notices, nil
}

func hasKeyword(title string) bool {
	for _, k := range keywords {
		if strings.Contains(title, k) {
			return true
		}
	}
	return false
}
