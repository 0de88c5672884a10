package hospitality

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"
	"uscmenu-backend/lib/menu"
	"uscmenu-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("uscmenu.scrapers.hospitality")

const (
	DefaultAPIBaseURL = "https://hospitality.usc.edu/wp-json/hsp-api/v1/get-res-dining-menus"
	DefaultPageURL    = "https://hospitality.usc.edu/residential-dining-menus/"

	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultTimeout = time.Second * 30
)

// SourceMode selects which generation of the hospitality site to
// scrape: the wp-json API (current) or the venue page HTML template
// (previous). Both produce the same partial document shape.
type SourceMode string

const (
	SourceAPI  SourceMode = "api"
	SourceHTML SourceMode = "html"
)

type ClientOptions struct {
	ApiBaseUrl string
	PageUrl    string
	Mode       SourceMode
	Timeout    time.Duration
}

type Client struct {
	http    *resty.Client
	options ClientOptions
}

func NewClient(options ClientOptions) *Client {
	if options.ApiBaseUrl == "" {
		options.ApiBaseUrl = DefaultAPIBaseURL
	}
	if options.PageUrl == "" {
		options.PageUrl = DefaultPageURL
	}
	if options.Mode == "" {
		options.Mode = SourceAPI
	}
	if options.Timeout <= 0 {
		options.Timeout = defaultTimeout
	}

	client := resty.New()
	client.SetTimeout(options.Timeout)
	client.SetHeader("user-agent", userAgent)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	telemetry.InstrumentResty(client, "uscmenu.scrapers.hospitality.http")

	return &Client{http: client, options: options}
}

// FetchDay fetches and parses one hall's menu for one calendar date.
// The returned partial may be empty when the hall lists nothing for
// that date, which callers must distinguish from an error.
func (c *Client) FetchDay(ctx context.Context, hall Hall, date time.Time) (menu.DailyMenu, error) {
	ctx, span := tracer.Start(ctx, "FetchDay", trace.WithAttributes(
		attribute.String("hall", hall.Slug),
		attribute.String("date", date.Format(time.DateOnly)),
		attribute.String("mode", string(c.options.Mode)),
	))
	defer span.End()

	var out menu.DailyMenu
	var err error
	if c.options.Mode == SourceHTML {
		out, err = c.fetchVenuePage(ctx, hall, date)
	} else {
		out, err = c.fetchAPIMenu(ctx, hall, date)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return menu.DailyMenu{}, err
	}
	return out, nil
}

func (c *Client) fetchAPIMenu(ctx context.Context, hall Hall, date time.Time) (menu.DailyMenu, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("y", strconv.Itoa(date.Year())).
		SetQueryParam("m", strconv.Itoa(int(date.Month()))).
		SetQueryParam("d", strconv.Itoa(date.Day())).
		Get(fmt.Sprintf("%s/%s", c.options.ApiBaseUrl, hall.Slug))
	if err != nil {
		return menu.DailyMenu{}, fmt.Errorf("fetching menu api for %s: %w", hall.Slug, err)
	}
	if res.IsError() {
		return menu.DailyMenu{}, fmt.Errorf("menu api returned status %d for %s", res.StatusCode(), hall.Slug)
	}
	return ParseAPIMenu(res.Body(), hall.Name, date.Format(time.DateOnly))
}

func (c *Client) fetchVenuePage(ctx context.Context, hall Hall, date time.Time) (menu.DailyMenu, error) {
	res, err := c.http.R().
		SetContext(ctx).
		// the page expects a human-formatted date, "April 15 2025"
		SetQueryParam("menu_date", date.Format("January 2 2006")).
		SetQueryParam("menu_venue", hall.Slug).
		Get(c.options.PageUrl)
	if err != nil {
		return menu.DailyMenu{}, fmt.Errorf("fetching venue page for %s: %w", hall.Slug, err)
	}
	if res.IsError() {
		return menu.DailyMenu{}, fmt.Errorf("venue page returned status %d for %s", res.StatusCode(), hall.Slug)
	}
	return ParseVenuePage(bytes.NewReader(res.Body()), date.Format(time.DateOnly), []Hall{hall})
}
