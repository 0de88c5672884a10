package commands

import (
	"context"
	"time"
	"uscmenu-backend/lib/configutil"
	configlibsql "uscmenu-backend/lib/configutil/libsql"
	"uscmenu-backend/lib/scrapers/hospitality"
	"uscmenu-backend/services/menus"
	"uscmenu-backend/services/menus/store"
)

type Config struct {
	Halls          []hospitality.Hall     `json:"halls"`
	WindowDays     int                    `json:"window_days"`
	Source         hospitality.SourceMode `json:"source"`
	ApiBaseUrl     string                 `json:"api_base_url"`
	PageUrl        string                 `json:"page_url"`
	TimeoutSeconds int                    `json:"timeout_seconds"`
	JitterMaxMs    int                    `json:"jitter_max_ms"`
	Database       configlibsql.Struct    `json:"database"`
	S3             *store.S3Config        `json:"s3"`
	Smtp           *menus.SmtpConfig      `json:"smtp"`
}

func loadConfig() (Config, error) {
	cfg, err := configutil.ReadConfig[Config](*configPath)
	if err != nil {
		return Config{}, err
	}
	if len(cfg.Halls) == 0 {
		cfg.Halls = hospitality.DefaultHalls
	}
	return cfg, nil
}

func buildStore(ctx context.Context, cfg Config) (menus.Store, error) {
	if cfg.S3 != nil {
		return store.NewS3(ctx, *cfg.S3)
	}
	database := cfg.Database
	if database.File == "" && database.Url == "" {
		database.File = "menus.db"
	}
	db, err := database.OpenDB()
	if err != nil {
		return nil, err
	}
	return store.NewSqlite(db)
}

func buildService(ctx context.Context, cfg Config, withFetcher bool, now func() time.Time) (menus.Service, error) {
	st, err := buildStore(ctx, cfg)
	if err != nil {
		return menus.Service{}, err
	}

	var fetch menus.Fetcher
	if withFetcher {
		fetch = hospitality.NewClient(hospitality.ClientOptions{
			ApiBaseUrl: cfg.ApiBaseUrl,
			PageUrl:    cfg.PageUrl,
			Mode:       cfg.Source,
			Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		})
	}

	return menus.NewService(st, fetch, menus.Options{
		Halls:       cfg.Halls,
		WindowDays:  cfg.WindowDays,
		JitterMaxMs: cfg.JitterMaxMs,
		Smtp:        cfg.Smtp,
		Now:         now,
	})
}
