package menus

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
)

type SmtpConfig struct {
	Server       string   `json:"server"`
	Port         int      `json:"port"`
	EmailAddress string   `json:"email_address"`
	Password     string   `json:"password"`
	To           []string `json:"to"`
}

// alertOutage emails the operators when a run produced zero usable
// data. Alerting failures are logged and swallowed, the run report is
// still the source of truth.
func (s Service) alertOutage(ctx context.Context, report RunReport) {
	if s.options.Smtp == nil {
		slog.WarnContext(ctx, "total scrape outage but no smtp config, skipping alert")
		return
	}
	cfg := s.options.Smtp

	var lines []string
	for _, date := range report.Dates {
		for _, hall := range date.Halls {
			lines = append(lines, fmt.Sprintf("%s / %s: %s", date.Date, hall.Hall, hall.Status()))
		}
	}

	e := email.NewEmail()
	e.From = fmt.Sprintf("USC Menu Scraper <%s>", cfg.EmailAddress)
	e.To = cfg.To
	e.Subject = "Menu scrape outage: all halls failed"
	e.Text = []byte(
		"Every dining hall fetch failed this run. The site may have changed or the scraper may be blocked.\n\n" +
			strings.Join(lines, "\n"),
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server, cfg.Port)
	auth := smtp.PlainAuth("", cfg.EmailAddress, cfg.Password, cfg.Server)
	err := e.Send(addr, auth)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = e.Send(addr, nil)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to send outage alert", "err", err)
		return
	}
	slog.InfoContext(ctx, "sent outage alert", "to", cfg.To)
}
