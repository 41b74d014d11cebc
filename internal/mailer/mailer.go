package mailer

import "embed"

const (
	FromName            = "Tour Dashboard"
	maxRetries          = 3
	DailyReportTemplate = "daily_report.tmpl"
)

//go:embed "templates"
var FS embed.FS

// Attachment is an in-memory file sent with a message.
type Attachment struct {
	Filename string
	Data     []byte
}

type Client interface {
	Send(templateFile string, recipients []string, data any, attachments ...Attachment) error
}
