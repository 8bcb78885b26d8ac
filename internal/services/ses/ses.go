// Package ses provides email notification services via AWS SES
package ses

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	appConfig "psp-advisor/internal/config"
	"psp-advisor/internal/models"
	"psp-advisor/internal/utils"
)

// ErrNoRecipient is returned when no lead inbox is configured.
var ErrNoRecipient = errors.New("lead inbox email not configured")

// EmailAPI is the part of the SES client the service uses.
type EmailAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Service handles SES email operations
type Service struct {
	client    EmailAPI
	fromEmail string
	leadInbox string
	topCount  int
}

// EmailParams represents parameters for sending an email
type EmailParams struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
	ReplyTo  string
}

// SendEmailResult contains the result of sending an email
type SendEmailResult struct {
	MessageID string
	SentAt    time.Time
}

// LeadSummaryParams contains data for the lead summary email
type LeadSummaryParams struct {
	RunID        string
	Sector       string
	BusinessType string
	MonthlyGMV   float64
	TxCount      int
	Needs        []string
	Locale       models.Locale
	MatchCount   int
	Disqualified int
	TopMatches   []MatchInfo
	ReportURL    string
}

// MatchInfo contains info about a single recommendation for email
type MatchInfo struct {
	Rank    int
	Name    string
	Total   float64
	CostMin float64
	CostMax float64
	Caveats []string
}

// NewService creates a new SES service
func NewService(ctx context.Context, appCfg *appConfig.Config) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(appCfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewWithClient(ses.NewFromConfig(cfg), appCfg), nil
}

// NewWithClient creates a service around an existing client.
func NewWithClient(client EmailAPI, appCfg *appConfig.Config) *Service {
	topCount := appCfg.NotificationTopCount
	if topCount <= 0 {
		topCount = 3
	}
	return &Service{
		client:    client,
		fromEmail: appCfg.SESSenderEmail,
		leadInbox: appCfg.LeadInboxEmail,
		topCount:  topCount,
	}
}

// SendEmail sends a basic email
func (s *Service) SendEmail(ctx context.Context, params EmailParams) (*SendEmailResult, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(params.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}

	if params.HTMLBody != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(params.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}

	if params.TextBody != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(params.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	if params.ReplyTo != "" {
		input.ReplyToAddresses = []string{params.ReplyTo}
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		utils.GetLogger().Error("Failed to send email",
			zap.String("to", params.To),
			zap.String("subject", params.Subject),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	messageID := aws.ToString(result.MessageId)
	utils.GetLogger().Info("Email sent successfully",
		zap.String("to", params.To),
		zap.String("subject", params.Subject),
		zap.String("messageId", messageID),
	)

	return &SendEmailResult{
		MessageID: messageID,
		SentAt:    time.Now(),
	}, nil
}

// NotifyLead emails the lead inbox a summary of the run.
// It implements recommender.LeadNotifier.
func (s *Service) NotifyLead(ctx context.Context, profile *models.MerchantProfile, run *models.RecommendationRun) error {
	if s.leadInbox == "" {
		return ErrNoRecipient
	}
	_, err := s.SendRecommendationSummary(ctx, BuildLeadSummaryParams(profile, run, s.topCount))
	return err
}

// SendRecommendationSummary sends the lead summary email
func (s *Service) SendRecommendationSummary(ctx context.Context, params LeadSummaryParams) (*SendEmailResult, error) {
	htmlBody, err := renderLeadSummaryHTML(params)
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("New merchant lead: %s, %d matching providers", params.Sector, params.MatchCount)

	return s.SendEmail(ctx, EmailParams{
		To:       s.leadInbox,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: renderLeadSummaryText(params),
	})
}

// BuildLeadSummaryParams creates email params from a finished run
func BuildLeadSummaryParams(profile *models.MerchantProfile, run *models.RecommendationRun, topCount int) LeadSummaryParams {
	needs := make([]string, 0)
	for _, n := range profile.Needs.List() {
		needs = append(needs, n.String())
	}

	top := run.Recommendations
	if topCount > 0 && len(top) > topCount {
		top = top[:topCount]
	}

	matches := make([]MatchInfo, 0, len(top))
	for i, rec := range top {
		name := rec.NameEN
		if name == "" {
			name = rec.Slug
		}
		matches = append(matches, MatchInfo{
			Rank:    i + 1,
			Name:    name,
			Total:   rec.Total,
			CostMin: rec.Pricing.CostMin,
			CostMax: rec.Pricing.CostMax,
			Caveats: rec.Caveats,
		})
	}

	return LeadSummaryParams{
		RunID:        run.RunID,
		Sector:       profile.Sector,
		BusinessType: profile.BusinessType,
		MonthlyGMV:   profile.MonthlyGMV,
		TxCount:      profile.TxCount,
		Needs:        needs,
		Locale:       run.Locale,
		MatchCount:   len(run.Recommendations),
		Disqualified: run.Disqualified,
		TopMatches:   matches,
		ReportURL:    run.ReportURL,
	}
}

var leadSummaryTemplate = template.Must(template.New("lead_summary").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Segoe UI', Tahoma, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0f766e; color: white; padding: 24px; border-radius: 10px 10px 0 0; }
        .content { background: #f9f9f9; padding: 24px; border-radius: 0 0 10px 10px; }
        .match-card { background: white; border-radius: 8px; padding: 16px; margin: 12px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .score-badge { display: inline-block; background: #0f766e; color: white; padding: 4px 10px; border-radius: 20px; font-weight: bold; }
        .caveat { color: #b45309; font-size: 13px; }
        .footer { text-align: center; margin-top: 24px; color: #999; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h2>New merchant lead</h2>
        <p>{{.Sector}}{{if .BusinessType}} / {{.BusinessType}}{{end}}: {{printf "%.0f" .MonthlyGMV}} SAR per month over {{.TxCount}} transactions</p>
    </div>
    <div class="content">
        {{if .Needs}}<p>Needs: {{range $i, $n := .Needs}}{{if $i}}, {{end}}{{$n}}{{end}}</p>{{end}}
        <p>{{.MatchCount}} providers matched, {{.Disqualified}} disqualified.</p>
        {{range .TopMatches}}
        <div class="match-card">
            <h3>{{.Rank}}. {{.Name}} <span class="score-badge">{{printf "%.1f" .Total}}</span></h3>
            <p>Estimated monthly cost: {{printf "%.2f" .CostMin}} to {{printf "%.2f" .CostMax}} SAR</p>
            {{range .Caveats}}<p class="caveat">{{.}}</p>{{end}}
        </div>
        {{end}}
        {{if .ReportURL}}<p><a href="{{.ReportURL}}">Full report</a></p>{{end}}
    </div>
    <div class="footer">
        <p>Run {{.RunID}}</p>
    </div>
</body>
</html>`))

func renderLeadSummaryHTML(params LeadSummaryParams) (string, error) {
	var buf bytes.Buffer
	if err := leadSummaryTemplate.Execute(&buf, params); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderLeadSummaryText(params LeadSummaryParams) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "New merchant lead (run %s)\n\n", params.RunID)
	fmt.Fprintf(&buf, "Sector: %s\n", params.Sector)
	if params.BusinessType != "" {
		fmt.Fprintf(&buf, "Business type: %s\n", params.BusinessType)
	}
	fmt.Fprintf(&buf, "Monthly volume: %.0f SAR over %d transactions\n", params.MonthlyGMV, params.TxCount)
	if len(params.Needs) > 0 {
		fmt.Fprintf(&buf, "Needs: %s\n", strings.Join(params.Needs, ", "))
	}
	fmt.Fprintf(&buf, "\n%d providers matched, %d disqualified.\n\n", params.MatchCount, params.Disqualified)

	for _, match := range params.TopMatches {
		fmt.Fprintf(&buf, "%d. %s (score %.1f)\n", match.Rank, match.Name, match.Total)
		fmt.Fprintf(&buf, "   Estimated monthly cost: %.2f to %.2f SAR\n", match.CostMin, match.CostMax)
		for _, caveat := range match.Caveats {
			fmt.Fprintf(&buf, "   - %s\n", caveat)
		}
		buf.WriteString("\n")
	}

	if params.ReportURL != "" {
		fmt.Fprintf(&buf, "Full report: %s\n", params.ReportURL)
	}

	return buf.String()
}
