package ses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appConfig "psp-advisor/internal/config"
	"psp-advisor/internal/models"
	"psp-advisor/internal/utils"
)

func init() {
	utils.SetLogger(zap.NewNop())
}

type fakeSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, in)
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func testConfig() *appConfig.Config {
	return &appConfig.Config{
		SESSenderEmail:       "advisor@example.com",
		LeadInboxEmail:       "sales@example.com",
		NotificationTopCount: 2,
	}
}

func testRun() (*models.MerchantProfile, *models.RecommendationRun) {
	profile := &models.MerchantProfile{
		Sector:       "retail",
		BusinessType: "online_store",
		MonthlyGMV:   50000,
		TxCount:      500,
		Needs:        models.NewNeeds(models.NeedRecurring, models.NeedApplePay),
		Locale:       models.LocaleEnglish,
	}
	run := &models.RecommendationRun{
		RunID:        "run-42",
		GeneratedAt:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Locale:       models.LocaleEnglish,
		Disqualified: 1,
		Recommendations: []models.Recommendation{
			{Slug: "moyasar", NameEN: "Moyasar", Total: 91.2, Pricing: models.PricingResult{CostMin: 900, CostMax: 950},
				Caveats: []string{"Pricing is an estimate; confirm final rates with the provider"}},
			{Slug: "tap", NameEN: "Tap", Total: 84.7, Pricing: models.PricingResult{CostMin: 1000, CostMax: 1100}},
			{Slug: "hyperpay", Total: 70.1},
		},
		ReportURL: "https://example.com/report.json",
	}
	return profile, run
}

func TestBuildLeadSummaryParams(t *testing.T) {
	profile, run := testRun()

	params := BuildLeadSummaryParams(profile, run, 2)

	assert.Equal(t, "run-42", params.RunID)
	assert.Equal(t, 3, params.MatchCount)
	assert.Equal(t, []string{"recurring", "apple_pay"}, params.Needs)
	require.Len(t, params.TopMatches, 2)
	assert.Equal(t, 1, params.TopMatches[0].Rank)
	assert.Equal(t, "Moyasar", params.TopMatches[0].Name)
	assert.Equal(t, 1100.0, params.TopMatches[1].CostMax)

	all := BuildLeadSummaryParams(profile, run, 0)
	require.Len(t, all.TopMatches, 3)
	assert.Equal(t, "hyperpay", all.TopMatches[2].Name)
}

func TestNotifyLead(t *testing.T) {
	client := &fakeSES{}
	svc := NewWithClient(client, testConfig())
	profile, run := testRun()

	require.NoError(t, svc.NotifyLead(context.Background(), profile, run))

	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "advisor@example.com", aws.ToString(in.Source))
	assert.Equal(t, []string{"sales@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "New merchant lead: retail, 3 matching providers", aws.ToString(in.Message.Subject.Data))

	html := aws.ToString(in.Message.Body.Html.Data)
	assert.Contains(t, html, "Moyasar")
	assert.Contains(t, html, "Tap")
	assert.NotContains(t, html, "hyperpay")
	assert.Contains(t, html, "https://example.com/report.json")

	text := aws.ToString(in.Message.Body.Text.Data)
	assert.Contains(t, text, "1. Moyasar (score 91.2)")
	assert.Contains(t, text, "Estimated monthly cost: 900.00 to 950.00 SAR")
	assert.Contains(t, text, "Needs: recurring, apple_pay")
}

func TestNotifyLead_Errors(t *testing.T) {
	profile, run := testRun()

	t.Run("no inbox configured", func(t *testing.T) {
		cfg := testConfig()
		cfg.LeadInboxEmail = ""
		svc := NewWithClient(&fakeSES{}, cfg)

		assert.ErrorIs(t, svc.NotifyLead(context.Background(), profile, run), ErrNoRecipient)
	})

	t.Run("send fails", func(t *testing.T) {
		svc := NewWithClient(&fakeSES{err: errors.New("Throttling")}, testConfig())

		err := svc.NotifyLead(context.Background(), profile, run)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send email")
	})
}
