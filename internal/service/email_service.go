package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"vocabquest/internal/database"
	"vocabquest/internal/repository"
)

// EmailService sends streak milestone and progress digest emails via Amazon
// SES. When SES_FROM_EMAIL is unset the service runs disabled and every send
// is a logged no-op, so the rest of the app never has to check.
type EmailService struct {
	client    *sesv2.Client
	db        *database.DB
	progress  *ProgressService
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates an email service. Pass an empty fromEmail to
// disable sending entirely.
func NewEmailService(db *database.DB, progress *ProgressService, awsRegion, fromEmail, fromName string) (*EmailService, error) {
	svc := &EmailService{
		db:        db,
		progress:  progress,
		fromEmail: fromEmail,
		fromName:  fromName,
	}

	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return svc, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	svc.client = sesv2.NewFromConfig(cfg)
	svc.enabled = true
	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return svc, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// StreakMilestone implements Notifier. Called from a goroutine after an
// attempt commits, so failures are logged rather than returned.
func (s *EmailService) StreakMilestone(userID int64, streak int) {
	user, err := repository.NewUserRepository(s.db).GetUserByID(userID)
	if err != nil || user == nil {
		logAndIgnore("streak milestone email", err)
		return
	}

	subject := fmt.Sprintf("%d-day streak on VocabQuest!", streak)
	htmlBody := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>You just hit a <strong>%d-day study streak</strong>. Keep it going: one
session a day is all it takes.</p>
<p>The VocabQuest team</p>
</body></html>`, user.Name, streak)
	textBody := fmt.Sprintf(`Hi %s,

You just hit a %d-day study streak. Keep it going: one session a day is all
it takes.

The VocabQuest team
`, user.Name, streak)

	logAndIgnore("streak milestone email",
		s.sendEmail(context.Background(), user.Email, subject, htmlBody, textBody))
}

// SendWeeklyDigests emails every user a summary of their progress. Run by
// the scheduler once a week; individual failures are logged and skipped.
func (s *EmailService) SendWeeklyDigests(ctx context.Context) error {
	if !s.enabled {
		log.Println("Skipping weekly digests (email service disabled)")
		return nil
	}

	users, err := repository.NewUserRepository(s.db).ListUsers()
	if err != nil {
		return fmt.Errorf("failed to list users for digest: %w", err)
	}

	sent := 0
	for _, user := range users {
		stats, err := s.progress.GetStats(user.ID)
		if err != nil {
			log.Printf("weekly digest for user %d: %v", user.ID, err)
			continue
		}
		if stats.TotalAttempts == 0 {
			continue
		}

		subject := "Your VocabQuest week in review"
		htmlBody := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>Here is where you stand:</p>
<ul>
<li>Level %d with %d XP</li>
<li>%d-day streak</li>
<li>%.0f%% accuracy over %d attempts</li>
</ul>
<p>The VocabQuest team</p>
</body></html>`, user.Name, stats.Level, stats.TotalXP, stats.Streak, stats.Accuracy*100, stats.TotalAttempts)
		textBody := fmt.Sprintf(`Hi %s,

Here is where you stand:

- Level %d with %d XP
- %d-day streak
- %.0f%% accuracy over %d attempts

The VocabQuest team
`, user.Name, stats.Level, stats.TotalXP, stats.Streak, stats.Accuracy*100, stats.TotalAttempts)

		if err := s.sendEmail(ctx, user.Email, subject, htmlBody, textBody); err != nil {
			log.Printf("weekly digest for user %d: %v", user.ID, err)
			continue
		}
		sent++
	}

	log.Printf("Weekly digests sent: %d of %d users", sent, len(users))
	return nil
}

func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): %s to %s", subject, toEmail)
		return nil
	}

	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent: to=%s, subject=%s", toEmail, subject)
	return nil
}
