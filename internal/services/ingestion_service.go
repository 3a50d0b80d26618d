package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
	"github.com/AvirupSahaAug/Role-Juggler/internal/functions"
	"github.com/AvirupSahaAug/Role-Juggler/internal/mailbox"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrCredentialsNotConfigured indicates the user has no mailbox configured
	ErrCredentialsNotConfigured = errors.New("mailbox credentials not configured")
	// ErrMailboxAuthFailed indicates the mailbox rejected the credentials
	ErrMailboxAuthFailed = errors.New("mailbox authentication failed")
	// ErrMailboxSearchFailed indicates the mailbox search failed
	ErrMailboxSearchFailed = errors.New("mailbox search failed")
)

// ingestTimeFormat is the clock format stored on meetings and updates
const ingestTimeFormat = "15:04"

// defaultMeetingClock is used when a meeting subject names no time
const defaultMeetingClock = "10:00"

// IngestionService runs the fetch-classify-persist pipeline over a user's
// mailbox. Each run is independent: it opens a fresh session, processes
// today's messages newest first, and closes the session on every path.
type IngestionService struct {
	db         *gorm.DB
	users      *UserService
	jobs       *JobService
	dialer     mailbox.Dialer
	classifier functions.Classifier
	logService *LogService
	now        func() time.Time
}

// NewIngestionService creates an IngestionService
func NewIngestionService(db *gorm.DB, users *UserService, jobs *JobService, dialer mailbox.Dialer, classifier functions.Classifier, logService *LogService) *IngestionService {
	return &IngestionService{
		db:         db,
		users:      users,
		jobs:       jobs,
		dialer:     dialer,
		classifier: classifier,
		logService: logService,
		now:        time.Now,
	}
}

// FetchTodayUpdates fetches today's mail for the user, classifies the
// relevant messages and persists one Update per message, creating meetings
// and jobs as side effects. It returns the updates created by this run.
//
// A failure on a single message never aborts the run: the message is logged
// and skipped. Only connection, authentication and search failures are fatal.
func (s *IngestionService) FetchTodayUpdates(userID uint) ([]models.Update, error) {
	runID := uuid.New().String()

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user.MailboxAddress == "" {
		return nil, ErrCredentialsNotConfigured
	}
	password, err := s.users.GetMailboxPassword(user)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrCredentialsNotConfigured
	}

	session, err := s.dialer.Dial(mailbox.Credentials{
		Address:  user.MailboxAddress,
		Password: password,
	})
	if err != nil {
		s.logService.LogError(userID, models.LogModuleIngest, "connect",
			"Failed to open mailbox session", map[string]string{"run_id": runID, "error": err.Error()})
		if errors.Is(err, mailbox.ErrAuthFailed) {
			return nil, fmt.Errorf("%w: %v", ErrMailboxAuthFailed, err)
		}
		return nil, err
	}
	defer session.Close()

	today := s.now()
	ids, err := session.SearchSince(today)
	if err != nil {
		s.logService.LogError(userID, models.LogModuleIngest, "search",
			"Mailbox search failed", map[string]string{"run_id": runID, "error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrMailboxSearchFailed, err)
	}

	s.logService.LogInfo(userID, models.LogModuleIngest, "search",
		fmt.Sprintf("Found %d messages since today", len(ids)),
		map[string]interface{}{"run_id": runID, "count": len(ids)})

	var created []models.Update

	// Servers return oldest first; process newest first
	for i := len(ids) - 1; i >= 0; i-- {
		msg, err := session.FetchHeader(ids[i])
		if err != nil {
			s.logService.LogWarn(userID, models.LogModuleIngest, "fetch",
				"Skipping unfetchable message",
				map[string]string{"run_id": runID, "message_id": ids[i], "error": err.Error()})
			continue
		}

		if !functions.IsRelevant(msg.Subject) {
			continue
		}

		update, err := s.processMessage(userID, msg)
		if err != nil {
			s.logService.LogError(userID, models.LogModuleIngest, "persist",
				"Failed to persist message",
				map[string]string{"run_id": runID, "message_id": msg.ID, "error": err.Error()})
			continue
		}
		created = append(created, *update)
	}

	s.logService.LogInfo(userID, models.LogModuleIngest, "run_complete",
		fmt.Sprintf("Created %d updates", len(created)),
		map[string]interface{}{"run_id": runID, "created": len(created)})

	return created, nil
}

// processMessage classifies one message and persists it atomically: the
// Update and any Meeting or Job it implies commit together or not at all.
func (s *IngestionService) processMessage(userID uint, msg *mailbox.Message) (*models.Update, error) {
	c := s.classifier.Classify(msg.Subject, msg.From)

	update := &models.Update{
		UserID:     userID,
		Title:      truncateRunes(c.Title, 255),
		Message:    fmt.Sprintf("From: %s", msg.From),
		Source:     "email",
		Sender:     msg.From,
		ReceivedAt: msg.Date,
		Type:       c.Type,
		Company:    truncateRunes(c.Company, 255),
	}
	if !c.Deadline.IsZero() {
		deadline := c.Deadline
		update.Deadline = &deadline
	}
	if c.MeetingDate != nil {
		update.MeetingDate = c.MeetingDate
	}
	if c.MeetingTime != nil {
		clock := c.MeetingTime.Format(ingestTimeFormat)
		update.MeetingTime = &clock
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(update).Error; err != nil {
			return err
		}
		if c.Type == models.UpdateTypeMeeting {
			return s.createMeeting(tx, userID, update, c, msg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return update, nil
}

// createMeeting creates the calendar entry for a meeting-typed update,
// unless a meeting with the same title already exists within a week of the
// effective date. Runs inside the message transaction.
func (s *IngestionService) createMeeting(tx *gorm.DB, userID uint, update *models.Update, c functions.Classification, msg *mailbox.Message) error {
	now := s.now()

	// Subjects without a parseable date default to tomorrow at 10:00
	effectiveDate := now.AddDate(0, 0, 1)
	if c.MeetingDate != nil {
		effectiveDate = *c.MeetingDate
	}
	effectiveDate = time.Date(effectiveDate.Year(), effectiveDate.Month(), effectiveDate.Day(), 0, 0, 0, 0, time.UTC)

	clock := defaultMeetingClock
	if c.MeetingTime != nil {
		clock = c.MeetingTime.Format(ingestTimeFormat)
	}

	existing, err := FindDuplicate(tx, userID, update.Title, effectiveDate)
	if err != nil {
		return err
	}
	if existing != nil {
		s.logService.LogDebug(userID, models.LogModuleMeeting, "dedup",
			"Meeting already exists, skipping",
			map[string]interface{}{"meeting_id": existing.ID, "title": update.Title})
		return nil
	}

	meeting := &models.Meeting{
		UserID:      userID,
		Title:       update.Title,
		Company:     update.Company,
		MeetingDate: effectiveDate,
		MeetingTime: clock,
		Duration:    models.DefaultMeetingDuration,
		Description: fmt.Sprintf("Automatically created from email: %s", msg.Subject),
	}

	if update.Company != models.UnknownCompany {
		job, err := s.jobs.GetOrCreateByCompany(tx, userID, update.Company)
		if err != nil {
			return err
		}
		meeting.JobID = &job.ID
	}

	return tx.Create(meeting).Error
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
