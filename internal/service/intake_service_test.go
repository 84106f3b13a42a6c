package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aevi-next/internal/config"
	"github.com/aevi-next/internal/models"
	"github.com/aevi-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupIntakeServiceTest(t *testing.T) (*IntakeService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:intake_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewIntakeService(
		repository.NewLeadRepository(db),
		repository.NewNewsletterRepository(db),
		repository.NewUserRepository(db),
		nil,
	)
	return svc, db
}

func TestSubmitContactStoresLead(t *testing.T) {
	svc, db := setupIntakeServiceTest(t)

	lead, err := svc.SubmitContact(ContactInput{
		Name:    "Alex",
		Email:   "alex@example.com",
		Phone:   "+4712345678",
		Subject: "Order question",
		Message: "Where is my parcel?",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if lead.ID == 0 {
		t.Fatalf("lead not persisted: %+v", lead)
	}
	var stored models.Lead
	if err := db.First(&stored, lead.ID).Error; err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.Phone != "+4712345678" {
		t.Fatalf("phone not stored, got %q", stored.Phone)
	}
	var count int64
	if err := db.Model(&models.Lead{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one stored lead, got %d", count)
	}
}

func TestSubmitContactSurvivesMailerFailure(t *testing.T) {
	_, db := setupIntakeServiceTest(t)

	// An unconfigured mailer fails every send; the lead must land
	// anyway and the caller must not see the failure.
	notification := NewNotificationService(NewEmailService(&config.EmailConfig{Enabled: true}), nil)
	svc := NewIntakeService(
		repository.NewLeadRepository(db),
		repository.NewNewsletterRepository(db),
		repository.NewUserRepository(db),
		notification,
	)

	lead, err := svc.SubmitContact(ContactInput{
		Name:    "Alex",
		Email:   "alex@example.com",
		Message: "Hello",
	})
	if err != nil {
		t.Fatalf("submit must not surface the mailer failure: %v", err)
	}
	var count int64
	if err := db.Model(&models.Lead{}).Where("id = ?", lead.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("lead should persist despite the failed notification, got %d rows", count)
	}
}

func TestSubmitContactValidation(t *testing.T) {
	svc, _ := setupIntakeServiceTest(t)

	if _, err := svc.SubmitContact(ContactInput{Email: "a@example.com", Message: "hi"}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got: %v", err)
	}
	if _, err := svc.SubmitContact(ContactInput{Name: "A", Message: "hi"}); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got: %v", err)
	}
	if _, err := svc.SubmitContact(ContactInput{Name: "A", Email: "not-an-email", Message: "hi"}); !errors.Is(err, ErrEmailInvalid) {
		t.Fatalf("expected ErrEmailInvalid, got: %v", err)
	}
	if _, err := svc.SubmitContact(ContactInput{Name: "A", Email: "a@example.com"}); !errors.Is(err, ErrMessageRequired) {
		t.Fatalf("expected ErrMessageRequired, got: %v", err)
	}
}

func TestSubscribeNewsletter(t *testing.T) {
	svc, _ := setupIntakeServiceTest(t)

	created, err := svc.SubscribeNewsletter("Sub@Example.com")
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if !created {
		t.Fatalf("expected a new subscription")
	}

	created, err = svc.SubscribeNewsletter("sub@example.com")
	if err != nil {
		t.Fatalf("repeat subscribe failed: %v", err)
	}
	if created {
		t.Fatalf("repeat subscribe must report already subscribed")
	}
}

// refusingUserRepo fails every subscribe-flag update.
type refusingUserRepo struct {
	repository.UserRepository
}

func (r *refusingUserRepo) SetSubscribed(email string, subscribed bool) error {
	return errors.New("flag update refused")
}

func (r *refusingUserRepo) WithTx(tx *gorm.DB) repository.UserRepository {
	return r
}

func TestSubscribeRollsBackOnUserFlagFailure(t *testing.T) {
	_, db := setupIntakeServiceTest(t)
	svc := NewIntakeService(
		repository.NewLeadRepository(db),
		repository.NewNewsletterRepository(db),
		&refusingUserRepo{UserRepository: repository.NewUserRepository(db)},
		nil,
	)

	if _, err := svc.SubscribeNewsletter("torn@example.com"); err == nil {
		t.Fatalf("expected the user flag failure to surface")
	}

	// The newsletter row must not survive the failed request.
	var count int64
	if err := db.Model(&models.Newsletter{}).Where("email = ?", "torn@example.com").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("newsletter row should roll back with the failed flag update, got %d rows", count)
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	svc, db := setupIntakeServiceTest(t)

	if _, err := svc.SubscribeNewsletter("gone@example.com"); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if err := svc.UnsubscribeNewsletter("gone@example.com"); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}
	if err := svc.UnsubscribeNewsletter("gone@example.com"); err != nil {
		t.Fatalf("second unsubscribe failed: %v", err)
	}
	if err := svc.UnsubscribeNewsletter("never-seen@example.com"); err != nil {
		t.Fatalf("unknown unsubscribe failed: %v", err)
	}

	var row models.Newsletter
	if err := db.Where("email = ?", "gone@example.com").First(&row).Error; err != nil {
		t.Fatalf("row lookup failed: %v", err)
	}
	if row.IsActive {
		t.Fatalf("subscription should be inactive")
	}
}

func TestResubscribeDoesNotReactivate(t *testing.T) {
	svc, db := setupIntakeServiceTest(t)

	if _, err := svc.SubscribeNewsletter("back@example.com"); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if err := svc.UnsubscribeNewsletter("back@example.com"); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}

	// An unsubscribed row still counts as subscribed on a repeat
	// attempt and stays inactive.
	created, err := svc.SubscribeNewsletter("back@example.com")
	if err != nil {
		t.Fatalf("resubscribe failed: %v", err)
	}
	if created {
		t.Fatalf("resubscribe must report already subscribed")
	}
	var row models.Newsletter
	if err := db.Where("email = ?", "back@example.com").First(&row).Error; err != nil {
		t.Fatalf("row lookup failed: %v", err)
	}
	if row.IsActive {
		t.Fatalf("resubscribe must not reactivate the row")
	}
}

func TestNewsletterSyncsUserFlag(t *testing.T) {
	svc, db := setupIntakeServiceTest(t)
	user := models.User{Email: "reader@example.com", PasswordHash: "hash"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	if _, err := svc.SubscribeNewsletter("reader@example.com"); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reloaded.IsSubscribed {
		t.Fatalf("user flag should be set on subscribe")
	}

	if err := svc.UnsubscribeNewsletter("reader@example.com"); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.IsSubscribed {
		t.Fatalf("user flag should clear on unsubscribe")
	}
}
