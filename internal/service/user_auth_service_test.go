package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oscoderuz/django-shablon/internal/constants"
	"github.com/oscoderuz/django-shablon/internal/models"
)

func TestRegisterCreatesSingleProfile(t *testing.T) {
	f := newCatalogFixture(t)
	user, token, _, err := f.accounts.Register(context.Background(), RegisterInput{
		Username:        "jasur",
		Email:           "Jasur@Example.com",
		FirstName:       "Jasur",
		Password:        "Secret123!",
		PasswordConfirm: "Secret123!",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.Email != "jasur@example.com" {
		t.Fatalf("email should be normalized, got %s", user.Email)
	}
	if user.Profile == nil || user.Profile.Country != constants.ProfileDefaultCountry || !user.Profile.EmailNotifications {
		t.Fatalf("unexpected default profile: %+v", user.Profile)
	}

	var count int64
	if err := f.db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count profiles failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one profile, got %d", count)
	}
	types := f.publisher.types()
	if len(types) != 1 || types[0] != constants.EventAccountRegistered {
		t.Fatalf("unexpected events: %v", types)
	}
}

func TestRegisterValidation(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	f.register(t, "nodira")

	cases := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"duplicate username", RegisterInput{Username: "nodira", Email: "n2@example.com", Password: "Secret123!", PasswordConfirm: "Secret123!"}, ErrUsernameExists},
		{"duplicate email", RegisterInput{Username: "nodira2", Email: "NODIRA@example.com", Password: "Secret123!", PasswordConfirm: "Secret123!"}, ErrEmailExists},
		{"mismatch", RegisterInput{Username: "x1", Email: "x1@example.com", Password: "Secret123!", PasswordConfirm: "Secret124!"}, ErrPasswordMismatch},
		{"weak", RegisterInput{Username: "x2", Email: "x2@example.com", Password: "short", PasswordConfirm: "short"}, ErrWeakPassword},
		{"bad username", RegisterInput{Username: "has space", Email: "x3@example.com", Password: "Secret123!", PasswordConfirm: "Secret123!"}, ErrUsernameInvalid},
		{"bad email", RegisterInput{Username: "x4", Email: "not-an-email", Password: "Secret123!", PasswordConfirm: "Secret123!"}, ErrInvalidEmail},
	}
	for _, tc := range cases {
		if _, _, _, err := f.accounts.Register(ctx, tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestUpdateProfileResavesExistingProfile(t *testing.T) {
	f := newCatalogFixture(t)
	user := f.register(t, "malika")
	before := user.Profile.UpdatedAt
	profileID := user.Profile.ID

	time.Sleep(10 * time.Millisecond)
	updated, err := f.accounts.UpdateProfile(user.ID, ProfileUpdateInput{
		FirstName: strPtr("Malika"),
		LastName:  strPtr("Karimova"),
		Gender:    strPtr("female"),
		BirthDate: strPtr("1995-06-15"),
		City:      strPtr("Toshkent"),
	})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.FullName() != "Malika Karimova" {
		t.Fatalf("unexpected full name: %s", updated.FullName())
	}
	if updated.Profile.ID != profileID {
		t.Fatalf("profile must be re-saved, not recreated")
	}
	if !updated.Profile.UpdatedAt.After(before) {
		t.Fatalf("profile updated_at should move forward")
	}
	if age := updated.Profile.Age(time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)); age == nil || *age != 30 {
		t.Fatalf("unexpected age: %v", age)
	}

	var count int64
	if err := f.db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count profiles failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one profile, got %d", count)
	}

	if _, err := f.accounts.UpdateProfile(user.ID, ProfileUpdateInput{Gender: strPtr("other")}); !errors.Is(err, ErrProfileGenderInvalid) {
		t.Fatalf("expected ErrProfileGenderInvalid, got %v", err)
	}
	if _, err := f.accounts.UpdateProfile(user.ID, ProfileUpdateInput{BirthDate: strPtr("2999-01-01")}); !errors.Is(err, ErrProfileBirthInvalid) {
		t.Fatalf("expected ErrProfileBirthInvalid, got %v", err)
	}
	f.register(t, "taken")
	if _, err := f.accounts.UpdateProfile(user.ID, ProfileUpdateInput{Email: strPtr("taken@example.com")}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestLoginLogoutAndStaffGate(t *testing.T) {
	f := newCatalogFixture(t)
	user := f.register(t, "sardor")

	if _, _, _, err := f.accounts.Login("sardor", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	_, token, _, err := f.accounts.Login("sardor", "Secret123!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := f.accounts.ParseUserJWT(token)
	if err != nil || claims.UserID != user.ID {
		t.Fatalf("parse token failed: %v", err)
	}

	if err := f.accounts.Logout(context.Background(), user.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	reloaded, err := f.userRepo.GetByID(user.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if reloaded.TokenVersion != claims.TokenVersion+1 {
		t.Fatalf("token version should be bumped, got %d", reloaded.TokenVersion)
	}

	if _, _, _, err := f.admin.Login("sardor", "Secret123!"); !errors.Is(err, ErrNotStaff) {
		t.Fatalf("expected ErrNotStaff, got %v", err)
	}

	admin, created, err := f.accounts.EnsureSuperuser("root", "root@example.com", "RootPass123")
	if err != nil || !created {
		t.Fatalf("ensure superuser failed: created=%v err=%v", created, err)
	}
	if _, again, err := f.accounts.EnsureSuperuser("root", "root@example.com", "RootPass123"); err != nil || again {
		t.Fatalf("superuser must be created once: again=%v err=%v", again, err)
	}
	_, adminToken, _, err := f.admin.Login("root", "RootPass123")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	adminClaims, err := f.admin.ParseJWT(adminToken)
	if err != nil || adminClaims.UserID != admin.ID {
		t.Fatalf("parse admin token failed: %v", err)
	}
}

func TestAccountWritesResaveProfile(t *testing.T) {
	f := newCatalogFixture(t)
	user := f.register(t, "nodira")

	profileUpdatedAt := func() time.Time {
		t.Helper()
		var profile models.Profile
		if err := f.db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			t.Fatalf("load profile failed: %v", err)
		}
		return profile.UpdatedAt
	}

	before := profileUpdatedAt()
	time.Sleep(10 * time.Millisecond)
	if err := f.admin.ChangePassword(user.ID, "Secret123!", "Another456!"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	afterPassword := profileUpdatedAt()
	if !afterPassword.After(before) {
		t.Fatalf("password change should re-save profile: before=%v after=%v", before, afterPassword)
	}

	time.Sleep(10 * time.Millisecond)
	if _, _, _, err := f.accounts.Login("nodira", "Another456!"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	afterLogin := profileUpdatedAt()
	if !afterLogin.After(afterPassword) {
		t.Fatalf("last login write should re-save profile: before=%v after=%v", afterPassword, afterLogin)
	}

	time.Sleep(10 * time.Millisecond)
	if err := f.accounts.Logout(context.Background(), user.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if afterLogout := profileUpdatedAt(); !afterLogout.After(afterLogin) {
		t.Fatalf("token bump should re-save profile")
	}

	var count int64
	if err := f.db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count profiles failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one profile, got %d", count)
	}
}

func TestUpdateProfileWebsite(t *testing.T) {
	f := newCatalogFixture(t)
	user := f.register(t, "bekzod")

	for _, website := range []string{"not a url at all", "ftp://files.example.uz", "https://", "/relative/path"} {
		if _, err := f.accounts.UpdateProfile(user.ID, ProfileUpdateInput{Website: strPtr(website)}); !errors.Is(err, ErrProfileWebsiteInvalid) {
			t.Fatalf("website %q: expected ErrProfileWebsiteInvalid, got %v", website, err)
		}
	}

	updated, err := f.accounts.UpdateProfile(user.ID, ProfileUpdateInput{Website: strPtr(" https://bekzod.uz/about ")})
	if err != nil {
		t.Fatalf("valid website rejected: %v", err)
	}
	if updated.Profile.Website != "https://bekzod.uz/about" {
		t.Fatalf("unexpected website: %q", updated.Profile.Website)
	}

	cleared, err := f.accounts.UpdateProfile(user.ID, ProfileUpdateInput{Website: strPtr("")})
	if err != nil {
		t.Fatalf("clear website failed: %v", err)
	}
	if cleared.Profile.Website != "" {
		t.Fatalf("empty website should clear the field, got %q", cleared.Profile.Website)
	}
}
