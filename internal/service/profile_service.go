package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"devconnector/internal/model"
	"devconnector/pkg/apierror"
)

// ProfileService owns the profile lifecycle, the nested experience and
// education collections, and full account deletion. Every mutation runs
// against the authenticated subject's own profile, so ownership is
// enforced by construction here.
type ProfileService struct {
	profiles ProfileRepo
	users    UserRepo
}

func NewProfileService(profiles ProfileRepo, users UserRepo) *ProfileService {
	return &ProfileService{profiles: profiles, users: users}
}

func (s *ProfileService) Me(ctx context.Context, userID string) (model.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			return model.Profile{}, apierror.BadRequest("There is no profile for this user")
		}
		return model.Profile{}, fmt.Errorf("find profile: %w", err)
	}

	return profile, nil
}

// Save creates the subject's profile or updates it if one already exists.
func (s *ProfileService) Save(ctx context.Context, userID string, req model.ProfileRequest) (model.Profile, error) {
	var fieldErrs []apierror.FieldError
	if strings.TrimSpace(req.Status) == "" {
		fieldErrs = append(fieldErrs, apierror.FieldError{Msg: "Status is required", Param: "status"})
	}
	if strings.TrimSpace(req.Skills) == "" {
		fieldErrs = append(fieldErrs, apierror.FieldError{Msg: "Skills is required", Param: "skills"})
	}
	if len(fieldErrs) > 0 {
		return model.Profile{}, apierror.Validation(fieldErrs...)
	}

	now := time.Now().UTC()
	profile := model.Profile{
		ID:             uuid.NewString(),
		User:           model.ProfileUser{ID: userID},
		Company:        strings.TrimSpace(req.Company),
		Website:        strings.TrimSpace(req.Website),
		Location:       strings.TrimSpace(req.Location),
		Status:         strings.TrimSpace(req.Status),
		Skills:         splitSkills(req.Skills),
		Bio:            strings.TrimSpace(req.Bio),
		GithubUsername: strings.TrimSpace(req.GithubUsername),
		Social: model.SocialLinks{
			Youtube:   strings.TrimSpace(req.Youtube),
			Twitter:   strings.TrimSpace(req.Twitter),
			Facebook:  strings.TrimSpace(req.Facebook),
			Linkedin:  strings.TrimSpace(req.Linkedin),
			Instagram: strings.TrimSpace(req.Instagram),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.profiles.Upsert(ctx, profile)
	if err != nil {
		return model.Profile{}, fmt.Errorf("save profile: %w", err)
	}

	return saved, nil
}

func (s *ProfileService) List(ctx context.Context) ([]model.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, nil
}

func (s *ProfileService) ByUserID(ctx context.Context, userID string) (model.Profile, error) {
	// A malformed id can never match a profile; report it the same way
	// as a missing one.
	if !isUUID(userID) {
		return model.Profile{}, apierror.BadRequest("Profile Not Found!!!")
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			return model.Profile{}, apierror.BadRequest("Profile Not Found!!!")
		}
		return model.Profile{}, fmt.Errorf("find profile: %w", err)
	}

	return profile, nil
}

// DeleteAccount removes the subject's profile and user record. Posts,
// comments and likes authored by the user are intentionally left behind.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, model.ErrProfileNotFound) {
		return fmt.Errorf("delete profile: %w", err)
	}

	if err := s.users.Delete(ctx, userID); err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

func (s *ProfileService) AddExperience(ctx context.Context, userID string, req model.ExperienceRequest) (model.Profile, error) {
	var fieldErrs []apierror.FieldError
	if strings.TrimSpace(req.Title) == "" {
		fieldErrs = append(fieldErrs, apierror.FieldError{Msg: "Title is required", Param: "title"})
	}
	if strings.TrimSpace(req.Company) == "" {
		fieldErrs = append(fieldErrs, apierror.FieldError{Msg: "Company is required", Param: "company"})
	}
	from, fromErr := parseDate(req.From)
	if strings.TrimSpace(req.From) == "" || fromErr != nil {
		fieldErrs = append(fieldErrs, apierror.FieldError{Msg: "From date is required", Param: "from"})
	}
	if len(fieldErrs) > 0 {
		return model.Profile{}, apierror.Validation(fieldErrs...)
	}

	to, err := parseOptionalDate(req.To)
	if err != nil {
		return model.Profile{}, apierror.Validation(apierror.FieldError{Msg: "To date is invalid", Param: "to"})
	}

	profile, err := s.Me(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}

	entry := model.Experience{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		Location:    strings.TrimSpace(req.Location),
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: strings.TrimSpace(req.Description),
	}

	if err := s.profiles.AddExperience(ctx, profile.ID, entry); err != nil {
		return model.Profile{}, fmt.Errorf("add experience: %w", err)
	}

	return s.Me(ctx, userID)
}

func (s *ProfileService) RemoveExperience(ctx context.Context, userID string, experienceID string) (model.Profile, error) {
	profile, err := s.Me(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}

	if !isUUID(experienceID) {
		return model.Profile{}, apierror.NotFound("Experience Not Found")
	}

	if err := s.profiles.RemoveExperience(ctx, profile.ID, experienceID); err != nil {
		if errors.Is(err, model.ErrExperienceNotFound) {
			return model.Profile{}, apierror.NotFound("Experience Not Found")
		}
		return model.Profile{}, fmt.Errorf("remove experience: %w", err)
	}

	return s.Me(ctx, userID)
}

func (s *ProfileService) AddEducation(ctx context.Context, userID string, req model.EducationRequest) (model.Profile, error) {
	var fieldErrs []apierror.FieldError
	if strings.TrimSpace(req.School) == "" {
		fieldErrs = append(fieldErrs, apierror.FieldError{Msg: "School is required", Param: "school"})
	}
	if strings.TrimSpace(req.Degree) == "" {
		fieldErrs = append(fieldErrs, apierror.FieldError{Msg: "Degree is required", Param: "degree"})
	}
	if strings.TrimSpace(req.FieldOfStudy) == "" {
		fieldErrs = append(fieldErrs, apierror.FieldError{Msg: "Field of study is required", Param: "fieldofstudy"})
	}
	from, fromErr := parseDate(req.From)
	if strings.TrimSpace(req.From) == "" || fromErr != nil {
		fieldErrs = append(fieldErrs, apierror.FieldError{Msg: "From date is required", Param: "from"})
	}
	if len(fieldErrs) > 0 {
		return model.Profile{}, apierror.Validation(fieldErrs...)
	}

	to, err := parseOptionalDate(req.To)
	if err != nil {
		return model.Profile{}, apierror.Validation(apierror.FieldError{Msg: "To date is invalid", Param: "to"})
	}

	profile, err := s.Me(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}

	entry := model.Education{
		ID:           uuid.NewString(),
		School:       strings.TrimSpace(req.School),
		Degree:       strings.TrimSpace(req.Degree),
		FieldOfStudy: strings.TrimSpace(req.FieldOfStudy),
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  strings.TrimSpace(req.Description),
	}

	if err := s.profiles.AddEducation(ctx, profile.ID, entry); err != nil {
		return model.Profile{}, fmt.Errorf("add education: %w", err)
	}

	return s.Me(ctx, userID)
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID string, educationID string) (model.Profile, error) {
	profile, err := s.Me(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}

	if !isUUID(educationID) {
		return model.Profile{}, apierror.NotFound("Education Not Found")
	}

	if err := s.profiles.RemoveEducation(ctx, profile.ID, educationID); err != nil {
		if errors.Is(err, model.ErrEducationNotFound) {
			return model.Profile{}, apierror.NotFound("Education Not Found")
		}
		return model.Profile{}, fmt.Errorf("remove education: %w", err)
	}

	return s.Me(ctx, userID)
}

func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		skills = append(skills, trimmed)
	}

	return skills
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	t, err := parseDate(raw)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
