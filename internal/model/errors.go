package model

import "errors"

var (
	// User related errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")

	// Token related errors
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")

	// Profile related errors
	ErrProfileNotFound    = errors.New("profile not found")
	ErrExperienceNotFound = errors.New("experience entry not found")
	ErrEducationNotFound  = errors.New("education entry not found")

	// Post related errors
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post not liked")
)
