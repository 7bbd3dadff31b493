package service

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"
)

const DefaultAuthDelay = 1500 * time.Millisecond

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

var (
	lowerLetter = regexp.MustCompile(`[a-z]`)
	upperLetter = regexp.MustCompile(`[A-Z]`)
	digit       = regexp.MustCompile(`[0-9]`)
	symbol      = regexp.MustCompile(`[^a-zA-Z0-9]`)

	strengthLabels = []string{"Weak", "Fair", "Good", "Strong"}
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthService simulates login and signup. There is no credential check: every
// well-formed request succeeds after a fixed delay.
type AuthService struct {
	delay time.Duration
	sleep func(time.Duration)
}

func NewAuthService(delay time.Duration) *AuthService {
	return &AuthService{delay: delay, sleep: time.Sleep}
}

func (s *AuthService) Login(_ context.Context, req LoginRequest) (AuthResult, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return AuthResult{}, ErrMissingCredentials
	}
	s.sleep(s.delay)
	log.Printf("[order-svc] simulated login for %s", strings.TrimSpace(req.Email))
	return AuthResult{Success: true, Message: "You have successfully logged in!"}, nil
}

func (s *AuthService) Signup(_ context.Context, req SignupRequest) (AuthResult, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return AuthResult{}, ErrMissingCredentials
	}
	if req.Password != req.ConfirmPassword {
		return AuthResult{}, ErrPasswordMismatch
	}
	s.sleep(s.delay)
	log.Printf("[order-svc] simulated signup for %s", strings.TrimSpace(req.Email))
	return AuthResult{Success: true, Message: "Your account has been created successfully!"}, nil
}

type PasswordStrengthResult struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// PasswordStrength scores length, mixed case, digits and symbols, one point each.
func PasswordStrength(password string) PasswordStrengthResult {
	score := 0
	if len(password) >= 8 {
		score++
	}
	if lowerLetter.MatchString(password) && upperLetter.MatchString(password) {
		score++
	}
	if digit.MatchString(password) {
		score++
	}
	if symbol.MatchString(password) {
		score++
	}

	label := "Password strength"
	if score > 0 {
		label = strengthLabels[score-1]
	}
	return PasswordStrengthResult{Score: score, Label: label}
}

var _ AuthServiceInterface = (*AuthService)(nil)
