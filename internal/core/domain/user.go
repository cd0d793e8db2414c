package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// SubscriptionType is the plan tier a user account is on.
type SubscriptionType string

const (
	SubscriptionFree     SubscriptionType = "FREE"
	SubscriptionPro      SubscriptionType = "PRO"
	SubscriptionBusiness SubscriptionType = "BUSINESS"
)

// SubscriptionStatus is the billing state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrConnection     = errors.New("Connection error")
	ErrInvalidInput   = errors.New("invalid input")
	ErrSessionExpired = errors.New("session expired")
)

// User models an account as the backend returns it.
type User struct {
	ID                string             `json:"id"`
	Email             string             `json:"email"`
	Username          string             `json:"username"`
	FirstName         string             `json:"firstName,omitempty"`
	LastName          string             `json:"lastName,omitempty"`
	Role              string             `json:"role"`
	Subscription      SubscriptionType   `json:"subscriptionType"`
	SubscriptionState SubscriptionStatus `json:"subscriptionStatus"`
	SubscriptionStart *time.Time         `json:"subscriptionStart,omitempty"`
	SubscriptionEnd   *time.Time         `json:"subscriptionEnd,omitempty"`
}
