package models

import "fmt"

// LoginMode selects how a session authenticates
type LoginMode string

const (
	LoginNone        LoginMode = "none"
	LoginManual      LoginMode = "manual"
	LoginCredentials LoginMode = "credentials"
	LoginGoogle      LoginMode = "google"
	LoginMicrosoft   LoginMode = "microsoft"
)

// LoginModes lists the accepted modes in prompt order
var LoginModes = []LoginMode{LoginNone, LoginManual, LoginCredentials, LoginGoogle, LoginMicrosoft}

// ParseLoginMode validates a user supplied mode name
func ParseLoginMode(s string) (LoginMode, error) {
	for _, m := range LoginModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown login mode %q", s)
}

// Credentials holds the email and password used for credentials login
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Empty reports whether either half of the pair is missing
func (c *Credentials) Empty() bool {
	return c == nil || c.Email == "" || c.Password == ""
}

// Cookie is a browser cookie in a driver independent form
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"http_only"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"same_site,omitempty"`
}
