package leadsapi

import (
	"context"
	"net/http"
	"strings"

	"leadconsole/internal/domain"
)

const (
	// Registration goes through the leads collection with a trailing slash.
	signUpPath = "/api/v1/leads/"
	logoutPath = "/api/v1/user/logout"
)

type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
}

func (p Profile) DisplayName() string {
	if n := strings.TrimSpace(p.FullName); n != "" {
		return n
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type signUpBody struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// SignUp registers a user; the gateway answers 201 on success.
func (c *Client) SignUp(ctx context.Context, in domain.SignUpInput) error {
	body := signUpBody{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
	}
	_, err := c.do(ctx, "signup", http.MethodPost, c.endpoint(signUpPath, nil), body, exactly(http.StatusCreated))
	return err
}

// SignIn posts credentials; the session cookie lands in the jar. The
// returned profile is best effort and may be empty.
func (c *Client) SignIn(ctx context.Context, creds domain.Credentials) (Profile, error) {
	b, err := c.do(ctx, "signin", http.MethodPost, c.endpoint(c.signInPath, nil), creds, is2xx)
	if err != nil {
		return Profile{}, err
	}

	var env struct {
		Data *struct {
			Profile
			User *Profile `json:"user"`
		} `json:"data"`
		User *Profile `json:"user"`
	}
	if decode("signin", b, &env) != nil {
		return Profile{Email: creds.Email}, nil
	}

	var p Profile
	switch {
	case env.Data != nil && env.Data.User != nil:
		p = *env.Data.User
	case env.Data != nil:
		p = env.Data.Profile
	case env.User != nil:
		p = *env.User
	}
	if p.Email == "" {
		p.Email = creds.Email
	}
	return p, nil
}

// Logout ends the upstream session; the gateway answers 200.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, "logout", http.MethodPost, c.endpoint(logoutPath, nil), nil, exactly(http.StatusOK))
	return err
}
