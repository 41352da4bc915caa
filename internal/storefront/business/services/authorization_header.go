package services

import (
	"net/http"
)

type AuthEngine interface {
	GetApiKey() string
	SetApiKey(request *http.Request)
}

// AccessTokenAuth authenticates storefront admin calls via the platform's
// access-token header.
type AccessTokenAuth struct {
	token string
}

func (a *AccessTokenAuth) GetApiKey() string {
	return a.token
}

func (a *AccessTokenAuth) SetApiKey(request *http.Request) {
	request.Header.Set("X-Access-Token", a.token)
}

func NewAccessTokenAuth(token string) *AccessTokenAuth {
	if token == "" {
		return nil
	}
	return &AccessTokenAuth{token: token}
}
