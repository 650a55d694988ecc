package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bdxtown/agenda-digest/internal/errs"
	"golang.org/x/oauth2"
)

// oobRedirect is the out-of-band redirect the authorization code was issued for.
const oobRedirect = "urn:ietf:wg:oauth:2.0:oob"

func oauthConfig(instance string, creds Credentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   instance + "/oauth/authorize",
			TokenURL:  instance + "/oauth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		RedirectURL: oobRedirect,
		Scopes:      []string{"write"},
	}
}

// AuthorizationURL is where an operator obtains the authorization code for
// the application registered as clientID.
func AuthorizationURL(instance, clientID string) string {
	if instance == "" {
		instance = DefaultInstance
	}
	instance = strings.TrimRight(instance, "/")
	return oauthConfig(instance, Credentials{ClientID: clientID}).AuthCodeURL("")
}

// Token returns the configured access token or exchanges the authorization
// code for one.
func (n *MastodonNotifier) Token(ctx context.Context) (string, error) {
	if n.creds.AccessToken != "" {
		return n.creds.AccessToken, nil
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, n.httpClient)
	tok, err := oauthConfig(n.instance, n.creds).Exchange(ctx, n.creds.AuthorizationCode,
		oauth2.SetAuthURLParam("scope", "write"))
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return "", &errs.FetchError{Op: "token", URL: n.instance + "/oauth/token", Err: err}
		}
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return "", &errs.AuthError{Status: retrieveErr.Response.StatusCode, Err: err}
		}
		return "", &errs.AuthError{Err: err}
	}

	if tok.AccessToken == "" {
		return "", &errs.AuthError{Err: fmt.Errorf("empty access token")}
	}
	return tok.AccessToken, nil
}
