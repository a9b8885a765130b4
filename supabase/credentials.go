package supabase

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	supabasego "github.com/supabase-community/supabase-go"

	"stallion/errors"
)

const (
	EnvURL            = "NEXT_PUBLIC_SUPABASE_URL"
	EnvAnonKey        = "NEXT_PUBLIC_SUPABASE_ANON_KEY"
	EnvServiceRoleKey = "SUPABASE_SERVICE_ROLE_KEY"
)

// Credentials locate the project and hold the two keys handed out by Supabase.
type Credentials struct {
	URL            string
	AnonKey        string
	ServiceRoleKey string
}

// CredentialsFromEnv reads the three variables without checking them, NewClients does.
func CredentialsFromEnv() Credentials {
	return Credentials{
		URL:            os.Getenv(EnvURL),
		AnonKey:        os.Getenv(EnvAnonKey),
		ServiceRoleKey: os.Getenv(EnvServiceRoleKey),
	}
}

// Validate reports the first missing value, named after its environment variable.
func (c Credentials) Validate() error {
	for _, v := range []struct{ name, value string }{
		{EnvURL, c.URL},
		{EnvAnonKey, c.AnonKey},
		{EnvServiceRoleKey, c.ServiceRoleKey},
	} {
		if strings.TrimSpace(v.value) == "" {
			return fmt.Errorf("%w: %s", errors.ErrMissingCredential, v.name)
		}
	}
	u, err := url.Parse(strings.TrimSpace(c.URL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", errors.ErrInvalidEndpoint, c.URL)
	}
	return nil
}

// Clients are the two handles of a Supabase project, both supabase-go clients.
// Public authenticates with the anonymous key and is subject to row level security,
// Service uses the service role key and bypasses it.
type Clients struct {
	URL     string
	Public  *supabasego.Client
	Service *supabasego.Client
	// Roles read from the keys, empty for opaque keys.
	PublicRole  string
	ServiceRole string
}

// NewClients builds both handles against the same endpoint. No handle is returned unless every
// credential is present and each key, when it is a JWT, carries the role it is meant for.
func NewClients(creds Credentials, log *slog.Logger) (Clients, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := creds.Validate(); err != nil {
		return Clients{}, err
	}
	if err := CheckKeyRole(creds.AnonKey, RoleAnon); err != nil {
		return Clients{}, fmt.Errorf("%s: %w", EnvAnonKey, err)
	}
	if err := CheckKeyRole(creds.ServiceRoleKey, RoleServiceRole); err != nil {
		return Clients{}, fmt.Errorf("%s: %w", EnvServiceRoleKey, err)
	}
	public, err := NewClient(creds.URL, creds.AnonKey)
	if err != nil {
		return Clients{}, err
	}
	service, err := NewClient(creds.URL, creds.ServiceRoleKey)
	if err != nil {
		return Clients{}, err
	}
	clients := Clients{
		URL:     strings.TrimRight(strings.TrimSpace(creds.URL), "/"),
		Public:  public,
		Service: service,
	}
	clients.PublicRole, _ = KeyRole(creds.AnonKey)
	clients.ServiceRole, _ = KeyRole(creds.ServiceRoleKey)
	log.Debug("Supabase clients ready", "url", clients.URL,
		"public_role", clients.PublicRole, "service_role", clients.ServiceRole)
	return clients, nil
}
