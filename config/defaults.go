package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Credentials is the resolved signing identity and default region.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
}

// Environment looks up one environment variable, returning "" when unset.
type Environment func(name string) string

// Option configures GetDefaults.
type Option func(*options)

type options struct {
	env     Environment
	home    string
	profile string
	dotenv  string
}

// WithEnvironment injects the environment lookup used during resolution.
// The default is os.Getenv.
func WithEnvironment(env Environment) Option {
	return func(o *options) {
		if env != nil {
			o.env = env
		}
	}
}

// WithHome overrides the home directory used to locate the shared
// credentials and config files.
func WithHome(home string) Option {
	return func(o *options) { o.home = home }
}

// WithProfile selects a profile other than AWS_PROFILE / "default".
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithDotEnv loads a dotenv file and uses its values as a fallback for
// variables the injected environment leaves unset. A missing or malformed
// file is ignored.
func WithDotEnv(path string) Option {
	return func(o *options) { o.dotenv = path }
}

// GetDefaults resolves credentials and region the way the AWS CLI does:
// environment variables first, then the profile section of the shared
// credentials file, then the matching section of the shared config file.
// Values already found are never overwritten by later sources. Missing files
// simply contribute nothing.
func GetDefaults(opts ...Option) Credentials {
	o := options{env: os.Getenv}
	for _, opt := range opts {
		opt(&o)
	}

	if o.dotenv != "" {
		if vars, err := godotenv.Read(o.dotenv); err == nil {
			inner := o.env
			o.env = func(name string) string {
				if v := inner(name); v != "" {
					return v
				}
				return vars[name]
			}
		}
	}

	home := o.home
	if home == "" {
		home, _ = os.UserHomeDir()
	}

	creds := Credentials{
		AccessKeyID:     o.env("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: o.env("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    o.env("AWS_SESSION_TOKEN"),
		Region:          o.env("AWS_DEFAULT_REGION"),
	}

	profile := o.profile
	if profile == "" {
		profile = o.env("AWS_PROFILE")
	}
	profileConfigSection := "profile " + profile
	if profile == "" {
		profile = "default"
		profileConfigSection = "default"
	}

	credentialsPath := o.env("AWS_SHARED_CREDENTIALS_FILE")
	if credentialsPath == "" {
		credentialsPath = home + "/.aws/credentials"
	}
	if v, err := FromFile(credentialsPath); err == nil {
		section := v.Get(profile)
		fill(&creds.AccessKeyID, section.Get("aws_access_key_id"))
		fill(&creds.SecretAccessKey, section.Get("aws_secret_access_key"))
		fill(&creds.SessionToken, section.Get("aws_session_token"))
	}

	configPath := o.env("AWS_CONFIG_FILE")
	if configPath == "" {
		configPath = home + "/.aws/config"
	}
	if v, err := FromFile(configPath); err == nil {
		section := v.Get(profileConfigSection)
		fill(&creds.AccessKeyID, section.Get("aws_access_key_id"))
		fill(&creds.SecretAccessKey, section.Get("aws_secret_access_key"))
		fill(&creds.SessionToken, section.Get("aws_session_token"))
		fill(&creds.Region, section.Get("region"))
	}

	return creds
}

func fill(dst *string, v *Value) {
	if *dst == "" {
		*dst = v.String()
	}
}
