package secrets

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"gopkg.in/yaml.v3"
)

// DBEntry is one database credential set stored in the SSM parameter as a YAML list.
type DBEntry struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns a PostgreSQL connection URL for the entry.
func (e DBEntry) DSN() string {
	host := e.Host
	if !strings.Contains(host, ":") {
		port := e.Port
		if port == 0 {
			port = 5432
		}
		host = fmt.Sprintf("%s:%d", host, port)
	}
	sslMode := e.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     host,
		Path:     "/" + e.Database,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// ParameterGetter is the subset of the SSM client used here.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewSSMClient builds an SSM client from the default AWS credential chain.
func NewSSMClient(ctx context.Context) (*ssm.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return ssm.NewFromConfig(cfg), nil
}

// LoadDatabases reads paramName and returns its entries keyed by lower-cased name.
func LoadDatabases(ctx context.Context, client ParameterGetter, paramName string) (map[string]DBEntry, error) {
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get parameter %s: %w", paramName, err)
	}

	if out.Parameter == nil || out.Parameter.Value == nil {
		return nil, fmt.Errorf("parameter %s is empty", paramName)
	}

	var entries []DBEntry
	if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal databases: %w", err)
	}

	result := make(map[string]DBEntry, len(entries))
	for _, entry := range entries {
		result[strings.ToLower(entry.Name)] = entry
	}
	return result, nil
}

// DatabaseURL resolves the DSN for env from paramName.
func DatabaseURL(ctx context.Context, client ParameterGetter, paramName, env string) (string, error) {
	dbs, err := LoadDatabases(ctx, client, paramName)
	if err != nil {
		return "", err
	}
	entry, ok := dbs[strings.ToLower(env)]
	if !ok {
		return "", fmt.Errorf("environment '%s' not found in parameter %s", env, paramName)
	}
	return entry.DSN(), nil
}
