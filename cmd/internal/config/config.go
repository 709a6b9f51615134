package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvVarsPrefix = "/notekeeper/prod/"
	defaultRegion = "us-east-2"
)

type Config struct {
	HTTPAddr   string
	DBPath     string
	JWTSecret  string
	JWTIssuer  string
	JWTTTL     time.Duration
	BcryptCost int
	BodyLimit  string
}

// Load exports the environment (SSM in production, .env otherwise) and reads the config from it.
func Load(ctx context.Context) (*Config, error) {
	if IsProduction() {
		if err := LoadProdEnv(ctx); err != nil {
			return nil, err
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

func IsProduction() bool {
	return os.Getenv("GO_ENV") == "production"
}

// FromEnv builds the config from a lookup function, applying defaults for unset keys.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		HTTPAddr:   valueOr(getenv("HTTP_ADDR"), ":7070"),
		DBPath:     valueOr(getenv("DB_PATH"), "database.db"),
		JWTSecret:  getenv("JWT_SECRET"),
		JWTIssuer:  valueOr(getenv("JWT_ISSUER"), "notekeeper"),
		JWTTTL:     24 * time.Hour,
		BcryptCost: bcrypt.DefaultCost,
		BodyLimit:  valueOr(getenv("BODY_LIMIT"), "1M"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	if raw := strings.TrimSpace(getenv("JWT_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid JWT_TTL %q", raw)
		}
		cfg.JWTTTL = ttl
	}

	if raw := strings.TrimSpace(getenv("BCRYPT_COST")); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("invalid BCRYPT_COST %q", raw)
		}
		cfg.BcryptCost = cost
	}
	return cfg, nil
}

// LoadProdEnv exports every parameter under EnvVarsPrefix from the SSM Parameter Store
// as an environment variable named after the parameter's suffix.
func LoadProdEnv(ctx context.Context) error {
	region := valueOr(os.Getenv("AWS_REGION"), defaultRegion)
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := ssm.NewFromConfig(cfg)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(EnvVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	count := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("unable to load prod environment: %w", err)
		}

		for _, param := range out.Parameters {
			key := strings.TrimPrefix(aws.ToString(param.Name), EnvVarsPrefix)
			if err := os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return fmt.Errorf("unable to set environment variable %s: %w", key, err)
			}
			count++
		}
	}

	log.Debugf("loaded %d prod environment variables", count)
	return nil
}

func valueOr(val, fallback string) string {
	val = strings.TrimSpace(val)
	if val == "" {
		return fallback
	}
	return val
}
