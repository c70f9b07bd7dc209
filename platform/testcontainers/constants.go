package testcontainers

// Postgres constants
const (
	PostgresContainerName = "postgres"
	PostgresPort          = "5432"

	PostgresImageNameKey = "POSTGRES_IMAGE_NAME"
	PostgresDatabaseKey  = "POSTGRES_DB"
	PostgresUsernameKey  = "POSTGRES_USER"
	PostgresPasswordKey  = "POSTGRES_PASSWORD" //nolint:gosec
)
