package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for unnamed fields.
const EnvPrefix = "STOCKTRACK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

const (
	EnvDBDSN  = "STOCKTRACK_DB_DSN"
	EnvDBHost = "STOCKTRACK_DB_HOST"
	EnvDBUser = "STOCKTRACK_DB_USER"
	EnvDBName = "STOCKTRACK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
