package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	MidtransEnvSandbox    = "sandbox"
	MidtransEnvProduction = "production"
)

const (
	EnvDBDSN  = "PERMATA_DB_DSN"
	EnvDBHost = "PERMATA_DB_HOST"
	EnvDBUser = "PERMATA_DB_USER"
	EnvDBName = "PERMATA_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
