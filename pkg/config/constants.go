package config

// EnvPrefix is the envconfig prefix shared by every PRINTDESK_* variable.
const EnvPrefix = "printdesk"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "PRINTDESK_APP_ENV"
	EnvDBDSN  = "PRINTDESK_DB_DSN"
	EnvDBHost = "PRINTDESK_DB_HOST"
	EnvDBUser = "PRINTDESK_DB_USER"
	EnvDBName = "PRINTDESK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
