package config

const (
	// EnvPrefix scopes every environment variable consumed by the platform.
	EnvPrefix = "taglink"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
