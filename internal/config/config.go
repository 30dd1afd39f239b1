package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Init loads .env, enables environment lookups and binds the root command's
// persistent flags. Flag "snyk-org-id" maps to key snyk_org_id and env
// SNYK_ORG_ID.
func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		root.PersistentFlags().VisitAll(func(f *pflag.Flag) {
			_ = viper.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
		})
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyAPIURL, "https://api.snyk.io/rest")
	viper.SetDefault(KeyAppURL, "https://app.snyk.io")
	viper.SetDefault(KeyAPIVersion, "2024-11-05")
	viper.SetDefault(KeyPageLimit, 100)
	viper.SetDefault(KeyHTTPTimeout, "30s")
	viper.SetDefault(KeyHTTPRetryMax, 3)
	viper.SetDefault(KeyLookupConcurrency, 10)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyTransport, "stdio")
	viper.SetDefault(KeyHTTPHost, "0.0.0.0")
	viper.SetDefault(KeyHTTPPort, 8000)
}

func APIKey() string               { return viper.GetString(KeyAPIKey) }
func OrgID() string                { return viper.GetString(KeyOrgID) }
func OrgSlug() string              { return viper.GetString(KeyOrgSlug) }
func APIURL() string               { return viper.GetString(KeyAPIURL) }
func AppURL() string               { return viper.GetString(KeyAppURL) }
func APIVersion() string           { return viper.GetString(KeyAPIVersion) }
func PageLimit() int               { return viper.GetInt(KeyPageLimit) }
func HTTPTimeout() time.Duration   { return viper.GetDuration(KeyHTTPTimeout) }
func HTTPRetryMax() int            { return viper.GetInt(KeyHTTPRetryMax) }
func LookupConcurrency() int       { return viper.GetInt(KeyLookupConcurrency) }
func LogLevel() string             { return viper.GetString(KeyLogLevel) }
func Transport() string            { return viper.GetString(KeyTransport) }
func HTTPHost() string             { return viper.GetString(KeyHTTPHost) }
func HTTPPort() int                { return viper.GetInt(KeyHTTPPort) }
