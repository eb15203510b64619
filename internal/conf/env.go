// env.go - Environment variable configuration for authorid
package conf

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. AUTHORID_NGRAM_ORDER.
const EnvPrefix = "AUTHORID"

// envBinding maps a config key to an explicit environment variable
type envBinding struct {
	ConfigKey string
	EnvVar    string
}

// getEnvBindings returns bindings for keys whose env names don't follow the
// key replacer convention
func getEnvBindings() []envBinding {
	return []envBinding{
		{"corpus.path", "AUTHORID_CORPUS"},
	}
}

// configureEnvironmentVariables sets up environment variable support for Viper
func configureEnvironmentVariables() error {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for _, binding := range getEnvBindings() {
		if err := viper.BindEnv(binding.ConfigKey, binding.EnvVar); err != nil {
			return fmt.Errorf("failed to bind %s: %w", binding.EnvVar, err)
		}
	}
	return nil
}
