package env

import (
	"fmt"

	"github.com/spf13/viper"
)

// GetString returns the string value of the given config var
func GetString(name string) string {
	return viper.GetString(name)
}

// GetInt returns the int value of the given config var
func GetInt(name string) int {
	return viper.GetInt(name)
}

// GetBool returns the bool value of the given config var
func GetBool(name string) bool {
	return viper.GetBool(name)
}

// MustExist panics if the given config var is not set to a non-empty value
func MustExist(name string) {
	if viper.GetString(name) == "" {
		panic(fmt.Sprintf("%s must be set", name))
	}
}
