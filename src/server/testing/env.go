package testing

import (
	"os"
)

func SetTestEnv() {
	if err := os.Setenv("ENVIRONMENT", "test"); err != nil {
		panic(err)
	}
}
