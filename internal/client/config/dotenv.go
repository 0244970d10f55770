package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/AliKaner/mc-case/internal/flagx"
	"github.com/joho/godotenv"
)

// loadDotEnv exports variables from the dotenv file selected with -e or
// -env-file (default ".env"). A missing file is not an error; variables
// already present in the environment are left untouched.
func loadDotEnv() {
	path := flagx.EnvFile(os.Args[1:])
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}
