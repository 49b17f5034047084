package config

import "os"

func IsDebug() bool {
	return os.Getenv("MENTORIA_DEBUG") == "1"
}
