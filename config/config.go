package config

import (
	"os"
)

var (
	Port      string
	DBPath    string
	JWTSecret []byte
)

// Load reads the runtime settings from the environment
func Load() {
	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	DBPath = os.Getenv("DB_PATH")
	if DBPath == "" {
		DBPath = "catastro_minero.db"
	}

	JWTSecret = []byte(os.Getenv("JWT_SECRET"))
	if len(JWTSecret) == 0 {
		JWTSecret = []byte("secret")
	}
}
