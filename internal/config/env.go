package config

import (
	"os"

	"github.com/BartekS5/gamsync/pkg/models"
)

type envOverrides struct {
	DBUsername      string
	DBPassword      string
	DBInstance      string
	MongoConnString string
	PushgatewayURL  string
}

func readEnv() envOverrides {
	return envOverrides{
		DBUsername:      os.Getenv("DB_USERNAME"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBInstance:      os.Getenv("DB_INSTANCE"),
		MongoConnString: os.Getenv("MONGO_CONNECTION_STRING"),
		PushgatewayURL:  os.Getenv("PUSHGATEWAY_URL"),
	}
}

// apply lets credentials live in the environment instead of the YAML file.
func (e envOverrides) apply(sc *models.SyncConfig) {
	if e.DBUsername != "" {
		sc.Database.Username = e.DBUsername
	}
	if e.DBPassword != "" {
		sc.Database.Password = e.DBPassword
	}
	if e.DBInstance != "" {
		sc.Database.Instance = e.DBInstance
	}
}
