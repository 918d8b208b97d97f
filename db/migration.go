package db

import (
	dbmodels "sales-pipeline-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	models := []struct {
		name  string
		model interface{}
	}{
		{"ConditionProperty", &dbmodels.ConditionProperty{}},
		{"StageConfig", &dbmodels.StageConfig{}},
		{"Quotation", &dbmodels.Quotation{}},
		{"SaleOrder", &dbmodels.SaleOrder{}},
		{"Opportunity", &dbmodels.Opportunity{}},
		{"OpportunityProductLine", &dbmodels.OpportunityProductLine{}},
		{"OpportunityCompetitor", &dbmodels.OpportunityCompetitor{}},
		{"OpportunityStage", &dbmodels.OpportunityStage{}},
	}
	for _, item := range models {
		if err := DB.AutoMigrate(item.model); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %v", item.name)
		}
	}
	log.Info("Миграция прошла успешно")
	return nil
}
